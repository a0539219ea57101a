package app

import (
	"net/http"

	"github.com/fslivovsky/unique/internal/server/router"
)

func (a *appServer) routes() []*router.Route {
	return []*router.Route{
		{
			Name:        "health",
			Method:      http.MethodGet,
			Pattern:     "/health",
			HandlerFunc: a.HealthHandler,
		},
		{
			Name:        "api.analyze",
			Method:      http.MethodPost,
			Pattern:     "/api/analyze",
			HandlerFunc: a.AnalyzeHandler,
		},
	}
}
