package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fslivovsky/unique/internal/config"
	"github.com/fslivovsky/unique/internal/logger"

	_ "github.com/fslivovsky/unique/solver/bruteforce"
)

func newTestServer(t *testing.T) *appServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg, err := config.New(config.Options{})
	require.NoError(t, err)
	srv, err := NewServer(ServerOptions{C: cfg, Version: "test"})
	require.NoError(t, err)
	return srv.(*appServer)
}

func withLoggerContext(c *gin.Context) {
	c.Set("logger", logger.Nop())
}

func TestHealthHandlerReturnsOK(t *testing.T) {
	a := newTestServer(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)
	withLoggerContext(c)

	a.HealthHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestAnalyzeHandlerReturnsDefinitionsForQCIRInput(t *testing.T) {
	a := newTestServer(t)

	body := AnalyzeRequest{
		Input:  "#QCIR-G14\nexists(1, 2)\noutput(3)\n3 = and(1, -2)\n",
		Format: "QCIR",
	}
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")
	withLoggerContext(c)

	a.AnalyzeHandler(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "QCIR", resp.Format)
	assert.NotEmpty(t, resp.Output)
}

func TestAnalyzeHandlerRejectsUnrecognizedInput(t *testing.T) {
	a := newTestServer(t)

	body := AnalyzeRequest{Input: "not a qbf file at all"}
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")
	withLoggerContext(c)

	a.AnalyzeHandler(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeHandlerRejectsMalformedJSON(t *testing.T) {
	a := newTestServer(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader([]byte("{not json")))
	c.Request.Header.Set("Content-Type", "application/json")
	withLoggerContext(c)

	a.AnalyzeHandler(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
