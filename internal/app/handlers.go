package app

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fslivovsky/unique/emit"
	"github.com/fslivovsky/unique/extractor"
	"github.com/fslivovsky/unique/parser"
	"github.com/fslivovsky/unique/pipeline"
)

var badRequestErrorMsg = "Bad Request - please contact the administrator"
var internalServerErrorMsg = "Internal Server Error - please contact the administrator"

// AnalyzeRequest is the body of POST /api/analyze.
type AnalyzeRequest struct {
	Input         string `json:"input"`
	Format        string `json:"format"` // QCIR | QDIMACS | DQCIR | DQDIMACS, optional: sniffed if absent
	Strict        bool   `json:"strict"`
	ConflictLimit int    `json:"conflictLimit"`
	OutputFormat  string `json:"outputFormat"` // QCIR | QDIMACS | DIMACS | Verilog, defaults to QCIR
}

// AnalyzeResponse is the body of a successful POST /api/analyze.
type AnalyzeResponse struct {
	Output       string `json:"output"`
	DefinedCount int    `json:"definedCount"`
	Format       string `json:"format"`
}

// HealthHandler is the handler for the /health endpoint
func (a *appServer) HealthHandler(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		panic("logger not found in context")
	}
	l.Debug().Msg("serving health endpoint")
	c.String(http.StatusOK, "OK")
}

// AnalyzeHandler is the handler for the /api/analyze endpoint: it runs the
// same parse -> select -> extract -> emit pipeline as cmd/unique over a
// request body instead of a file.
func (a *appServer) AnalyzeHandler(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		panic("logger not found in context")
	}
	l.Debug().Msg("serving analyze endpoint")

	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Error().Err(err).Msg("binding JSON failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": badRequestErrorMsg})
		return
	}

	data := []byte(req.Input)
	format := parser.Sniff(data)
	if req.Format != "" {
		if f, ok := parseFormatName(req.Format); ok {
			format = f
		}
	}
	if format == parser.Unknown {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unrecognized input"})
		return
	}

	res, err := parser.Parse(data, format)
	if err != nil {
		l.Error().Err(err).Msg("parse failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conflictLimit := req.ConflictLimit
	if conflictLimit <= 0 {
		conflictLimit = a.config.GetInt("default-conflict-limit")
	}
	factory, err := pipeline.NewFactory("bruteforce")
	if err != nil {
		l.Error().Err(err).Msg("resolving solver backend")
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalServerErrorMsg})
		return
	}
	ext := extractor.New(factory, conflictLimit, req.Strict, l)
	stats := pipeline.Run(res, format, ext, nil, l)

	outputFormat := req.OutputFormat
	if outputFormat == "" {
		outputFormat = "QCIR"
	}
	var buf bytes.Buffer
	rawClauses := format == parser.QDIMACS || format == parser.DQDIMACS
	switch outputFormat {
	case "QDIMACS":
		err = emit.QDIMACS(&buf, res.Graph, res.Deps, rawClauses)
	case "DIMACS":
		err = emit.DIMACS(&buf, res.Graph)
	case "Verilog":
		err = emit.Verilog(&buf, res.Graph)
	default:
		err = emit.QCIR(&buf, res.Graph, res.Deps)
	}
	if err != nil {
		l.Error().Err(err).Msg("emit failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalServerErrorMsg})
		return
	}

	c.JSON(http.StatusOK, AnalyzeResponse{
		Output:       buf.String(),
		DefinedCount: stats.DefinedExistential + stats.DefinedUniversal,
		Format:       format.String(),
	})
}

func parseFormatName(name string) (parser.Format, bool) {
	switch name {
	case "QCIR":
		return parser.QCIR, true
	case "QDIMACS":
		return parser.QDIMACS, true
	case "DQCIR":
		return parser.DQCIR, true
	case "DQDIMACS":
		return parser.DQDIMACS, true
	default:
		return parser.Unknown, false
	}
}
