package ui

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/jbclements/t-test/app"
	"github.com/jbclements/t-test/domain/core"
	"github.com/jbclements/t-test/domain/stats"
	"github.com/jbclements/t-test/internal/errors"
	"github.com/jbclements/t-test/internal/report"

	"github.com/gin-gonic/gin"
)

// testBody is the payload of POST /api/v1/tests/:kind
type testBody struct {
	Label   string    `json:"label"`
	Sample1 []float64 `json:"sample1"`
	Sample2 []float64 `json:"sample2"`
}

const batchReportTitle = "Batch t-tests"

type batchBody struct {
	Requests []app.TestRequest `json:"requests"`
}

// handleTest computes a single test of the kind named in the path
func (s *Server) handleTest(c *gin.Context) {
	kind, err := stats.ParseTestKind(c.Param("kind"))
	if err != nil {
		s.respondError(c, errors.FromDomain(err))
		return
	}

	var body testBody
	if err := c.ShouldBindJSON(&body); err != nil {
		s.respondError(c, errors.InvalidInput(fmt.Sprintf("invalid request body: %v", err)))
		return
	}

	run, err := s.service.Compute(c.Request.Context(), app.TestRequest{
		Kind:    kind,
		Label:   body.Label,
		Sample1: body.Sample1,
		Sample2: body.Sample2,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, run)
}

// handleBatch computes several tests; per-test failures stay in the items.
// ?format=markdown or ?format=html returns a summary report instead of JSON.
func (s *Server) handleBatch(c *gin.Context) {
	format := c.DefaultQuery("format", "json")
	switch format {
	case "json", "markdown", "html":
	default:
		s.respondError(c, errors.InvalidInput(fmt.Sprintf("unknown format %q", format)))
		return
	}

	var body batchBody
	if err := c.ShouldBindJSON(&body); err != nil {
		s.respondError(c, errors.InvalidInput(fmt.Sprintf("invalid request body: %v", err)))
		return
	}
	if len(body.Requests) == 0 {
		s.respondError(c, errors.InvalidInput("batch must contain at least one request"))
		return
	}
	if len(body.Requests) > maxBatchSize {
		s.respondError(c, errors.InvalidInput(fmt.Sprintf("batch exceeds %d requests", maxBatchSize)))
		return
	}

	items, err := s.service.ComputeBatch(c.Request.Context(), body.Requests)
	if err != nil {
		s.respondError(c, err)
		return
	}

	failed := 0
	runs := make([]*stats.TestRun, 0, len(items))
	for _, item := range items {
		if item.Error != "" {
			failed++
			continue
		}
		runs = append(runs, item.Run)
	}

	switch format {
	case "markdown":
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(report.BatchMarkdown(batchReportTitle, runs, failed)))
		return
	case "html":
		c.Data(http.StatusOK, "text/html; charset=utf-8", report.BatchHTML(batchReportTitle, runs, failed))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":  items,
		"total":  len(items),
		"failed": failed,
	})
}

// handleListRuns lists stored runs, newest first
func (s *Server) handleListRuns(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.respondError(c, errors.InvalidInput(fmt.Sprintf("invalid limit %q", raw)))
			return
		}
		limit = n
	}

	runs, err := s.service.List(c.Request.Context(), limit)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"runs": runs, "count": len(runs)})
}

// handleGetRun returns one stored run
func (s *Server) handleGetRun(c *gin.Context) {
	run, ok := s.lookupRun(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, run)
}

// handleRunReport renders one stored run as HTML, or Markdown with ?format=markdown
func (s *Server) handleRunReport(c *gin.Context) {
	run, ok := s.lookupRun(c)
	if !ok {
		return
	}

	if c.Query("format") == "markdown" {
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(report.RunMarkdown(run)))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", report.RunHTML(run))
}

func (s *Server) lookupRun(c *gin.Context) (*stats.TestRun, bool) {
	id, err := core.ParseRunID(c.Param("id"))
	if err != nil {
		s.respondError(c, errors.FromDomain(err))
		return nil, false
	}

	run, err := s.service.Get(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return nil, false
	}
	return run, true
}

// respondError writes the error body and status for err's code
func (s *Server) respondError(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	body := gin.H{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	}
	if pos, ok := core.EmptySamplePosition(err); ok {
		body["position"] = pos.String()
	}
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, body)
}
