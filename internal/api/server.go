// Package api exposes the verification entry point over HTTP for the web
// front-end. The report's field names and types are the UI contract: keep
// them stable.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/realitypatch/realitypatch/internal/model"
	"github.com/realitypatch/realitypatch/internal/orchestrate"
	"github.com/realitypatch/realitypatch/internal/render"
)

// Server handles HTTP API requests for claim verification.
type Server struct {
	orchestrator *orchestrate.Orchestrator
}

// NewServer creates an API server over the given orchestrator.
func NewServer(orchestrator *orchestrate.Orchestrator) *Server {
	return &Server{orchestrator: orchestrator}
}

// CheckRequest is the incoming verification request.
type CheckRequest struct {
	Text      string `json:"text"`
	MediaPath string `json:"media_path,omitempty"`
	Styled    bool   `json:"styled,omitempty"`
}

// CheckResponse wraps the aggregated report for the UI.
type CheckResponse struct {
	Report *model.AggregatedReport `json:"report"`
	Styled string                  `json:"styled,omitempty"`
	Error  string                  `json:"error,omitempty"`
}

// Router constructs the gin engine with registered routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery only, logging stays optional
	r.Use(gin.Recovery())

	r.GET("/healthz", s.handleHealth)

	v1 := r.Group("/api/v1")
	v1.POST("/check", s.handleCheck)

	return r
}

// Run starts the server on addr.
func (s *Server) Run(addr string) error {
	return s.Router().Run(addr)
}

// handleCheck runs the full verification for one claim.
// POST /api/v1/check
func (s *Server) handleCheck(c *gin.Context) {
	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, CheckResponse{Error: "invalid JSON payload: " + err.Error()})
		return
	}

	if req.Text == "" && req.MediaPath == "" {
		c.JSON(http.StatusBadRequest, CheckResponse{Error: "at least one of text or media_path is required"})
		return
	}

	claim := model.NewClaim(req.Text, req.MediaPath)
	report, err := s.orchestrator.Run(c.Request.Context(), claim)
	if err != nil {
		c.JSON(http.StatusInternalServerError, CheckResponse{Error: err.Error()})
		return
	}

	resp := CheckResponse{Report: report}
	if req.Styled {
		resp.Styled = render.StyledSummary(report)
	}
	c.JSON(http.StatusOK, resp)
}

// handleHealth provides a liveness check.
// GET /healthz
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
