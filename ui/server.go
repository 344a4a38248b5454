package ui

import (
	"net/http"

	"github.com/jbclements/t-test/app"
	"github.com/jbclements/t-test/internal"
	"github.com/jbclements/t-test/internal/config"
	"github.com/jbclements/t-test/ui/middleware"

	"github.com/gin-gonic/gin"
)

// maxBatchSize caps the number of tests accepted in one batch request
const maxBatchSize = 1000

// Server is the JSON API over the t-test service
type Server struct {
	router  *gin.Engine
	service *app.TTestService
	config  config.ServerConfig
	logger  *internal.Logger
}

// NewServer creates a new API server instance
func NewServer(service *app.TTestService, cfg config.ServerConfig, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	s := &Server{
		router:  gin.New(),
		service: service,
		config:  cfg,
		logger:  logger.WithComponent("Server"),
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(middleware.RequestLogger(s.logger))
	s.router.Use(middleware.RequestTimeout(s.config.RequestTimeout))
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	api := s.router.Group("/api/v1")

	tests := api.Group("/tests")
	tests.POST("/batch", s.handleBatch)
	tests.POST("/:kind", s.handleTest)

	runs := api.Group("/runs")
	runs.GET("", s.handleListRuns)
	runs.GET("/:id", s.handleGetRun)
	runs.GET("/:id/report", s.handleRunReport)
}

// Handler exposes the router, mainly for tests and custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	s.logger.Info("Starting t-test API on http://%s", addr)
	return s.router.Run(addr)
}
