// Package server is the HTTP upload front-end: it accepts XML and ZIP
// uploads and returns the extracted records as JSON.
package server

import (
	"context"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rezonia/fattura-processor/internal/config"
	"github.com/rezonia/fattura-processor/internal/processor"
	"github.com/rezonia/fattura-processor/internal/scan"
)

// Config holds server configuration.
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool

	// Processing is the extraction configuration used for every request.
	Processing *config.Config
}

// Server represents the HTTP API server.
type Server struct {
	config *Config
	router *gin.Engine
	driver *processor.Driver
}

// NewServer creates a new API server.
func NewServer(cfg *Config) *Server {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Debug {
		router.Use(gin.Logger())
	}

	s := &Server{
		config: cfg,
		router: router,
		driver: processor.NewDriver(cfg.Processing),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/process", s.handleProcessUpload)
		v1.POST("/process/xml", s.handleProcessXML)
	}
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// handleProcessXML processes one raw XML document from the request body.
func (s *Server) handleProcessXML(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read request body"})
		return
	}
	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "empty request body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.driver.Config().FileTimeout)
	defer cancel()

	result := s.driver.ProcessBytes(ctx, "request", body)
	if !result.Success() {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   string(result.Err.Kind),
			Details: result.Err.Detail,
		})
		return
	}

	pruned, err := result.Record.Pruned()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "serialization failed", Details: err.Error()})
		return
	}

	c.JSON(http.StatusOK, ProcessResponse{
		Invoice: pruned,
		Metrics: result.Metrics,
	})
}

// handleProcessUpload accepts a multipart upload of XML and/or ZIP files,
// stages them in a scratch directory, and processes them as one batch.
func (s *Server) handleProcessUpload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid multipart form", Details: err.Error()})
		return
	}
	uploads := form.File["files"]
	if len(uploads) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no files uploaded"})
		return
	}

	scratch, err := scan.NewScratch()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to create scratch area", Details: err.Error()})
		return
	}
	defer scratch.Cleanup()

	inputs := make([]string, 0, len(uploads))
	for _, upload := range uploads {
		dest := filepath.Join(scratch.Dir(), filepath.Base(upload.Filename))
		if err := c.SaveUploadedFile(upload, dest); err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to store upload", Details: err.Error()})
			return
		}
		inputs = append(inputs, dest)
	}

	files := scan.Discover(inputs, scratch)
	report := s.driver.ProcessBatch(c.Request.Context(), files)

	invoices := make([]map[string]any, 0, report.Succeeded)
	for _, res := range report.Successes() {
		pruned, err := res.Record.Pruned()
		if err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "serialization failed", Details: err.Error()})
			return
		}
		invoices = append(invoices, pruned)
	}

	c.JSON(http.StatusOK, newBatchResponse(report, invoices, len(files)))
}
