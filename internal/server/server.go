// Package server exposes the invoice parser over HTTP.
package server

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jgrassler/XML-Invoice-Parser/internal/format"
	"github.com/jgrassler/XML-Invoice-Parser/internal/model"
	"github.com/jgrassler/XML-Invoice-Parser/internal/sigcheck"
	"github.com/jgrassler/XML-Invoice-Parser/internal/xmltree"
)

// Config holds server configuration
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool

	// TrustPEMPath points to trusted roots for the verify endpoint
	TrustPEMPath string
}

// Server represents the HTTP API server
type Server struct {
	config     *Config
	router     *gin.Engine
	dispatcher *format.Dispatcher
	verifier   *sigcheck.Verifier
}

// NewServer creates a new API server
func NewServer(config *Config) (*Server, error) {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if config.Debug {
		router.Use(gin.Logger())
	}

	verifier, err := newVerifier(config.TrustPEMPath)
	if err != nil {
		return nil, err
	}

	s := &Server{
		config:     config,
		router:     router,
		dispatcher: format.NewDefaultDispatcher(),
		verifier:   verifier,
	}

	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/parse", s.handleParse)
		v1.POST("/info", s.handleInfo)
		v1.POST("/verify", s.handleVerify)
		v1.GET("/formats", s.handleFormats)
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleParse(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read request body"})
		return
	}
	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "empty request body"})
		return
	}

	result, err := s.dispatcher.Parse(body)
	if err != nil {
		// Defect class: a registered format module is broken
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "format module defect",
			Details: err.Error(),
		})
		return
	}

	httpStatus := http.StatusOK
	if !result.OK() {
		httpStatus = http.StatusUnprocessableEntity
	}

	c.JSON(httpStatus, ParseResponse{
		Status:     int(result.Status),
		StatusText: result.Status.String(),
		Message:    result.Message,
		Dialect:    string(result.Dialect),
		Metadata:   result.Metadata,
		Items:      result.Items,
	})
}

func (s *Server) handleInfo(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read request body"})
		return
	}

	resp := InfoResponse{Size: len(body)}

	doc, err := xmltree.Parse(body)
	if err != nil {
		c.JSON(http.StatusOK, resp)
		return
	}
	resp.WellFormed = true

	if f := s.dispatcher.Registry().Detect(doc); f != nil {
		resp.Supported = true
		resp.Dialect = string(f.Dialect())
	} else {
		resp.Dialect = string(model.DialectUnknown)
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleVerify(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read request body"})
		return
	}
	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "empty request body"})
		return
	}

	result, err := s.verifier.Verify(body)
	if err != nil && !result.SignatureFound {
		c.JSON(http.StatusUnprocessableEntity, result)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) handleFormats(c *gin.Context) {
	formats := s.dispatcher.Registry().Formats()
	out := make([]FormatInfo, 0, len(formats))
	for _, f := range formats {
		out = append(out, FormatInfo{
			Dialect:     string(f.Dialect()),
			Description: f.Supported(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"formats": out})
}

func newVerifier(trustPEMPath string) (*sigcheck.Verifier, error) {
	if trustPEMPath == "" {
		return sigcheck.NewVerifier(nil), nil
	}
	pemData, err := os.ReadFile(trustPEMPath)
	if err != nil {
		return nil, err
	}
	roots, err := sigcheck.LoadTrustPEM(pemData)
	if err != nil {
		return nil, err
	}
	return sigcheck.NewVerifier(roots), nil
}
