package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rezonia/invoice-scanner/internal/config"
	"github.com/rezonia/invoice-scanner/internal/llm"
	"github.com/rezonia/invoice-scanner/internal/parser/pdf"
	"github.com/rezonia/invoice-scanner/internal/parser/text"
	"github.com/rezonia/invoice-scanner/internal/processor"
)

// Config holds server configuration
type Config struct {
	Address      string
	APIKey       string
	LLMBaseURL   string
	LLMModel     string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
	Parser       config.ParserConfig
}

// Server represents the HTTP API server
type Server struct {
	config    *Config
	router    *gin.Engine
	pipeline  *processor.Pipeline
	extractor *pdf.Extractor
}

// NewServer creates a new API server
func NewServer(cfg *Config) *Server {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Debug {
		router.Use(gin.Logger())
	}

	// Parsing decisions go to the structured log in debug mode only.
	var obs text.Observer = text.NopObserver{}
	if cfg.Debug {
		obs = text.NewLogObserver(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	parser := text.New(
		text.WithConfig(cfg.Parser),
		text.WithObserver(obs),
	)

	// Create LLM fallback extractor if API key provided
	var llmExtractor *llm.Extractor
	if cfg.APIKey != "" {
		var clientOpts []llm.ClientOption
		if cfg.LLMBaseURL != "" {
			clientOpts = append(clientOpts, llm.WithBaseURL(cfg.LLMBaseURL))
		}
		client := llm.NewClient(cfg.APIKey, clientOpts...)

		extractorOpts := []llm.ExtractorOption{
			llm.WithExpectedStore(cfg.Parser.ExpectedStore),
		}
		if cfg.LLMModel != "" {
			extractorOpts = append(extractorOpts, llm.WithTextModel(cfg.LLMModel))
		}
		llmExtractor = llm.NewExtractor(client, extractorOpts...)
	}

	extractor := pdf.NewExtractor()
	pipeline := processor.NewPipeline(
		processor.WithParser(parser),
		processor.WithTextExtractor(extractor),
		processor.WithLLMExtractor(llmExtractor),
	)

	s := &Server{
		config:    cfg,
		router:    router,
		pipeline:  pipeline,
		extractor: extractor,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", s.handleHealth)

	// API v1
	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/parse/text", s.handleParseText)
		v1.POST("/parse/file", s.handleParseFile)
		v1.POST("/parse/auto", s.handleParseAuto)

		v1.POST("/validate", s.handleValidate)
		v1.POST("/info", s.handleInfo)
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

func (s *Server) handleParseText(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	result := s.pipeline.ParseText(ctx, string(body))
	if !result.Success {
		c.JSON(http.StatusUnprocessableEntity, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleParseFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file upload"})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open upload"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read upload"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Minute)
	defer cancel()

	result := s.pipeline.ParseBytes(ctx, data)
	if !result.Success {
		c.JSON(http.StatusUnprocessableEntity, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleParseAuto(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty request body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Minute)
	defer cancel()

	result := s.pipeline.ParseBytes(ctx, body)
	if !result.Success {
		c.JSON(http.StatusUnprocessableEntity, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleValidate(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty request body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Minute)
	defer cancel()

	result := s.pipeline.ParseBytes(ctx, body)
	if !result.Success {
		c.JSON(http.StatusUnprocessableEntity, ValidationResponse{
			Valid:  false,
			Errors: []string{result.Error},
		})
		return
	}

	response := ValidationResponse{Valid: result.TotalInvoices > 0}
	for _, inv := range result.Invoices {
		if !inv.Validation.IsValid || !inv.Validation.IsCorrectStore {
			response.Valid = false
		}
		response.Invoices = append(response.Invoices, InvoiceValidation{
			InvoiceNo:  inv.InvoiceNo,
			Validation: inv.Validation,
		})
	}
	if result.TotalInvoices == 0 {
		response.Errors = append(response.Errors, "no invoices found")
	}

	c.JSON(http.StatusOK, response)
}

func (s *Server) handleInfo(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty request body"})
		return
	}

	format := processor.DetectFormat(body)
	response := InfoResponse{
		Format: format.String(),
		Size:   len(body),
	}
	if format == processor.FormatPDF {
		if pages, err := s.extractor.PageCount(body); err == nil {
			response.Pages = pages
		}
	}

	c.JSON(http.StatusOK, response)
}
