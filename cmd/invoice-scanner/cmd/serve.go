package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/invoice-scanner/internal/server"
)

var (
	serverAddr   string
	serverDebug  bool
	readTimeout  time.Duration
	writeTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP API server for parsing invoices.

The API provides endpoints for:
  - POST /api/v1/parse/text  - Parse raw extracted text
  - POST /api/v1/parse/file  - Parse an uploaded file (multipart)
  - POST /api/v1/parse/auto  - Auto-detect format and parse
  - POST /api/v1/validate    - Parse and report validation flags
  - POST /api/v1/info        - Get file information
  - GET  /health             - Health check

Examples:
  # Start server on default port
  invoice-scanner serve

  # Start on custom port with the LLM fallback enabled
  invoice-scanner serve --address :8080 --api-key <key>

  # Start in debug mode
  invoice-scanner serve --debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverAddr, "address", "", "Server listen address (default from config)")
	serveCmd.Flags().BoolVar(&serverDebug, "debug", false, "Enable debug mode")
	serveCmd.Flags().DurationVar(&readTimeout, "read-timeout", 0, "HTTP read timeout (default from config)")
	serveCmd.Flags().DurationVar(&writeTimeout, "write-timeout", 0, "HTTP write timeout (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if serverAddr != "" {
		cfg.Server.Address = serverAddr
	}
	if readTimeout != 0 {
		cfg.Server.ReadTimeout = readTimeout
	}
	if writeTimeout != 0 {
		cfg.Server.WriteTimeout = writeTimeout
	}

	srvConfig := &server.Config{
		Address:      cfg.Server.Address,
		APIKey:       cfg.LLM.APIKey,
		LLMBaseURL:   cfg.LLM.BaseURL,
		LLMModel:     cfg.LLM.Model,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Debug:        serverDebug || cfg.Server.Debug,
		Parser:       cfg.Parser,
	}

	srv := server.NewServer(srvConfig)

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		fmt.Println("\nShutting down server...")
		os.Exit(0)
	}()

	fmt.Printf("Starting server on %s\n", srvConfig.Address)
	if srvConfig.APIKey != "" {
		fmt.Println("LLM fallback enabled")
	} else {
		fmt.Println("LLM fallback disabled (no API key)")
	}

	return srv.Run()
}
