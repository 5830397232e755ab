package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rezonia/invoice-scanner/internal/config"
)

var (
	version = "1.0.0"

	// Global flags
	verbose      bool
	outputFormat string
	configPath   string
	apiKey       string
	llmBaseURL   string
	llmModel     string
)

var rootCmd = &cobra.Command{
	Use:   "invoice-scanner",
	Short: "Parse scanned vendor invoices into structured records",
	Long: `Invoice Scanner extracts structured invoice records from the raw text
of scanned or printed vendor invoices.

A single input may contain several invoices concatenated together; the
parser detects repeated invoice headers and splits them apart. Inputs can
be plain text files or PDFs with a text layer.

Examples:
  # Parse an extracted-text file
  invoice-scanner parse scan.txt

  # Parse a PDF, table output
  invoice-scanner parse invoice.pdf -f table

  # Parse everything in a directory into one JSON file
  invoice-scanner parse scans/ -o results.json

  # Start the HTTP API
  invoice-scanner serve --address :8080`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "json", "Output format (json, csv, table)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "API key for the LLM fallback (env: LLM_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&llmBaseURL, "llm-base-url", "", "LLM API base URL (env: LLM_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&llmModel, "llm-model", "", "LLM model for the fallback (env: LLM_MODEL)")

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env is optional; ignore a missing file.
	_ = godotenv.Load()

	if apiKey == "" {
		apiKey = os.Getenv(config.EnvLLMAPIKey)
	}
	if llmBaseURL == "" {
		llmBaseURL = os.Getenv(config.EnvLLMBaseURL)
	}
	if llmModel == "" {
		llmModel = os.Getenv(config.EnvLLMModel)
	}
}

// loadConfig resolves the effective configuration for a command run.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if apiKey != "" {
		cfg.LLM.APIKey = apiKey
	}
	if llmBaseURL != "" {
		cfg.LLM.BaseURL = llmBaseURL
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	return cfg, nil
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
