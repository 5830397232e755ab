package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/invoice-scanner/internal/llm"
	"github.com/rezonia/invoice-scanner/internal/model"
	"github.com/rezonia/invoice-scanner/internal/parser/text"
	"github.com/rezonia/invoice-scanner/internal/processor"
)

var (
	outputFile string
	timeout    time.Duration
)

var parseCmd = &cobra.Command{
	Use:   "parse [files...]",
	Short: "Parse invoice files",
	Long: `Parse one or more invoice files and extract structured records.

Supported inputs:
  - Plain text: .txt (raw text extracted from a scan)
  - PDF: .pdf (text layer is scraped; scanned-only PDFs yield no text)

A single file may contain several concatenated invoices; each is returned
as its own record.

Examples:
  invoice-scanner parse scan.txt
  invoice-scanner parse invoice.pdf -f table
  invoice-scanner parse scans/ -o results.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	parseCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "Processing timeout per file")
}

// FileResult holds the result of parsing a single file
type FileResult struct {
	File   string             `json:"file"`
	Result *model.ParseResult `json:"result"`
}

func runParse(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no files found to parse")
	}

	printVerbose("Found %d files to parse\n", len(files))

	pipeline, err := buildPipeline()
	if err != nil {
		return err
	}

	results := make([]*FileResult, 0, len(files))
	for _, file := range files {
		printVerbose("Parsing: %s\n", file)

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		result := pipeline.ParseFile(ctx, file)
		cancel()

		results = append(results, &FileResult{File: file, Result: result})

		if !result.Success {
			printVerbose("  Error: %s\n", result.Error)
		} else {
			printVerbose("  Invoices: %d\n", result.TotalInvoices)
		}
	}

	return outputResults(results)
}

// buildPipeline assembles the pipeline from config, flags, and verbosity.
func buildPipeline() (*processor.Pipeline, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	var obs text.Observer = text.NopObserver{}
	if verbose {
		obs = text.NewLogObserver(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	parser := text.New(
		text.WithConfig(cfg.Parser),
		text.WithObserver(obs),
	)

	var llmExtractor *llm.Extractor
	if cfg.LLM.APIKey != "" {
		var clientOpts []llm.ClientOption
		if cfg.LLM.BaseURL != "" {
			clientOpts = append(clientOpts, llm.WithBaseURL(cfg.LLM.BaseURL))
		}
		client := llm.NewClient(cfg.LLM.APIKey, clientOpts...)

		extractorOpts := []llm.ExtractorOption{
			llm.WithExpectedStore(cfg.Parser.ExpectedStore),
		}
		if cfg.LLM.Model != "" {
			extractorOpts = append(extractorOpts, llm.WithTextModel(cfg.LLM.Model))
		}
		llmExtractor = llm.NewExtractor(client, extractorOpts...)
		printVerbose("LLM fallback enabled (model: %s)\n", cfg.LLM.Model)
	}

	return processor.NewPipeline(
		processor.WithParser(parser),
		processor.WithLLMExtractor(llmExtractor),
	), nil
}

func collectFiles(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", arg, err)
		}

		if len(matches) == 0 {
			info, err := os.Stat(arg)
			if err != nil {
				return nil, fmt.Errorf("file not found: %s", arg)
			}

			if info.IsDir() {
				err := filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
					if err != nil {
						return err
					}
					if !info.IsDir() && isSupportedFile(path) {
						files = append(files, path)
					}
					return nil
				})
				if err != nil {
					return nil, err
				}
			} else {
				files = append(files, arg)
			}
		} else {
			for _, match := range matches {
				info, err := os.Stat(match)
				if err != nil {
					continue
				}
				if !info.IsDir() && isSupportedFile(match) {
					files = append(files, match)
				}
			}
		}
	}

	return files, nil
}

func isSupportedFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".txt", ".text", ".pdf":
		return true
	default:
		return false
	}
}

func outputResults(results []*FileResult) error {
	var writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		writer = f
	}

	switch outputFormat {
	case "json":
		return outputJSON(writer, results)
	case "table":
		return outputTable(writer, results)
	case "csv":
		return outputCSV(writer, results)
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}

func outputJSON(w *os.File, results []*FileResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(results)
}

func outputTable(w *os.File, results []*FileResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tINVOICE NO\tDATE\tSTORE\tITEMS\tQTY\tTOTAL")
	fmt.Fprintln(tw, "----\t----------\t----\t-----\t-----\t---\t-----")

	for _, r := range results {
		if !r.Result.Success {
			fmt.Fprintf(tw, "%s\tERROR: %s\t\t\t\t\t\n", r.File, r.Result.Error)
			continue
		}

		for _, inv := range r.Result.Invoices {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
				r.File,
				inv.InvoiceNo,
				inv.InvoiceDate,
				inv.Store,
				len(inv.Items),
				inv.TotalQty,
				inv.TotalAmount.String(),
			)
		}
	}

	return tw.Flush()
}

func outputCSV(w *os.File, results []*FileResult) error {
	fmt.Fprintln(w, "file,invoice_no,invoice_date,store,items,total_qty,total_amount,page_count,is_today,is_correct_store,error")

	for _, r := range results {
		if !r.Result.Success {
			fmt.Fprintf(w, "%s,,,,,,,,,,%s\n", r.File, escapeCSV(r.Result.Error))
			continue
		}

		for _, inv := range r.Result.Invoices {
			fmt.Fprintf(w, "%s,%s,%s,%s,%d,%d,%s,%d,%t,%t,\n",
				r.File,
				inv.InvoiceNo,
				inv.InvoiceDate,
				escapeCSV(inv.Store),
				len(inv.Items),
				inv.TotalQty,
				inv.TotalAmount.String(),
				inv.PageCount,
				inv.Validation.IsToday,
				inv.Validation.IsCorrectStore,
			)
		}
	}

	return nil
}

func escapeCSV(s string) string {
	if strings.Contains(s, ",") || strings.Contains(s, "\"") || strings.Contains(s, "\n") {
		return "\"" + strings.ReplaceAll(s, "\"", "\"\"") + "\""
	}
	return s
}
