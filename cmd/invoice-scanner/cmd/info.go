package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rezonia/invoice-scanner/internal/parser/pdf"
	"github.com/rezonia/invoice-scanner/internal/parser/text"
	"github.com/rezonia/invoice-scanner/internal/processor"
)

var infoCmd = &cobra.Command{
	Use:   "info [files...]",
	Short: "Show file information without parsing",
	Long: `Inspect one or more files and report their detected format, size,
page count (PDF) and normalized line count (text) without running the
invoice parser.

Examples:
  invoice-scanner info scan.txt
  invoice-scanner info invoices/*.pdf`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files found")
	}

	extractor := pdf.NewExtractor()

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tFORMAT\tSIZE\tPAGES\tLINES")

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			fmt.Fprintf(tw, "%s\tERROR: %v\t\t\t\n", file, err)
			continue
		}

		format := processor.DetectFormat(data)
		pages, lines := "-", "-"

		switch format {
		case processor.FormatPDF:
			if n, err := extractor.PageCount(data); err == nil {
				pages = fmt.Sprintf("%d", n)
			}
		case processor.FormatText:
			lines = fmt.Sprintf("%d", len(text.NormalizeLines(string(data))))
		}

		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", file, format, len(data), pages, lines)
	}

	return tw.Flush()
}
