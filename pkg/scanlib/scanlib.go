// Package scanlib provides a public API for parsing scanned vendor
// invoices from raw extracted text, PDF buffers, or files.
//
// Example usage:
//
//	p := scanlib.NewDefaultProcessor()
//	result := p.ParseText(ctx, ocrText)
//	for _, inv := range result.Invoices {
//	    fmt.Println(inv.InvoiceNo, inv.TotalAmount)
//	}
package scanlib

import (
	"github.com/rezonia/invoice-scanner/internal/config"
	"github.com/rezonia/invoice-scanner/internal/model"
)

// Re-export core types for public API
type (
	ParseResult   = model.ParseResult
	ParsedInvoice = model.ParsedInvoice
	LineItem      = model.LineItem
	Validation    = model.Validation
	DebugInfo     = model.DebugInfo
	ParserConfig  = config.ParserConfig
)

// Re-export sentinel values
const (
	UnknownInvoiceNo = model.UnknownInvoiceNo
	UnknownStore     = model.UnknownStore
)

// Re-export error types
type (
	ParseError      = model.ParseError
	ExtractionError = model.ExtractionError
)

// DefaultParserConfig returns the default parsing policy.
func DefaultParserConfig() ParserConfig {
	return config.Default().Parser
}
