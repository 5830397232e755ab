// Package processor composes text extraction and the parsing engine into
// the public parse entry points.
package processor

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/rezonia/invoice-scanner/internal/llm"
	"github.com/rezonia/invoice-scanner/internal/model"
	"github.com/rezonia/invoice-scanner/internal/parser/pdf"
	"github.com/rezonia/invoice-scanner/internal/parser/text"
)

// Format identifies the input format
type Format int

const (
	FormatUnknown Format = iota
	FormatText
	FormatPDF
)

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatPDF:
		return "pdf"
	default:
		return "unknown"
	}
}

// DetectFormat identifies the input format from content.
func DetectFormat(data []byte) Format {
	if bytes.HasPrefix(data, []byte("%PDF")) {
		return FormatPDF
	}
	if utf8.Valid(data) {
		return FormatText
	}
	return FormatUnknown
}

// TextExtractor converts a binary document into plain text. The PDF
// implementation in internal/parser/pdf is the default; the interface is
// here so callers can substitute their own OCR collaborator.
type TextExtractor interface {
	ExtractText(ctx context.Context, data []byte) (string, error)
}

// Pipeline runs extraction and parsing. Entry points hold no shared
// mutable state beyond their collaborators, so concurrent calls are safe.
type Pipeline struct {
	parser    *text.Parser
	extractor TextExtractor
	llm       *llm.Extractor
}

// PipelineOption configures the pipeline
type PipelineOption func(*Pipeline)

// WithParser sets a custom-configured parsing engine
func WithParser(p *text.Parser) PipelineOption {
	return func(pl *Pipeline) {
		if p != nil {
			pl.parser = p
		}
	}
}

// WithTextExtractor sets the binary-to-text collaborator
func WithTextExtractor(e TextExtractor) PipelineOption {
	return func(pl *Pipeline) {
		if e != nil {
			pl.extractor = e
		}
	}
}

// WithLLMExtractor enables the LLM fallback (nil disables it)
func WithLLMExtractor(e *llm.Extractor) PipelineOption {
	return func(pl *Pipeline) {
		pl.llm = e
	}
}

// NewPipeline creates a pipeline with default collaborators.
func NewPipeline(opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		parser:    text.New(),
		extractor: pdf.NewExtractor(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseText parses raw extracted text. When the deterministic engine
// finds nothing and an LLM extractor is configured, the fallback gets one
// attempt; its failure never degrades the deterministic result.
func (p *Pipeline) ParseText(ctx context.Context, input string) *model.ParseResult {
	result := p.parser.ParseText(input)

	if p.llm != nil && result.Success && result.TotalInvoices == 0 && strings.TrimSpace(input) != "" {
		if invoices, err := p.llm.ExtractFromText(ctx, input); err == nil && len(invoices) > 0 {
			result.Invoices = invoices
			result.TotalInvoices = len(invoices)
		}
	}

	return result
}

// ParseBytes detects the buffer format, obtains text, and parses it.
func (p *Pipeline) ParseBytes(ctx context.Context, data []byte) *model.ParseResult {
	switch DetectFormat(data) {
	case FormatPDF:
		extracted, err := p.extractor.ExtractText(ctx, data)
		if err != nil {
			return model.Failure(fmt.Sprintf("text extraction failed: %v", err))
		}
		return p.ParseText(ctx, extracted)

	case FormatText:
		return p.ParseText(ctx, string(data))

	default:
		return model.Failure("unsupported file format")
	}
}

// ParseFile reads a file and parses its content.
func (p *Pipeline) ParseFile(ctx context.Context, path string) *model.ParseResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Failure(fmt.Sprintf("failed to read file: %v", err))
	}
	return p.ParseBytes(ctx, data)
}
