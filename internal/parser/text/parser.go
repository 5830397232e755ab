// Package text implements the heuristic parsing engine that converts raw
// extracted text from a scanned vendor invoice into structured invoice
// records. A single blob may contain several invoices concatenated without
// separators; the engine detects repeated header markers, partitions the
// lines, and parses each candidate document independently.
//
// The pipeline is deterministic and rule-ordered: the same input always
// produces the same result (wall-clock time only influences the isToday
// flag and the missing-date fallback). Field absence is expected with
// scanned input and is represented by sentinel values, never by errors.
package text

import (
	"fmt"
	"time"

	"github.com/rezonia/invoice-scanner/internal/config"
	"github.com/rezonia/invoice-scanner/internal/model"
)

// Parser runs the parsing pipeline. Each call is self-contained and
// touches no shared mutable state, so a single Parser is safe for
// concurrent use.
type Parser struct {
	cfg config.ParserConfig
	pat *patternSet
	obs Observer
	now func() time.Time
}

// Option configures the Parser.
type Option func(*Parser)

// WithConfig sets the parsing policy.
func WithConfig(cfg config.ParserConfig) Option {
	return func(p *Parser) {
		p.cfg = cfg
	}
}

// WithObserver sets the diagnostics observer.
func WithObserver(obs Observer) Option {
	return func(p *Parser) {
		if obs != nil {
			p.obs = obs
		}
	}
}

// WithClock overrides the time source used for the isToday flag and the
// missing-date fallback.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		if now != nil {
			p.now = now
		}
	}
}

// New creates a Parser with default policy.
func New(opts ...Option) *Parser {
	p := &Parser{
		cfg: config.Default().Parser,
		obs: NopObserver{},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	// A hand-built config must not zero the numeric policies; the page
	// estimate divides by CharsPerPage.
	p.cfg = p.cfg.FillDefaults()
	p.pat = compilePatterns(p.cfg)
	return p
}

// ParseText runs the full pipeline over one text blob. It never panics:
// an unexpected internal failure is converted into a success=false result,
// and a failure confined to one document segment drops only that segment.
func (p *Parser) ParseText(text string) (result *model.ParseResult) {
	defer func() {
		if r := recover(); r != nil {
			result = model.Failure(fmt.Sprintf("parse failed: %v", r))
		}
	}()

	lines := NormalizeLines(text)
	segments, markers := splitSegments(lines, p.pat.labeledInvoiceNo, p.cfg.MinMarkersToSplit)
	p.obs.SegmentsDetected(len(markers), len(segments))

	now := p.now()
	invoices := []model.ParsedInvoice{}
	for i, seg := range segments {
		inv, err := p.parseSegment(i, seg, now)
		if err != nil {
			p.obs.SegmentDropped(i, err.Error())
			continue
		}
		if inv == nil {
			continue
		}
		inv.Index = len(invoices)
		invoices = append(invoices, *inv)
	}

	return &model.ParseResult{
		Success:       true,
		Invoices:      invoices,
		TotalInvoices: len(invoices),
		DebugInfo:     p.debugInfo(lines),
	}
}

// parseSegment isolates failures so one malformed segment cannot abort
// processing of its siblings.
func (p *Parser) parseSegment(idx int, seg Segment, now time.Time) (inv *model.ParsedInvoice, err error) {
	defer func() {
		if r := recover(); r != nil {
			inv, err = nil, fmt.Errorf("segment %d: %v", idx, r)
		}
	}()
	return p.buildInvoice(idx, seg, now), nil
}

func (p *Parser) debugInfo(lines []RawLine) *model.DebugInfo {
	n := min(p.cfg.DebugLineCount, len(lines))
	first := make([]string, 0, n)
	for i := 0; i < n; i++ {
		first = append(first, lines[i].Content)
	}
	return &model.DebugInfo{TotalLines: len(lines), FirstLines: first}
}
