package text

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rezonia/invoice-scanner/internal/model"
)

// matcher is one named field-matching strategy. It reports the extracted
// value and whether it matched. Strategies for a field form an explicit
// ordered list so the heuristics stay auditable and testable in isolation.
type matcher struct {
	name string
	fn   func(line string) (string, bool)
}

// firstMatch tries each strategy in priority order across the segment's
// lines; the first strategy that matches on any line wins and scanning
// stops. A miss on every strategy is a recorded absence, never an error.
func (p *Parser) firstMatch(field string, seg Segment, matchers []matcher) (string, bool) {
	for _, m := range matchers {
		for _, line := range seg.Lines {
			if value, ok := m.fn(line.Content); ok {
				p.obs.StrategyMatched(field, m.name, value)
				return value, true
			}
		}
	}
	return "", false
}

// invoiceNo extracts the invoice identifier, falling back from the labeled
// form to a standalone token line to an embedded store-code token.
func (p *Parser) invoiceNo(seg Segment) string {
	matchers := []matcher{
		{"labeled", func(line string) (string, bool) {
			if m := p.pat.labeledInvoiceNo.FindStringSubmatch(line); m != nil {
				return m[1], true
			}
			return "", false
		}},
		{"standalone", func(line string) (string, bool) {
			if m := p.pat.standaloneInvoiceNo.FindStringSubmatch(line); m != nil {
				return m[1], true
			}
			return "", false
		}},
		{"embedded", func(line string) (string, bool) {
			if m := p.pat.embeddedInvoiceNo.FindString(line); m != "" {
				return m, true
			}
			return "", false
		}},
	}

	if no, ok := p.firstMatch("invoiceNo", seg, matchers); ok {
		return no
	}
	return model.UnknownInvoiceNo
}

// invoiceDate extracts and normalizes the invoice date to YYYY-MM-DD.
// The numeric triple is always read day/month/year; the ordering is an
// ambiguity inherited from the source format and is not second-guessed.
// The second return is false when no date was found.
func (p *Parser) invoiceDate(seg Segment) (string, bool) {
	matchers := []matcher{
		{"labeled-date", func(line string) (string, bool) {
			return normalizeDate(p.pat.labeledDate.FindStringSubmatch(line))
		}},
		{"bare-date", func(line string) (string, bool) {
			return normalizeDate(p.pat.bareDate.FindStringSubmatch(line))
		}},
	}
	return p.firstMatch("invoiceDate", seg, matchers)
}

// normalizeDate turns a [full, day, month, year] submatch into an ISO date.
func normalizeDate(m []string) (string, bool) {
	if len(m) != 4 {
		return "", false
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}

// store returns the first line containing a known store token, verbatim.
func (p *Parser) store(seg Segment) string {
	matchers := []matcher{
		{"store-token", func(line string) (string, bool) {
			lower := strings.ToLower(line)
			for _, token := range p.cfg.StoreTokens {
				if strings.Contains(lower, strings.ToLower(token)) {
					return line, true
				}
			}
			return "", false
		}},
	}

	if store, ok := p.firstMatch("store", seg, matchers); ok {
		return store
	}
	return model.UnknownStore
}
