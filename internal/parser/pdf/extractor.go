// Package pdf provides the default text-extraction collaborator used by
// the parse-from-binary and parse-from-file entry points. It pulls the
// decoded page content streams out of a PDF and scrapes the text-showing
// operators into plain text, one emitted line per text-positioning jump.
//
// Scanned PDFs without a text layer yield empty text; that is not an
// error here, the downstream parser simply finds zero invoices.
package pdf

import (
	"bytes"
	"context"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/rezonia/invoice-scanner/internal/model"
)

// Extractor extracts plain text from PDF documents.
type Extractor struct {
	conf *pdfmodel.Configuration
}

// NewExtractor creates a new PDF text extractor.
func NewExtractor() *Extractor {
	conf := pdfmodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfmodel.ValidationRelaxed
	return &Extractor{conf: conf}
}

// Content stream operators relevant to text scraping. Strings may be
// literal (...) or hex <...>; Td/TD/T* start a new text line.
var contentOpRe = regexp.MustCompile(
	`\(((?:\\.|[^\\()])*)\)\s*(?:Tj|'|")` + // literal string shown
		`|<([0-9A-Fa-f\s]+)>\s*(?:Tj|'|")` + // hex string shown
		`|\[((?:\\.|[^\]\\])*)\]\s*TJ` + // array of strings shown
		`|(?:T\*|-?[\d.]+\s+-?[\d.]+\s+T[dD])`, // text line jump
)

var arrayStringRe = regexp.MustCompile(`\(((?:\\.|[^\\()])*)\)|<([0-9A-Fa-f\s]+)>`)

// ExtractText extracts the text of every page, in page order.
func (e *Extractor) ExtractText(ctx context.Context, data []byte) (string, error) {
	pctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), e.conf)
	if err != nil {
		return "", model.NewExtractionError("pdf", "failed to read PDF", err)
	}

	var sb strings.Builder
	for page := 1; page <= pctx.PageCount; page++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		r, err := pdfcpu.ExtractPageContent(pctx, page)
		if err != nil {
			return "", model.NewExtractionError("pdf", "failed to extract page content", err)
		}
		if r == nil {
			continue
		}
		content, err := io.ReadAll(r)
		if err != nil {
			return "", model.NewExtractionError("pdf", "failed to read page content", err)
		}
		sb.WriteString(scrapeText(string(content)))
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// PageCount reports the number of pages without extracting anything.
func (e *Extractor) PageCount(data []byte) (int, error) {
	pctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), e.conf)
	if err != nil {
		return 0, model.NewExtractionError("pdf", "failed to read PDF", err)
	}
	return pctx.PageCount, nil
}

// scrapeText walks the content stream operators in order, concatenating
// shown strings and breaking lines on text-positioning jumps.
func scrapeText(content string) string {
	var sb strings.Builder
	for _, m := range contentOpRe.FindAllStringSubmatch(content, -1) {
		switch {
		case m[1] != "":
			sb.WriteString(decodeLiteral(m[1]))
		case m[2] != "":
			sb.WriteString(decodeHex(m[2]))
		case m[3] != "":
			for _, s := range arrayStringRe.FindAllStringSubmatch(m[3], -1) {
				if s[1] != "" {
					sb.WriteString(decodeLiteral(s[1]))
				} else if s[2] != "" {
					sb.WriteString(decodeHex(s[2]))
				}
			}
		default:
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// decodeLiteral resolves the escape sequences of a PDF literal string.
func decodeLiteral(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '(', ')', '\\':
			sb.WriteByte(s[i])
		default:
			if s[i] >= '0' && s[i] <= '7' {
				end := i
				for end < len(s) && end-i < 3 && s[end] >= '0' && s[end] <= '7' {
					end++
				}
				if v, err := strconv.ParseUint(s[i:end], 8, 16); err == nil && v < 256 {
					sb.WriteByte(byte(v))
				}
				i = end - 1
			}
		}
	}
	return sb.String()
}

func decodeHex(s string) string {
	s = strings.Map(func(r rune) rune {
		if r == ' ' || r == '\n' || r == '\r' || r == '\t' {
			return -1
		}
		return r
	}, s)
	if len(s)%2 != 0 {
		s += "0"
	}
	var sb strings.Builder
	for i := 0; i+1 < len(s); i += 2 {
		if v, err := strconv.ParseUint(s[i:i+2], 16, 8); err == nil {
			sb.WriteByte(byte(v))
		}
	}
	return sb.String()
}
