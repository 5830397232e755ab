package pdf

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScrapeText_LiteralStrings(t *testing.T) {
	content := `BT /F1 12 Tf 72 720 Td (Invoice No : RS12/4567) Tj 0 -14 Td (RS MART Jayanagar) Tj ET`

	got := scrapeText(content)
	assert.Contains(t, got, "Invoice No : RS12/4567")
	assert.Contains(t, got, "RS MART Jayanagar")
	// The Td jump between the two strings breaks the line.
	assert.Contains(t, got, "RS12/4567\nRS MART")
}

func TestScrapeText_TJArray(t *testing.T) {
	content := `[(Inv)-20(oice)-18( No)] TJ`
	assert.Equal(t, "Invoice No", scrapeText(content))
}

func TestScrapeText_HexStrings(t *testing.T) {
	content := `<496E766F696365> Tj`
	assert.Equal(t, "Invoice", scrapeText(content))
}

func TestScrapeText_QuoteOperators(t *testing.T) {
	content := `(first) ' (second) "`
	got := scrapeText(content)
	assert.Contains(t, got, "first")
	assert.Contains(t, got, "second")
}

func TestScrapeText_NoTextOperators(t *testing.T) {
	assert.Equal(t, "", scrapeText(`q 1 0 0 1 0 0 cm /Im1 Do Q`))
}

func TestDecodeLiteral(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`plain text`, "plain text"},
		{`a\(b\)c`, "a(b)c"},
		{`line\nbreak`, "line\nbreak"},
		{`tab\there`, "tab\there"},
		{`back\\slash`, `back\slash`},
		{`octal \101\102`, "octal AB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, decodeLiteral(tt.input), "input %q", tt.input)
	}
}

func TestDecodeHex(t *testing.T) {
	assert.Equal(t, "AB", decodeHex("4142"))
	assert.Equal(t, "AB", decodeHex("41 42"))
	// Odd-length strings get a trailing zero nibble per the PDF spec.
	assert.Equal(t, "A@", decodeHex("414"))
}

func TestExtractText_InvalidPDF(t *testing.T) {
	e := NewExtractor()

	_, err := e.ExtractText(context.Background(), []byte("%PDF-1.7 truncated garbage"))
	assert.Error(t, err)
}

func TestPageCount_InvalidPDF(t *testing.T) {
	e := NewExtractor()

	_, err := e.PageCount([]byte("not a pdf"))
	assert.Error(t, err)
}
