package text

import (
	"regexp"

	"github.com/rezonia/invoice-scanner/internal/config"
)

// Patterns independent of configuration.
var (
	// "Invoice No" label, separator, alphanumeric/slash token. Doubles as
	// the header marker used for document splitting.
	labeledInvoiceNoRe = regexp.MustCompile(`(?i)invoice\s*no\.?\s*[:#\-]?\s*([A-Za-z0-9][A-Za-z0-9/]*)`)

	// A store-code/sequence-number token standing alone on its own line.
	standaloneInvoiceNoRe = regexp.MustCompile(`^([A-Z]{1,4}\d{1,4}/\d{1,6})$`)

	// "Invoice Date" label followed by a D/M/Y numeric triple.
	labeledDateRe = regexp.MustCompile(`(?i)invoice\s*date\s*[:\-]?\s*(\d{1,2})[./-](\d{1,2})[./-](\d{4})`)

	// An unlabeled D/M/Y numeric triple anywhere in a line.
	bareDateRe = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`)

	// One items-table row: slNo, itemCode, itemName, hsnCode, qty, rate,
	// total. Rate and total tolerate a currency symbol prefix and
	// thousands-separating commas.
	itemRowRe = regexp.MustCompile(`^(\d{1,3})\s+([A-Za-z0-9][A-Za-z0-9\-]*)\s+(.+?)\s+(\d{4,8})\s+(\d+)\s+((?:₹|Rs\.?\s*)?[\d,]+(?:\.\d+)?)\s+((?:₹|Rs\.?\s*)?[\d,]+(?:\.\d+)?)$`)
)

// patternSet bundles the compiled patterns, including the ones derived
// from configuration.
type patternSet struct {
	labeledInvoiceNo    *regexp.Regexp
	standaloneInvoiceNo *regexp.Regexp
	embeddedInvoiceNo   *regexp.Regexp
	labeledDate         *regexp.Regexp
	bareDate            *regexp.Regexp
	itemRow             *regexp.Regexp
}

func compilePatterns(cfg config.ParserConfig) *patternSet {
	prefix := regexp.QuoteMeta(cfg.StoreCodePrefix)
	return &patternSet{
		labeledInvoiceNo:    labeledInvoiceNoRe,
		standaloneInvoiceNo: standaloneInvoiceNoRe,
		embeddedInvoiceNo:   regexp.MustCompile(prefix + `\d+/\d+`),
		labeledDate:         labeledDateRe,
		bareDate:            bareDateRe,
		itemRow:             itemRowRe,
	}
}
