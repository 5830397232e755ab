package text

import (
	"strings"
	"time"

	"github.com/rezonia/invoice-scanner/internal/decimal"
	"github.com/rezonia/invoice-scanner/internal/model"
)

// buildInvoice assembles the final invoice for one segment. It returns nil
// when the segment yields no line items: zero-item segments are noise and
// are never surfaced as invoices.
func (p *Parser) buildInvoice(segIdx int, seg Segment, now time.Time) *model.ParsedInvoice {
	items := p.extractItems(segIdx, seg)
	if len(items) == 0 {
		p.obs.SegmentDropped(segIdx, "no line items")
		return nil
	}

	today := now.Format("2006-01-02")
	date, found := p.invoiceDate(seg)
	if !found {
		// Display convenience, not a correctness claim.
		date = today
	}
	store := p.store(seg)

	totalQty := 0
	totalAmount := decimal.Zero
	for _, item := range items {
		totalQty += item.Qty
		// Summed from the independently parsed line totals; qty*rate is
		// deliberately not cross-checked against them here.
		totalAmount = totalAmount.Add(item.Total)
	}

	return &model.ParsedInvoice{
		InvoiceNo:   p.invoiceNo(seg),
		InvoiceDate: date,
		Store:       store,
		Items:       items,
		TotalQty:    totalQty,
		TotalAmount: totalAmount,
		PageCount:   p.pageCount(seg),
		Validation: model.Validation{
			IsToday:        date == today,
			IsCorrectStore: strings.Contains(strings.ToLower(store), strings.ToLower(p.cfg.ExpectedStore)),
			IsValid:        len(items) > 0,
		},
	}
}

// pageCount estimates how many printed pages the segment spanned, from its
// character count. A rough heuristic, not a guarantee.
func (p *Parser) pageCount(seg Segment) int {
	chars := seg.charCount()
	if chars == 0 {
		return 0
	}
	return (chars + p.cfg.CharsPerPage - 1) / p.cfg.CharsPerPage
}
