package text

import (
	"strconv"
	"strings"

	"github.com/rezonia/invoice-scanner/internal/decimal"
	"github.com/rezonia/invoice-scanner/internal/model"
)

// Table scanning states. The scan starts before the table header and
// switches to inItems once a header token line is seen. There is no
// explicit terminal state; the scan ends with the segment.
type scanState int

const (
	searchingHeader scanState = iota
	inItems
)

// extractItems scans a segment for its items table and extracts every row
// matching the positional pattern, in the order encountered. It returns an
// empty list when the header token is never found or no row matches.
func (p *Parser) extractItems(segIdx int, seg Segment) []model.LineItem {
	state := searchingHeader
	scanned, matched := 0, 0
	var items []model.LineItem

	for _, line := range seg.Lines {
		switch state {
		case searchingHeader:
			if p.isItemHeader(line.Content) {
				// The header row carries no data.
				state = inItems
			}

		case inItems:
			// Short lines are noise or footers, not an end-of-table
			// signal; the state never reverts.
			if len(line.Content) < p.cfg.MinItemLineLength {
				continue
			}
			scanned++
			item, ok := p.matchItemRow(line.Content)
			if !ok {
				// Precision over recall: rows that do not match the
				// positional pattern are skipped silently.
				continue
			}
			matched++
			items = append(items, item)
		}
	}

	p.obs.ItemsScanned(segIdx, scanned, matched)
	return items
}

func (p *Parser) isItemHeader(line string) bool {
	lower := strings.ToLower(line)
	for _, token := range p.cfg.ItemHeaderTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

// matchItemRow matches one line against the seven-field positional pattern.
func (p *Parser) matchItemRow(line string) (model.LineItem, bool) {
	m := p.pat.itemRow.FindStringSubmatch(line)
	if m == nil {
		return model.LineItem{}, false
	}

	slNo, err := strconv.Atoi(m[1])
	if err != nil {
		return model.LineItem{}, false
	}
	qty, err := strconv.Atoi(m[5])
	if err != nil || qty <= 0 {
		return model.LineItem{}, false
	}
	rate, err := decimal.ParseAmount(m[6])
	if err != nil || !decimal.IsNonNegative(rate) {
		return model.LineItem{}, false
	}
	total, err := decimal.ParseAmount(m[7])
	if err != nil || !decimal.IsNonNegative(total) {
		return model.LineItem{}, false
	}

	return model.LineItem{
		SlNo:     slNo,
		ItemCode: m[2],
		ItemName: strings.TrimSpace(m[3]),
		HSNCode:  m[4],
		Qty:      qty,
		Rate:     rate,
		Total:    total,
	}, true
}
