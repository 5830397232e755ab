package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rezonia/invoice-scanner/internal/decimal"
	"github.com/rezonia/invoice-scanner/internal/model"
)

// Extractor recovers invoice data from OCR text via an LLM. It is an
// optional fallback for inputs the deterministic engine cannot read; it
// is never part of the deterministic parsing path.
type Extractor struct {
	client        *Client
	textModel     string
	expectedStore string
}

// ExtractorOption configures the extractor
type ExtractorOption func(*Extractor)

// WithTextModel sets the model used for text extraction
func WithTextModel(model string) ExtractorOption {
	return func(e *Extractor) {
		e.textModel = model
	}
}

// WithExpectedStore sets the store token used for the isCorrectStore flag
func WithExpectedStore(store string) ExtractorOption {
	return func(e *Extractor) {
		e.expectedStore = store
	}
}

// NewExtractor creates a new LLM extractor
func NewExtractor(client *Client, opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		client: client,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractFromText extracts invoices from OCR text.
// Zero-item invoices are dropped and totals are recomputed locally; only
// the field values themselves are trusted from the response.
func (e *Extractor) ExtractFromText(ctx context.Context, text string) ([]model.ParsedInvoice, error) {
	prompt := fmt.Sprintf(UserPromptTextExtraction, text)

	response, err := e.client.ChatText(ctx, e.textModel, SystemPromptInvoiceExtractor, prompt)
	if err != nil {
		return nil, model.NewExtractionError("llm_text", "extraction request failed", err)
	}

	var raw []model.ParsedInvoice
	if err := json.Unmarshal([]byte(ExtractJSON(response)), &raw); err != nil {
		return nil, model.NewExtractionError("llm_text", "invalid JSON in response", err)
	}

	today := time.Now().Format("2006-01-02")
	invoices := make([]model.ParsedInvoice, 0, len(raw))
	for _, inv := range raw {
		if len(inv.Items) == 0 {
			continue
		}
		inv.TotalQty = 0
		inv.TotalAmount = decimal.Zero
		for _, item := range inv.Items {
			inv.TotalQty += item.Qty
			inv.TotalAmount = inv.TotalAmount.Add(item.Total)
		}
		if inv.InvoiceNo == "" {
			inv.InvoiceNo = model.UnknownInvoiceNo
		}
		if inv.Store == "" {
			inv.Store = model.UnknownStore
		}
		if inv.InvoiceDate == "" {
			inv.InvoiceDate = today
		}
		inv.Validation = model.Validation{
			IsToday:        inv.InvoiceDate == today,
			IsCorrectStore: e.expectedStore != "" && strings.Contains(strings.ToLower(inv.Store), strings.ToLower(e.expectedStore)),
			IsValid:        true,
		}
		inv.Index = len(invoices)
		invoices = append(invoices, inv)
	}

	return invoices, nil
}
