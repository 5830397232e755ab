package model

import (
	"github.com/shopspring/decimal"
)

func init() {
	// API consumers expect plain JSON numbers for rate/total fields.
	decimal.MarshalJSONWithoutQuotes = true
}

// Sentinel values used when a header field cannot be located in the text.
// Absence is expected with scanned input and is never an error.
const (
	UnknownInvoiceNo = "Unknown"
	UnknownStore     = "Unknown Store"
)

// LineItem is one row of a vendor invoice's goods table.
// Total is parsed independently from the text, not derived from Qty*Rate;
// vendor rounding may differ and no reconciliation happens at this layer.
type LineItem struct {
	SlNo     int             `json:"slNo"`
	ItemCode string          `json:"itemCode"`
	ItemName string          `json:"itemName"`
	HSNCode  string          `json:"hsnCode"`
	Qty      int             `json:"qty"`
	Rate     decimal.Decimal `json:"rate"`
	Total    decimal.Decimal `json:"total"`
}

// Validation holds derived signals callers use to decide whether a parsed
// invoice can be accepted automatically or needs manual review.
type Validation struct {
	IsToday        bool `json:"isToday"`
	IsCorrectStore bool `json:"isCorrectStore"`
	IsValid        bool `json:"isValid"`
}

// ParsedInvoice is one invoice recovered from the input text.
// An invoice is only emitted when it has at least one line item.
type ParsedInvoice struct {
	InvoiceNo   string          `json:"invoiceNo"`
	InvoiceDate string          `json:"invoiceDate"`
	Store       string          `json:"store"`
	Items       []LineItem      `json:"items"`
	TotalQty    int             `json:"totalQty"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	PageCount   int             `json:"pageCount"`
	Validation  Validation      `json:"validation"`
	Index       int             `json:"index"`
}

// DebugInfo carries diagnostics about the raw input.
type DebugInfo struct {
	TotalLines int      `json:"totalLines"`
	FirstLines []string `json:"firstLines"`
}

// ParseResult is the top-level envelope returned by every parse entry point.
// On catastrophic failure Success is false and Error carries the message.
// Invoices is always present in JSON; a scan that finds nothing serializes
// it as an empty array, never as a missing key or null.
type ParseResult struct {
	Success       bool            `json:"success"`
	Invoices      []ParsedInvoice `json:"invoices"`
	TotalInvoices int             `json:"totalInvoices"`
	DebugInfo     *DebugInfo      `json:"debugInfo,omitempty"`
	Error         string          `json:"error,omitempty"`
}

// Failure builds a ParseResult for an unrecoverable error.
func Failure(msg string) *ParseResult {
	return &ParseResult{Success: false, Invoices: []ParsedInvoice{}, Error: msg}
}
