package server

import (
	"github.com/rezonia/invoice-scanner/internal/model"
)

// ValidationResponse is the response for the validate endpoint
type ValidationResponse struct {
	Valid    bool                `json:"valid"`
	Invoices []InvoiceValidation `json:"invoices,omitempty"`
	Errors   []string            `json:"errors,omitempty"`
}

// InvoiceValidation holds the derived flags for one parsed invoice
type InvoiceValidation struct {
	InvoiceNo  string           `json:"invoiceNo"`
	Validation model.Validation `json:"validation"`
}

// InfoResponse is the response for the info endpoint
type InfoResponse struct {
	Format string `json:"format"`
	Size   int    `json:"size"`
	Pages  int    `json:"pages,omitempty"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
