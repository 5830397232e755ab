package llm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rezonia/invoice-scanner/internal/llm"
)

func TestExtractJSON_MarkdownJSONBlock(t *testing.T) {
	response := "Here are the invoices:\n```json\n[{\"invoiceNo\": \"RS12/4567\"}]\n```\nDone."
	assert.Equal(t, `[{"invoiceNo": "RS12/4567"}]`, llm.ExtractJSON(response))
}

func TestExtractJSON_GenericCodeBlock(t *testing.T) {
	response := "```\n[{\"invoiceNo\": \"RS12/4567\"}]\n```"
	assert.Equal(t, `[{"invoiceNo": "RS12/4567"}]`, llm.ExtractJSON(response))
}

func TestExtractJSON_RawArray(t *testing.T) {
	response := `  [{"invoiceNo": "RS12/4567"}]  `
	assert.Equal(t, `[{"invoiceNo": "RS12/4567"}]`, llm.ExtractJSON(response))
}

func TestExtractJSON_RawObject(t *testing.T) {
	response := `{"invoiceNo": "RS12/4567"}`
	assert.Equal(t, response, llm.ExtractJSON(response))
}

func TestExtractJSON_PlainTextPassthrough(t *testing.T) {
	response := "no structured data here"
	assert.Equal(t, response, llm.ExtractJSON(response))
}

func TestNewClient(t *testing.T) {
	client := llm.NewClient("sk-test",
		llm.WithBaseURL("https://example.com/api/v1"),
		llm.WithDefaultModel(llm.ModelGPT4oMini),
	)
	assert.NotNil(t, client)
}

func TestNewExtractor(t *testing.T) {
	client := llm.NewClient("sk-test")
	extractor := llm.NewExtractor(client,
		llm.WithTextModel(llm.ModelGeminiFlash),
		llm.WithExpectedStore("RS MART"),
	)
	assert.NotNil(t, extractor)
}
