package server_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/invoice-scanner/internal/config"
	"github.com/rezonia/invoice-scanner/internal/model"
	"github.com/rezonia/invoice-scanner/internal/server"
)

const sampleText = `RS MART Jayanagar
Invoice No : RS12/4567
Invoice Date : 11/10/2025
Sl No Item Code Item Name HSN Code Qty Rate Total
1 ITM001 Basmati Rice 5kg Pack 10063020 2 450.00 900.00
2 ITM002 Sunflower Oil 1L Bottle 15121110 3 180.50 541.50`

const wrongStoreText = `RS SUPERMART Indiranagar
Invoice No : RS13/0099
Invoice Date : 12/10/2025
Sl No Item Code Item Name HSN Code Qty Rate Total
1 ITM009 Green Tea 100g Carton 09022020 4 120.00 480.00`

func newTestServer(t *testing.T) *server.Server {
	t.Helper()
	return server.NewServer(&server.Config{
		Address: ":0",
		Parser:  config.Default().Parser,
	})
}

func doRequest(t *testing.T, s *server.Server, method, path, contentType string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.NotEmpty(t, resp["time"])
}

func TestParseText(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodPost, "/api/v1/parse/text", "text/plain", []byte(sampleText))
	require.Equal(t, http.StatusOK, w.Code)

	var result model.ParseResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Success)
	require.Equal(t, 1, result.TotalInvoices)
	assert.Equal(t, "RS12/4567", result.Invoices[0].InvoiceNo)
	assert.Len(t, result.Invoices[0].Items, 2)
}

func TestParseText_EmptyBodySucceedsWithNoInvoices(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodPost, "/api/v1/parse/text", "text/plain", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var result model.ParseResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, 0, result.TotalInvoices)
}

func TestParseFile(t *testing.T) {
	s := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "scan.txt")
	require.NoError(t, err)
	_, err = fw.Write([]byte(sampleText))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w := doRequest(t, s, http.MethodPost, "/api/v1/parse/file", mw.FormDataContentType(), buf.Bytes())
	require.Equal(t, http.StatusOK, w.Code)

	var result model.ParseResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 1, result.TotalInvoices)
}

func TestParseFile_MissingUpload(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodPost, "/api/v1/parse/file", "text/plain", []byte("no multipart"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "missing file upload")
}

func TestParseAuto(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodPost, "/api/v1/parse/auto", "application/octet-stream", []byte(sampleText))
	require.Equal(t, http.StatusOK, w.Code)

	var result model.ParseResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 1, result.TotalInvoices)
}

func TestParseAuto_EmptyBody(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodPost, "/api/v1/parse/auto", "application/octet-stream", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "empty request body")
}

func TestParseAuto_UnknownFormat(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodPost, "/api/v1/parse/auto", "application/octet-stream", []byte{0xff, 0xfb, 0x00})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var result model.ParseResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.False(t, result.Success)
	assert.Equal(t, "unsupported file format", result.Error)
}

func TestValidate_Accepted(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodPost, "/api/v1/validate", "text/plain", []byte(sampleText))
	require.Equal(t, http.StatusOK, w.Code)

	var resp server.ValidationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Valid)
	require.Len(t, resp.Invoices, 1)
	assert.Equal(t, "RS12/4567", resp.Invoices[0].InvoiceNo)
	assert.True(t, resp.Invoices[0].Validation.IsCorrectStore)
}

func TestValidate_WrongStore(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodPost, "/api/v1/validate", "text/plain", []byte(wrongStoreText))
	require.Equal(t, http.StatusOK, w.Code)

	var resp server.ValidationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	require.Len(t, resp.Invoices, 1)
	assert.False(t, resp.Invoices[0].Validation.IsCorrectStore)
}

func TestValidate_NoInvoices(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodPost, "/api/v1/validate", "text/plain", []byte("random footer noise only"))
	require.Equal(t, http.StatusOK, w.Code)

	var resp server.ValidationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	assert.Contains(t, resp.Errors, "no invoices found")
}

func TestInfo(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodPost, "/api/v1/info", "text/plain", []byte(sampleText))
	require.Equal(t, http.StatusOK, w.Code)

	var resp server.InfoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "text", resp.Format)
	assert.Equal(t, len(sampleText), resp.Size)
}

func TestInfo_EmptyBody(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodPost, "/api/v1/info", "text/plain", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
