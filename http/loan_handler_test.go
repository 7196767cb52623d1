package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emi-calculator/logger"
	"emi-calculator/repository"
	"emi-calculator/service"
)

func newTestHandler(t *testing.T) *LoanHandler {
	log := logger.NewTestLogger(t)
	cache := repository.NewMemoryCache()
	t.Cleanup(cache.Stop)
	svc := service.NewLoanService(cache, log, time.Minute)
	return NewLoanHandler(svc, log)
}

func postCalculate(t *testing.T, h *LoanHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, RouteCalculate, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.CalculateLoan(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(w.Body).Decode(v))
}

func TestCalculateLoanHandler_OK(t *testing.T) {
	h := newTestHandler(t)

	w := postCalculate(t, h, `{
		"principal": "100000",
		"annual_rate_percent": "8.5",
		"term_years": "5"
	}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp calculateResponse
	decodeBody(t, w, &resp)
	assert.InDelta(t, 2051.653132705126, resp.MonthlyPayment, 1e-6)
	assert.InDelta(t, 23099.187962307566, resp.TotalInterest, 1e-6)
	assert.Equal(t, "2051.65", resp.Display.MonthlyPayment)
	assert.Equal(t, "23099.19", resp.Display.TotalInterest)
	assert.Equal(t, "123099.19", resp.Display.TotalPayment)
}

func TestCalculateLoanHandler_NumericFields(t *testing.T) {
	h := newTestHandler(t)

	w := postCalculate(t, h, `{"principal": 500000, "annual_rate_percent": 10, "term_years": 20}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp calculateResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "4825.11", resp.Display.MonthlyPayment)
}

func TestCalculateLoanHandler_MethodNotAllowed(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, RouteCalculate, nil)
	w := httptest.NewRecorder()
	h.CalculateLoan(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, http.MethodPost, w.Header().Get("Allow"))
}

func TestCalculateLoanHandler_UnsupportedMediaType(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, RouteCalculate, bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	h.CalculateLoan(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestCalculateLoanHandler_BadRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{invalid-json}`},
		{"empty body", ``},
		{"not an object", `[1, 2, 3]`},
		{"wrong field type", `{"principal": true, "annual_rate_percent": "8", "term_years": "5"}`},
		{"unknown field", `{"principal": "1", "annual_rate_percent": "8", "term_years": "5", "currency": "INR"}`},
		{"trailing garbage", `{"principal": "1", "annual_rate_percent": "8", "term_years": "5"}garbage`},
		{"second value", `{"principal": "1", "annual_rate_percent": "8", "term_years": "5"} {}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postCalculate(t, newTestHandler(t), tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp errorResponse
			decodeBody(t, w, &resp)
			assert.Equal(t, "invalid request body", resp.Error)
		})
	}
}

func TestCalculateLoanHandler_MissingFields(t *testing.T) {
	h := newTestHandler(t)

	w := postCalculate(t, h, `{"principal": "", "annual_rate_percent": "abc"}`)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp errorResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "validation failed", resp.Error)
	assert.Equal(t, map[string]string{
		"principal":           "Enter principal amount",
		"annual_rate_percent": "Interest rate must be a number",
		"term_years":          "Enter years",
	}, resp.Fields)
}

func TestCalculateLoanHandler_InvalidInput(t *testing.T) {
	h := newTestHandler(t)

	w := postCalculate(t, h, `{"principal": "100000", "annual_rate_percent": "8.5", "term_years": "0"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp errorResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "invalid input", resp.Error)
	assert.Equal(t, "term_years", resp.Field)
	assert.Equal(t, "must be greater than zero", resp.Reason)
}

func TestCalculateLoanHandler_TrailingWhitespace(t *testing.T) {
	w := postCalculate(t, newTestHandler(t), "{\"principal\": \"1000\", \"annual_rate_percent\": \"12\", \"term_years\": \"1\"}\n\n")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCalculateLoanHandler_HugeExponent(t *testing.T) {
	h := newTestHandler(t)

	start := time.Now()
	w := postCalculate(t, h, `{"principal": 1e2000000000, "annual_rate_percent": "8.5", "term_years": 5}`)
	elapsed := time.Since(start)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Less(t, elapsed, time.Second)

	var resp errorResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "principal", resp.Field)
	assert.Equal(t, "must be a finite number", resp.Reason)
}
