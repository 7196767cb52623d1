package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"emi-calculator/domain"
	"emi-calculator/form"
	"emi-calculator/logger"
	"emi-calculator/service"
)

const maxBodyBytes = 1 << 16

type LoanHandler struct {
	service *service.LoanService
	logger  logger.Logger
}

func NewLoanHandler(service *service.LoanService, log logger.Logger) *LoanHandler {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &LoanHandler{
		service: service,
		logger:  log.WithFields(map[string]interface{}{"component": "loan_handler"}),
	}
}

type calculateResponse struct {
	MonthlyPayment float64      `json:"monthly_payment"`
	TotalInterest  float64      `json:"total_interest"`
	TotalPayment   float64      `json:"total_payment"`
	Display        form.Display `json:"display"`
}

// CalculateLoan handles POST /loan/calculate.
func (h *LoanHandler) CalculateLoan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if !strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()

	var body interface{}
	if err := decodeSingle(dec, &body); err != nil {
		h.logger.WithError(err).Debug("error decoding request body", nil)
		writeError(w, r, h.logger, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	details, err := validateRequest(body)
	if err != nil {
		h.logger.WithError(err).Error("schema validation failed", nil)
		writeError(w, r, h.logger, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		return
	}
	if len(details) > 0 {
		writeError(w, r, h.logger, http.StatusBadRequest, errorResponse{
			Error:   "invalid request body",
			Details: details,
		})
		return
	}

	input, err := form.Parse(toFields(body.(map[string]interface{})))
	if err != nil {
		var fieldErrs form.FieldErrors
		if errors.As(err, &fieldErrs) {
			writeError(w, r, h.logger, http.StatusUnprocessableEntity, errorResponse{
				Error:  "validation failed",
				Fields: fieldErrs,
			})
			return
		}
		writeError(w, r, h.logger, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := h.service.CalculateLoan(r.Context(), input)
	if err != nil {
		var inputErr *domain.InvalidInputError
		if errors.As(err, &inputErr) {
			writeError(w, r, h.logger, http.StatusBadRequest, errorResponse{
				Error:  domain.ErrInvalidInput.Error(),
				Field:  inputErr.Field,
				Reason: inputErr.Reason,
			})
			return
		}
		h.logger.WithError(err).Error("calculation failed", nil)
		writeError(w, r, h.logger, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		return
	}

	writeJSON(w, h.logger, http.StatusOK, calculateResponse{
		MonthlyPayment: result.MonthlyPayment,
		TotalInterest:  result.TotalInterest,
		TotalPayment:   result.TotalPayment,
		Display:        form.Present(result),
	})
}

func toFields(body map[string]interface{}) form.Fields {
	return form.Fields{
		Principal:         fieldText(body[domain.FieldPrincipal]),
		AnnualRatePercent: fieldText(body[domain.FieldAnnualRatePercent]),
		TermYears:         fieldText(body[domain.FieldTermYears]),
	}
}

func fieldText(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	}
	return ""
}

// decodeSingle decodes exactly one JSON value; anything after it is an error.
func decodeSingle(dec *json.Decoder, v interface{}) error {
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON value")
	}
	return nil
}
