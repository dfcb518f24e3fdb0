package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/maple-budget/maple/internal/coach"
	"github.com/maple-budget/maple/internal/debt"
	"github.com/maple-budget/maple/internal/model"
	"github.com/maple-budget/maple/internal/store"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

var (
	errBadBody       = errors.New("invalid request body")
	errCoachDisabled = errors.New("coach is not configured")
)

// envelope wraps every response body.
type envelope struct {
	Success bool               `json:"success"`
	Data    any                `json:"data,omitempty"`
	Message string             `json:"message,omitempty"`
	Errors  []model.FieldError `json:"errors,omitempty"`
}

func (s *Server) respond(w http.ResponseWriter, status int, data any, message string) {
	s.write(w, status, envelope{Success: true, Data: data, Message: message})
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.write(w, status, envelope{Message: message})
}

func (s *Server) write(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Warn("writing response", zap.Error(err))
	}
}

// fail maps err to a status and message. Unexpected errors are logged and
// reported without detail.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	var verrs model.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		s.write(w, http.StatusBadRequest, envelope{Message: "Validation failed", Errors: verrs})
	case errors.Is(err, errBadBody):
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
	case errors.Is(err, debt.ErrPaymentBelowMinimum):
		s.respondError(w, http.StatusBadRequest, "Custom payment cannot be less than minimum payment")
	case errors.Is(err, debt.ErrNeverPaidOff):
		s.respondError(w, http.StatusBadRequest, "These payments never pay off the debts; increase the monthly payment")
	case errors.Is(err, coach.ErrEmptyMessage):
		s.respondError(w, http.StatusBadRequest, "Message is required")
	case errors.Is(err, debt.ErrNotADebt):
		s.respondError(w, http.StatusNotFound, "Debt not found")
	case errors.Is(err, store.ErrNotFound):
		s.respondError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, store.ErrConflict):
		s.respondError(w, http.StatusConflict, "Already exists")
	case errors.Is(err, errCoachDisabled):
		s.respondError(w, http.StatusServiceUnavailable, "AI coach is not configured")
	case errors.Is(err, coach.ErrInvalidResponse):
		s.logger.Warn("coach answer rejected", zap.String("path", r.URL.Path), zap.Error(err))
		s.respondError(w, http.StatusBadGateway, "Invalid response from AI service")
	default:
		s.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", requestID(r)),
			zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// decode reads a JSON body into v.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Join(errBadBody, err)
	}
	return nil
}
