package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"vaddi-calculator/service"
)

// ErrorBody is the error payload of every failed request.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type envelope struct {
	Data  any        `json:"data,omitempty"`
	Error *ErrorBody `json:"error,omitempty"`
}

// writeJSON encodes into a buffer first so a failed encode never leaves a half
// written 200 behind.
func writeJSON(w http.ResponseWriter, logger zerolog.Logger, status int, body envelope) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		logger.Error().Err(err).Msg("encode response")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Warn().Err(err).Msg("write response")
	}
}

func writeData(w http.ResponseWriter, logger zerolog.Logger, data any) {
	writeJSON(w, logger, http.StatusOK, envelope{Data: data})
}

func writeError(w http.ResponseWriter, logger zerolog.Logger, status int, code, message string, details any) {
	writeJSON(w, logger, status, envelope{Error: &ErrorBody{Code: code, Message: message, Details: details}})
}

// writeServiceError maps service failures onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, logger, http.StatusUnprocessableEntity, "invalid_input", verr.Error(),
			map[string]string{verr.Field: verr.Reason})
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, logger, http.StatusUnprocessableEntity, "invalid_input", err.Error(), nil)
	case errors.Is(err, service.ErrNoWeekPlan):
		writeError(w, logger, http.StatusUnprocessableEntity, "no_plan", err.Error(), nil)
	default:
		logger.Error().Err(err).Msg("unexpected service error")
		writeError(w, logger, http.StatusInternalServerError, "internal", "internal server error", nil)
	}
}
