package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"vaddi-calculator/domain"
	"vaddi-calculator/service"
)

const dateLayout = "2006-01-02"

type InstallmentHandler struct {
	service  *service.InstallmentService
	validate *validator.Validate
	logger   zerolog.Logger
	now      func() time.Time
}

func NewInstallmentHandler(service *service.InstallmentService, logger zerolog.Logger) *InstallmentHandler {
	return &InstallmentHandler{
		service:  service,
		validate: newValidator(),
		logger:   logger,
		now:      time.Now,
	}
}

// Calculate serves POST with a JSON body and GET with query parameters; the GET form
// lets a form recompute on every keystroke.
func (h *InstallmentHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var input domain.InstallmentInput
	switch r.Method {
	case http.MethodGet:
		var ok bool
		if input, ok = h.inputFromQuery(w, r); !ok {
			return
		}
	case http.MethodPost:
		var req calculateRequest
		if !h.bind(w, r, &req) {
			return
		}
		input = req.input()
	default:
		writeError(w, h.logger, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed", nil)
		return
	}

	result, err := h.service.Calculate(r.Context(), input)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	w.Header().Set("X-Calculation-ID", uuid.NewString())
	writeData(w, h.logger, result)
}

func (h *InstallmentHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed", nil)
		return
	}

	var req scheduleRequest
	if !h.bind(w, r, &req) {
		return
	}

	start := h.now().UTC().Truncate(24 * time.Hour)
	if req.StartDate != "" {
		// already checked by the datetime tag
		start, _ = time.Parse(dateLayout, req.StartDate)
	}

	schedule, err := h.service.Schedule(r.Context(), req.input(), start)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	w.Header().Set("X-Calculation-ID", uuid.NewString())
	writeData(w, h.logger, schedule)
}

func (h *InstallmentHandler) inputFromQuery(w http.ResponseWriter, r *http.Request) (domain.InstallmentInput, bool) {
	details := map[string]string{}
	principal, err := queryInt64(r, "principal")
	if err != nil {
		details["principal"] = queryReason(err)
	}
	weeks, err := queryInt64(r, "week_count")
	if err != nil {
		details["week_count"] = queryReason(err)
	}
	// nominal_rate is only echoed; anything unparsable reads as 0.
	rate, _ := queryInt64(r, "nominal_rate")
	if len(details) > 0 {
		writeError(w, h.logger, http.StatusUnprocessableEntity, "invalid_input", "invalid input", details)
		return domain.InstallmentInput{}, false
	}
	return domain.InstallmentInput{Principal: principal, WeekCount: weeks, NominalRate: rate}, true
}

// bind decodes and validates a request body, writing the error response itself.
func (h *InstallmentHandler) bind(w http.ResponseWriter, r *http.Request, dst any) bool {
	return bindJSON(w, r, h.validate, h.logger, dst)
}

func bindJSON(w http.ResponseWriter, r *http.Request, v *validator.Validate, logger zerolog.Logger, dst any) bool {
	if err := decodeJSON(r, w, dst); err != nil {
		logger.Debug().Err(err).Msg("decode request body")
		if errors.Is(err, errUnsupportedMediaType) {
			writeError(w, logger, http.StatusUnsupportedMediaType, "unsupported_media_type", err.Error(), nil)
			return false
		}
		writeError(w, logger, http.StatusBadRequest, "bad_request", "invalid request body", nil)
		return false
	}
	if err := v.Struct(dst); err != nil {
		details, ok := fieldErrors(err)
		if !ok {
			logger.Error().Err(err).Msg("validate request")
			writeError(w, logger, http.StatusInternalServerError, "internal", "internal server error", nil)
			return false
		}
		writeError(w, logger, http.StatusUnprocessableEntity, "invalid_input", "invalid input", details)
		return false
	}
	return true
}
