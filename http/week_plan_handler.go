package http

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"vaddi-calculator/service"
)

type WeekPlanHandler struct {
	service  *service.WeekPlanService
	validate *validator.Validate
	logger   zerolog.Logger
}

func NewWeekPlanHandler(service *service.WeekPlanService, logger zerolog.Logger) *WeekPlanHandler {
	return &WeekPlanHandler{
		service:  service,
		validate: newValidator(),
		logger:   logger,
	}
}

func (h *WeekPlanHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed", nil)
		return
	}

	var req weekPlanRequest
	if !bindJSON(w, r, h.validate, h.logger, &req) {
		return
	}

	result, err := h.service.Recommend(r.Context(), req.input())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeData(w, h.logger, result)
}
