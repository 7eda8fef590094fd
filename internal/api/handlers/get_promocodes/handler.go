package get_promocodes

import (
	"net/http"

	"github.com/velmor/VCS-ConsultationService/internal/api/handlers"
)

type Handler struct {
	service PromoCodesService
	logger  Logger
}

func NewHandler(service PromoCodesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/promocodes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /promocodes - Failed to list promo codes: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /promocodes - Listed %d promo codes", len(result.PromoCodes))
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
