package get_promocode

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/velmor/VCS-ConsultationService/internal/api/handlers"
	"github.com/velmor/VCS-ConsultationService/internal/service/promocodes"
)

const (
	msgMissingCode = "отсутствует код промокода"
	msgNotFound    = "промокод не найден"
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

// Handle GET /api/v1/promocodes/{code}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	code := vars["code"]
	if code == "" {
		h.logger.Warn("GET /promocodes/{code} - Missing code")
		handlers.RespondBadRequest(w, msgMissingCode)
		return
	}

	result, err := h.service.GetByCode(r.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, promocodes.ErrPromoCodeNotFound):
			h.logger.Warn("GET /promocodes/{code} - Promo code not found: %s", code)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /promocodes/{code} - Failed to get promo code %s: %v", code, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
