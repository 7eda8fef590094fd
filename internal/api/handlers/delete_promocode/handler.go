package delete_promocode

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

// Handle DELETE /api/v1/promocodes/{code}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	code := vars["code"]
	if code == "" {
		h.logger.Warn("DELETE /promocodes/{code} - Missing code")
		handlers.RespondBadRequest(w, msgMissingCode)
		return
	}

	if err := h.service.Delete(r.Context(), code); err != nil {
		switch {
		case errors.Is(err, promocodes.ErrPromoCodeNotFound):
			h.logger.Warn("DELETE /promocodes/{code} - Promo code not found: %s", code)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /promocodes/{code} - Failed to delete promo code %s: %v", code, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /promocodes/{code} - Promo code deleted: %s", code)
	w.WriteHeader(http.StatusNoContent)
}
