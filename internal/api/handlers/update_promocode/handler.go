package update_promocode

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/velmor/VCS-ConsultationService/internal/api/handlers"
	"github.com/velmor/VCS-ConsultationService/internal/service/promocodes"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC3339"
	msgMissingCode        = "отсутствует код промокода"
	msgNotFound           = "промокод не найден"
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

// Handle PATCH /api/v1/promocodes/{code}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	code := vars["code"]
	if code == "" {
		h.logger.Warn("PATCH /promocodes/{code} - Missing code")
		handlers.RespondBadRequest(w, msgMissingCode)
		return
	}

	var req UpdatePromoCodeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /promocodes/{code} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("PATCH /promocodes/{code} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.service.Update(r.Context(), code, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, promocodes.ErrPromoCodeNotFound):
			h.logger.Warn("PATCH /promocodes/{code} - Promo code not found: %s", code)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, promocodes.ErrInvalidInput):
			h.logger.Warn("PATCH /promocodes/{code} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /promocodes/{code} - Failed to update promo code %s: %v", code, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /promocodes/{code} - Promo code updated: %s", result.Code)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
