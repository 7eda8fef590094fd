package create_promocode

import (
	"errors"
	"net/http"

	"github.com/velmor/VCS-ConsultationService/internal/api/handlers"
	"github.com/velmor/VCS-ConsultationService/internal/service/promocodes"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC3339"
	msgAlreadyExists      = "промокод с таким кодом уже существует"
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

// Handle POST /api/v1/promocodes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreatePromoCodeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /promocodes - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /promocodes - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, promocodes.ErrInvalidInput):
			h.logger.Warn("POST /promocodes - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, promocodes.ErrPromoCodeAlreadyExists):
			h.logger.Warn("POST /promocodes - Promo code already exists: %s", req.Code)
			handlers.RespondConflict(w, msgAlreadyExists)

		default:
			h.logger.Error("POST /promocodes - Failed to create promo code: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /promocodes - Promo code created: %s (id=%d)", result.Code, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromServiceResponse(result))
}
