package validate_promo

import (
	"errors"
	"net/http"

	"github.com/velmor/VCS-ConsultationService/internal/api/handlers"
	validatePromo "github.com/velmor/VCS-ConsultationService/internal/usecase/validate_promo"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
)

type Handler struct {
	useCase ValidatePromoUseCase
	logger  Logger
}

func NewHandler(useCase ValidatePromoUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/promocodes/validate
// Отказ валидации - это не HTTP-ошибка: ответ всегда 200 с valid=true/false,
// чтобы фронтенд показывал причину без разбора статусов
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ValidatePromoRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /promocodes/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &validatePromo.Request{
		Code:          req.Code,
		OriginalPrice: req.OriginalPrice,
	})
	if err != nil {
		switch {
		case errors.Is(err, validatePromo.ErrInvalidInput):
			h.logger.Warn("POST /promocodes/validate - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /promocodes/validate - Failed to validate promo code: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /promocodes/validate - Validated code: valid=%t", result.Valid)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
