package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/velmor/VCS-ConsultationService/internal/api/handlers"
	"github.com/velmor/VCS-ConsultationService/internal/domain"
	getAvailability "github.com/velmor/VCS-ConsultationService/internal/usecase/get_availability"
)

const (
	msgMissingServiceTypeID = "отсутствует обязательный параметр serviceTypeId"
	msgInvalidDays          = "некорректный параметр days"
	msgServiceTypeNotFound  = "тип услуги не найден"
	msgUpstreamUnavailable  = "сервис календарей временно недоступен"
)

type Handler struct {
	useCase          GetAvailabilityUseCase
	defaultRangeDays int
	logger           Logger
}

func NewHandler(useCase GetAvailabilityUseCase, defaultRangeDays int, logger Logger) *Handler {
	return &Handler{
		useCase:          useCase,
		defaultRangeDays: defaultRangeDays,
		logger:           logger,
	}
}

// Handle GET /api/v1/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceTypeID := r.URL.Query().Get("serviceTypeId")
	if serviceTypeID == "" {
		h.logger.Warn("GET /availability - Missing serviceTypeId")
		handlers.RespondBadRequest(w, msgMissingServiceTypeID)
		return
	}

	days := h.defaultRangeDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > domain.MaxAvailabilityRangeDays {
			h.logger.Warn("GET /availability - Invalid days parameter: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidDays)
			return
		}
		days = parsed
	}

	now := time.Now()
	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		ServiceTypeID: serviceTypeID,
		From:          now,
		To:            now.AddDate(0, 0, days),
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrServiceTypeNotFound):
			h.logger.Warn("GET /availability - Service type not found: %s", serviceTypeID)
			handlers.RespondNotFound(w, msgServiceTypeNotFound)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, getAvailability.ErrUpstreamUnavailable):
			h.logger.Error("GET /availability - Upstream unavailable: %v", err)
			handlers.RespondError(w, http.StatusBadGateway, msgUpstreamUnavailable)

		default:
			h.logger.Error("GET /availability - Failed to resolve availability: service_type=%s, error=%v",
				serviceTypeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Resolved %d dates for service_type=%s", len(result.Dates), serviceTypeID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
