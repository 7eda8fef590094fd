package create_booking

import (
	"errors"
	"net/http"

	"github.com/velmor/VCS-ConsultationService/internal/api/handlers"
	createBooking "github.com/velmor/VCS-ConsultationService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidTime         = "некорректный формат времени, ожидается RFC3339"
	msgServiceTypeNotFound = "тип услуги не найден"
	msgSlotNotAvailable    = "выбранный временной слот недоступен"
	msgPromoCodeInvalid    = "промокод недействителен"
	msgPromoCodeExhausted  = "лимит использований промокода исчерпан"
	msgReservationFailed   = "система резервирования временно недоступна"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createBooking.ErrServiceTypeNotFound):
			h.logger.Warn("POST /bookings - Service type not found: job_type=%s", req.JobTypeID)
			handlers.RespondNotFound(w, msgServiceTypeNotFound)

		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings - Slot not available: technician=%s, start=%s",
				req.TechnicianID, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrPromoCodeExhausted):
			h.logger.Warn("POST /bookings - Promo code exhausted")
			handlers.RespondConflict(w, msgPromoCodeExhausted)

		case errors.Is(err, createBooking.ErrPromoCodeInvalid):
			h.logger.Warn("POST /bookings - Promo code invalid: %v", err)
			handlers.RespondBadRequest(w, msgPromoCodeInvalid)

		case errors.Is(err, createBooking.ErrReservationFailed):
			h.logger.Error("POST /bookings - Reservation failed: %v", err)
			handlers.RespondError(w, http.StatusBadGateway, msgReservationFailed)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: technician=%s, error=%v",
				req.TechnicianID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: reservation_id=%s, technician=%s",
		result.ReservationID, result.TechnicianID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
