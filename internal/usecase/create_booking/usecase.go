package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/velmor/VCS-ConsultationService/internal/domain"
	"github.com/velmor/VCS-ConsultationService/internal/integrations/fieldservice"
	promoRepo "github.com/velmor/VCS-ConsultationService/internal/infra/storage/promocode"
	"github.com/velmor/VCS-ConsultationService/internal/notifier"
	availability "github.com/velmor/VCS-ConsultationService/internal/usecase/get_availability"
	validatePromo "github.com/velmor/VCS-ConsultationService/internal/usecase/validate_promo"
)

// UseCase use case бронирования консультации
//
// Жизненный цикл запроса: Received -> Validated -> SlotConfirmed -> Reserved,
// с типизированным отказом на каждом шаге. Межзапросного состояния нет:
// конфликтами конкурентных бронирований владеет внешняя система резервирования
type UseCase struct {
	mappings     []domain.ServiceTypeMapping
	hours        domain.BusinessHours
	resolver     AvailabilityResolver
	promo        PromoValidator
	promoRepo    PromoCodeRepository
	reservations ReservationClient
	prices       PriceClient
	notifier     NotificationEnqueuer
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	mappings []domain.ServiceTypeMapping,
	hours domain.BusinessHours,
	resolver AvailabilityResolver,
	promo PromoValidator,
	promoCodeRepo PromoCodeRepository,
	reservations ReservationClient,
	prices PriceClient,
	notificationEnqueuer NotificationEnqueuer,
	logger Logger,
) *UseCase {
	return &UseCase{
		mappings:     mappings,
		hours:        hours,
		resolver:     resolver,
		promo:        promo,
		promoRepo:    promoCodeRepo,
		reservations: reservations,
		prices:       prices,
		notifier:     notificationEnqueuer,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет бронирование
// Порядок жесткий: подтверждение доступности слота обязано завершиться успехом
// до вызова внешнего резервирования - это закрывает окно между выбором слота
// клиентом и отправкой формы
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	requestID := uuid.NewString()

	uc.logger.Info("CreateBooking[%s]: technician=%s, job_type=%s, start=%s",
		requestID, req.TechnicianID, req.JobTypeID, req.StartTime.Format(time.RFC3339))

	// 1. Received -> Validated: проверяем поля запроса
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking[%s]: validation failed: %v", requestID, err)
		return nil, err
	}

	// Прошлое не бронируем, без походов во внешние системы
	if req.StartTime.Before(uc.timeProvider.Now()) {
		uc.logger.Warn("CreateBooking[%s]: start time %s is in the past",
			requestID, req.StartTime.Format(time.RFC3339))
		return nil, fmt.Errorf("%w: startTime is in the past", ErrInvalidInput)
	}

	mapping, ok := findMappingByJobType(uc.mappings, req.JobTypeID)
	if !ok {
		uc.logger.Warn("CreateBooking[%s]: job type %s not found in service mappings", requestID, req.JobTypeID)
		return nil, ErrServiceTypeNotFound
	}

	if err := validateWindowMatchesDuration(req, mapping); err != nil {
		uc.logger.Warn("CreateBooking[%s]: window validation failed: %v", requestID, err)
		return nil, err
	}

	// 2. Validated -> SlotConfirmed: перевычисляем доступность на дату слота
	if err := uc.confirmSlot(ctx, requestID, req, mapping); err != nil {
		return nil, err
	}

	// 3. Цена консультации из платежного сервиса
	price, err := uc.prices.GetPrice(ctx, mapping.Label)
	if err != nil {
		uc.logger.Error("CreateBooking[%s]: failed to get price for %s: %v", requestID, mapping.Label, err)
		return nil, fmt.Errorf("%w: failed to get price: %v", ErrInternal, err)
	}

	originalPrice := price.Price
	discount := 0.0
	finalPrice := originalPrice

	// 4. Промокод: валидация и атомарное списание использования
	// Списание идет до внешнего резервирования, чтобы исчерпанный код
	// не превратился молча в бронирование по полной цене
	var appliedCode *string
	if req.PromoCode != nil {
		code := strings.ToUpper(strings.TrimSpace(*req.PromoCode))

		promoResult, err := uc.promo.Execute(ctx, &validatePromo.Request{
			Code:          code,
			OriginalPrice: originalPrice,
		})
		if err != nil {
			uc.logger.Error("CreateBooking[%s]: promo validation failed: %v", requestID, err)
			return nil, fmt.Errorf("%w: promo validation failed: %v", ErrInternal, err)
		}

		if !promoResult.Valid {
			uc.logger.Warn("CreateBooking[%s]: promo code rejected: %s", requestID, promoResult.Error)
			if promoResult.Error == validatePromo.ReasonUsageLimitReached {
				return nil, ErrPromoCodeExhausted
			}
			return nil, fmt.Errorf("%w: %s", ErrPromoCodeInvalid, promoResult.Error)
		}

		if err := uc.redeemPromoCode(ctx, requestID, code); err != nil {
			return nil, err
		}

		discount = *promoResult.DiscountAmount
		finalPrice = *promoResult.FinalPrice
		appliedCode = &code
	}

	// 5. SlotConfirmed -> Reserved: создаем работу во внешней системе
	job, err := uc.reservations.CreateJob(ctx, fieldservice.CreateJobRequest{
		CustomerName:  req.Name,
		CustomerEmail: req.Email,
		CustomerPhone: req.Phone,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		TechnicianID:  req.TechnicianID,
		JobTypeID:     req.JobTypeID,
		Note:          buildJobNote(mapping.Label, finalPrice, appliedCode),
	})
	if err != nil {
		uc.releasePromoCode(ctx, requestID, appliedCode)

		// Конфликт - штатный исход гонки за слот, а не сбой:
		// клиент выбирает слот заново, автоматический ретрай не делаем
		if errors.Is(err, fieldservice.ErrJobConflict) {
			uc.logger.Warn("CreateBooking[%s]: reservation conflict for technician=%s, start=%s",
				requestID, req.TechnicianID, req.StartTime.Format(time.RFC3339))
			return nil, ErrSlotUnavailable
		}

		uc.logger.Error("CreateBooking[%s]: reservation call failed: %v", requestID, err)
		return nil, fmt.Errorf("%w: %v", ErrReservationFailed, err)
	}

	uc.logger.Info("CreateBooking[%s]: reserved job id=%s", requestID, job.ID)

	// 6. Уведомление через очередь; отказ постановки бронирование не отменяет
	uc.enqueueConfirmation(ctx, requestID, req, job.ID, mapping.Label, finalPrice)

	return &Response{
		ReservationID:  job.ID,
		TechnicianID:   req.TechnicianID,
		JobTypeID:      req.JobTypeID,
		ServiceLabel:   mapping.Label,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		OriginalPrice:  originalPrice,
		DiscountAmount: discount,
		FinalPrice:     finalPrice,
		PromoCode:      appliedCode,
	}, nil
}

// confirmSlot перепроверяет, что запрошенный слот присутствует в актуальной выдаче
// Границы дня берутся в бизнес-часовом поясе: смещение часового пояса
// в клиентском RFC3339 на перепроверку не влияет
func (uc *UseCase) confirmSlot(ctx context.Context, requestID string, req *Request, mapping domain.ServiceTypeMapping) error {
	dayStart := uc.hours.DayStart(req.StartTime)

	avail, err := uc.resolver.Execute(ctx, &availability.Request{
		ServiceTypeID: mapping.ServiceTypeID,
		From:          dayStart,
		To:            dayStart.AddDate(0, 0, 1),
	})
	if err != nil {
		if errors.Is(err, availability.ErrServiceTypeNotFound) {
			return ErrServiceTypeNotFound
		}
		uc.logger.Error("CreateBooking[%s]: availability re-check failed: %v", requestID, err)
		return fmt.Errorf("%w: availability re-check failed: %v", ErrInternal, err)
	}

	if !avail.FindSlot(req.StartTime, req.EndTime, req.TechnicianID) {
		uc.logger.Warn("CreateBooking[%s]: slot no longer available: technician=%s, start=%s",
			requestID, req.TechnicianID, req.StartTime.Format(time.RFC3339))
		return ErrSlotUnavailable
	}

	return nil
}

// redeemPromoCode атомарно списывает использование промокода
// Проигранная гонка за последнее использование - отказ бронирования
func (uc *UseCase) redeemPromoCode(ctx context.Context, requestID, code string) error {
	err := uc.promoRepo.IncrementUsage(ctx, code)
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, promoRepo.ErrUsageLimitReached):
		uc.logger.Warn("CreateBooking[%s]: promo code %s exhausted by concurrent redemption", requestID, code)
		return ErrPromoCodeExhausted
	case errors.Is(err, promoRepo.ErrPromoCodeNotFound):
		uc.logger.Warn("CreateBooking[%s]: promo code %s disappeared before redemption", requestID, code)
		return fmt.Errorf("%w: %s", ErrPromoCodeInvalid, validatePromo.ReasonInvalidCode)
	default:
		uc.logger.Error("CreateBooking[%s]: promo redemption failed: %v", requestID, err)
		return fmt.Errorf("%w: promo redemption failed: %v", ErrInternal, err)
	}
}

// releasePromoCode компенсирует списание, если резервирование не состоялось
// Неудачная компенсация только логируется: код недосписан, а не пересписан
func (uc *UseCase) releasePromoCode(ctx context.Context, requestID string, code *string) {
	if code == nil {
		return
	}
	if err := uc.promoRepo.ReleaseUsage(ctx, *code); err != nil {
		uc.logger.Error("CreateBooking[%s]: failed to release promo code %s: %v", requestID, *code, err)
	}
}

// enqueueConfirmation ставит уведомление о бронировании в очередь
func (uc *UseCase) enqueueConfirmation(ctx context.Context, requestID string, req *Request, jobID, label string, finalPrice float64) {
	payload := notifier.NotificationPayload{
		Recipient: req.Email,
		Content: fmt.Sprintf("Your %s is confirmed for %s. Total: %.2f. Reservation: %s",
			label, req.StartTime.Format("2006-01-02 15:04"), finalPrice, jobID),
		ReservationID: jobID,
	}

	if err := uc.notifier.Enqueue(ctx, payload); err != nil {
		uc.logger.Warn("CreateBooking[%s]: failed to enqueue confirmation for job %s: %v", requestID, jobID, err)
	}
}

// buildJobNote собирает заметку для работы во внешней системе
// Заметка длиннее MaxNoteLength обрезается
func buildJobNote(label string, finalPrice float64, promoCode *string) string {
	note := fmt.Sprintf("%s, total %.2f", label, finalPrice)
	if promoCode != nil {
		note += fmt.Sprintf(" (promo %s)", *promoCode)
	}
	if runes := []rune(note); len(runes) > domain.MaxNoteLength {
		note = string(runes[:domain.MaxNoteLength])
	}
	return note
}
