package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/velmor/VCS-ConsultationService/internal/domain"
	"github.com/velmor/VCS-ConsultationService/internal/integrations/fieldservice"
)

// UseCase use case для вычисления доступных для бронирования слотов
//
// Маппинги услуг и рабочие часы приходят из конфигурации один раз при старте
// и не меняются в течение жизни процесса
type UseCase struct {
	mappings         []domain.ServiceTypeMapping
	hours            domain.BusinessHours
	minNoticeMinutes int
	calendar         CalendarClient
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	mappings []domain.ServiceTypeMapping,
	hours domain.BusinessHours,
	minNoticeMinutes int,
	calendar CalendarClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		mappings:         mappings,
		hours:            hours,
		minNoticeMinutes: minNoticeMinutes,
		calendar:         calendar,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case получения доступных слотов
// Повторный вызов с неизменными данными календарей дает идентичный результат
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: service_type=%s, from=%s, to=%s",
		req.ServiceTypeID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Ищем маппинг типа услуги; неизвестный тип - быстрый отказ
	mapping, ok := findMapping(uc.mappings, req.ServiceTypeID)
	if !ok {
		uc.logger.Warn("GetAvailability: service type %s not found", req.ServiceTypeID)
		return nil, ErrServiceTypeNotFound
	}

	// 3. Прошлое и слоты ближе минимального уведомления не предлагаем
	now := uc.timeProvider.Now()
	cutoff := maxTime(req.From, now.Add(time.Duration(uc.minNoticeMinutes)*time.Minute))
	if !cutoff.Before(req.To) {
		return uc.emptyResponse(req.ServiceTypeID, mapping), nil
	}

	// Сетка слотов привязана к началу рабочего дня в бизнес-часовом поясе,
	// а не к моменту запроса: границы слотов одинаковы при любом времени
	// вычисления, граница cutoff лишь отсекает уже недоступные слоты
	rangeStart := uc.hours.DayStart(cutoff)

	// 4. Получаем специалистов, выполняющих этот тип работы
	technicians, err := uc.calendar.ListTechnicians(ctx, mapping.JobTypeID)
	if err != nil {
		if errors.Is(err, fieldservice.ErrJobTypeNotFound) {
			uc.logger.Warn("GetAvailability: job type %s unknown to field service", mapping.JobTypeID)
			return nil, ErrServiceTypeNotFound
		}
		uc.logger.Error("GetAvailability: failed to list technicians for job type %s: %v", mapping.JobTypeID, err)
		return nil, fmt.Errorf("%w: failed to list technicians: %v", ErrUpstreamUnavailable, err)
	}

	if len(technicians) == 0 {
		uc.logger.Info("GetAvailability: no technicians for job type %s", mapping.JobTypeID)
		return uc.emptyResponse(req.ServiceTypeID, mapping), nil
	}

	// 5. Собираем слоты по каждому специалисту
	// Отказ календаря одного специалиста деградирует выдачу частично:
	// его слоты исключаются, остальные специалисты обрабатываются дальше
	allSlots := make([]domain.Slot, 0)
	for _, tech := range technicians {
		busy, err := uc.calendar.GetBusyIntervals(ctx, tech.ID, rangeStart, req.To)
		if err != nil {
			uc.logger.Warn("GetAvailability: skipping technician %s, calendar fetch failed: %v", tech.ID, err)
			continue
		}

		busyWindows := make([]domain.TimeWindow, 0, len(busy))
		for _, b := range busy {
			busyWindows = append(busyWindows, domain.TimeWindow{Start: b.Start, End: b.End})
		}

		windows := buildFreeWindows(busyWindows, rangeStart, req.To, uc.hours, mapping.Duration())
		slots := sliceWindows(windows, mapping.Duration(), tech.ID)
		allSlots = append(allSlots, dropSlotsBefore(slots, cutoff)...)
	}

	// 6. Группируем по датам
	entries := groupSlotsByDate(allSlots)

	uc.logger.Info("GetAvailability: service_type=%s, %d technicians, %d dates with slots",
		req.ServiceTypeID, len(technicians), len(entries))

	return &Response{
		ServiceTypeID:   req.ServiceTypeID,
		DurationMinutes: mapping.DurationMinutes,
		Dates:           entries,
	}, nil
}

func (uc *UseCase) emptyResponse(serviceTypeID string, mapping domain.ServiceTypeMapping) *Response {
	return &Response{
		ServiceTypeID:   serviceTypeID,
		DurationMinutes: mapping.DurationMinutes,
		Dates:           []domain.DateEntry{},
	}
}
