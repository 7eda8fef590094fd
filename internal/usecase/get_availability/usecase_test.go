package get_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velmor/VCS-ConsultationService/internal/domain"
	"github.com/velmor/VCS-ConsultationService/internal/integrations/fieldservice"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

// fakeCalendar детерминированный клиент календарей для тестов
type fakeCalendar struct {
	technicians   []fieldservice.Technician
	listErr       error
	busy          map[string][]fieldservice.BusyInterval
	busyErr       map[string]error
	busyCallCount int
}

func (f *fakeCalendar) ListTechnicians(ctx context.Context, jobTypeID string) ([]fieldservice.Technician, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.technicians, nil
}

func (f *fakeCalendar) GetBusyIntervals(ctx context.Context, technicianID string, from, to time.Time) ([]fieldservice.BusyInterval, error) {
	f.busyCallCount++
	if err, ok := f.busyErr[technicianID]; ok {
		return nil, err
	}
	return f.busy[technicianID], nil
}

var testMappings = []domain.ServiceTypeMapping{
	{ServiceTypeID: "virtual-consult-basic", JobTypeID: "jt_basic", Label: "Basic Consultation", DurationMinutes: 30},
	{ServiceTypeID: "virtual-consult-extended", JobTypeID: "jt_extended", Label: "Extended Consultation", DurationMinutes: 60},
}

func newTestUseCase(calendar CalendarClient, now time.Time) *UseCase {
	uc := NewUseCase(testMappings, testHours, 60, calendar, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func TestExecute_UnknownServiceType(t *testing.T) {
	uc := newTestUseCase(&fakeCalendar{}, mustTime(t, "2026-09-01T00:00:00Z"))

	_, err := uc.Execute(context.Background(), &Request{
		ServiceTypeID: "no-such-type",
		From:          mustTime(t, "2026-09-01T00:00:00Z"),
		To:            mustTime(t, "2026-09-02T00:00:00Z"),
	})

	assert.ErrorIs(t, err, ErrServiceTypeNotFound)
}

func TestExecute_InvalidRange(t *testing.T) {
	uc := newTestUseCase(&fakeCalendar{}, mustTime(t, "2026-09-01T00:00:00Z"))

	_, err := uc.Execute(context.Background(), &Request{
		ServiceTypeID: "virtual-consult-basic",
		From:          mustTime(t, "2026-09-02T00:00:00Z"),
		To:            mustTime(t, "2026-09-01T00:00:00Z"),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_SlotsForFreeTechnician(t *testing.T) {
	calendar := &fakeCalendar{
		technicians: []fieldservice.Technician{{ID: "tech-1", Name: "Anna"}},
	}
	uc := newTestUseCase(calendar, mustTime(t, "2026-08-31T12:00:00Z"))

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceTypeID: "virtual-consult-basic",
		From:          mustTime(t, "2026-09-01T00:00:00Z"),
		To:            mustTime(t, "2026-09-02T00:00:00Z"),
	})

	require.NoError(t, err)
	assert.Equal(t, 30, resp.DurationMinutes)
	require.Len(t, resp.Dates, 1)
	assert.Equal(t, "2026-09-01", resp.Dates[0].Date)
	// 09:00-18:00 по 30 минут = 18 слотов
	assert.Len(t, resp.Dates[0].Slots, 18)
}

func TestExecute_BusyIntervalRemovesSlots(t *testing.T) {
	calendar := &fakeCalendar{
		technicians: []fieldservice.Technician{{ID: "tech-1"}},
		busy: map[string][]fieldservice.BusyInterval{
			"tech-1": {
				{Start: mustTime(t, "2026-09-01T09:00:00Z"), End: mustTime(t, "2026-09-01T17:00:00Z")},
			},
		},
	}
	uc := newTestUseCase(calendar, mustTime(t, "2026-08-31T12:00:00Z"))

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceTypeID: "virtual-consult-basic",
		From:          mustTime(t, "2026-09-01T00:00:00Z"),
		To:            mustTime(t, "2026-09-02T00:00:00Z"),
	})

	require.NoError(t, err)
	require.Len(t, resp.Dates, 1)
	// Свободно только 17:00-18:00 = 2 слота
	require.Len(t, resp.Dates[0].Slots, 2)
	assert.Equal(t, mustTime(t, "2026-09-01T17:00:00Z"), resp.Dates[0].Slots[0].Start)
	assert.Equal(t, mustTime(t, "2026-09-01T17:30:00Z"), resp.Dates[0].Slots[1].Start)
}

func TestExecute_MinNoticeFiltersNearSlots(t *testing.T) {
	calendar := &fakeCalendar{
		technicians: []fieldservice.Technician{{ID: "tech-1"}},
	}
	// Сейчас 10:15, минимальное уведомление 60 минут: слоты раньше 11:15 не предлагаются,
	// но сетка слотов остается привязанной к началу рабочего дня
	uc := newTestUseCase(calendar, mustTime(t, "2026-09-01T10:15:00Z"))

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceTypeID: "virtual-consult-basic",
		From:          mustTime(t, "2026-09-01T00:00:00Z"),
		To:            mustTime(t, "2026-09-02T00:00:00Z"),
	})

	require.NoError(t, err)
	require.Len(t, resp.Dates, 1)
	// 11:30-17:30 по 30 минут = 13 слотов
	require.Len(t, resp.Dates[0].Slots, 13)
	assert.Equal(t, mustTime(t, "2026-09-01T11:30:00Z"), resp.Dates[0].Slots[0].Start)
	for _, slot := range resp.Dates[0].Slots {
		assert.Zero(t, slot.Start.Minute()%30, "slot %s is off the half-hour grid", slot.Start)
	}
}

func TestExecute_GridNotAnchoredToRequestMoment(t *testing.T) {
	calendar := &fakeCalendar{
		technicians: []fieldservice.Technician{{ID: "tech-1"}},
	}
	// Запрос "с текущего момента" в произвольную секунду дня
	now := mustTime(t, "2026-09-01T10:07:23Z")
	uc := newTestUseCase(calendar, now)

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceTypeID: "virtual-consult-basic",
		From:          now,
		To:            mustTime(t, "2026-09-02T00:00:00Z"),
	})

	require.NoError(t, err)
	require.Len(t, resp.Dates, 1)
	require.NotEmpty(t, resp.Dates[0].Slots)
	// Граница уведомления 11:07:23 отсекает слоты до нее, но не сдвигает сетку
	assert.Equal(t, mustTime(t, "2026-09-01T11:30:00Z"), resp.Dates[0].Slots[0].Start)
}

func TestExecute_AdvertisedSlotSurvivesLaterReResolution(t *testing.T) {
	calendar := &fakeCalendar{
		technicians: []fieldservice.Technician{{ID: "tech-1"}},
		busy: map[string][]fieldservice.BusyInterval{
			"tech-1": {
				{Start: mustTime(t, "2026-09-01T09:00:00Z"), End: mustTime(t, "2026-09-01T10:30:00Z")},
			},
		},
	}

	// Клиент открывает выдачу в 10:07:23 с диапазоном от текущего момента
	displayedAt := mustTime(t, "2026-09-01T10:07:23Z")
	uc := newTestUseCase(calendar, displayedAt)

	shown, err := uc.Execute(context.Background(), &Request{
		ServiceTypeID: "virtual-consult-basic",
		From:          displayedAt,
		To:            mustTime(t, "2026-09-02T00:00:00Z"),
	})
	require.NoError(t, err)
	require.Len(t, shown.Dates, 1)
	require.NotEmpty(t, shown.Dates[0].Slots)
	first := shown.Dates[0].Slots[0]

	// Форму бронирования отправили через пять минут; перепроверка доступности
	// идет от начала дня и обязана найти тот же слот
	uc.timeProvider = fixedTime{now: displayedAt.Add(5 * time.Minute)}

	recheck, err := uc.Execute(context.Background(), &Request{
		ServiceTypeID: "virtual-consult-basic",
		From:          mustTime(t, "2026-09-01T00:00:00Z"),
		To:            mustTime(t, "2026-09-02T00:00:00Z"),
	})
	require.NoError(t, err)
	assert.True(t, recheck.FindSlot(first.Start, first.End, first.TechnicianID),
		"slot %s shown to the client is gone on re-check", first.Start)
}

func TestExecute_ClientOffsetDoesNotShiftGrid(t *testing.T) {
	calendar := &fakeCalendar{
		technicians: []fieldservice.Technician{{ID: "tech-1"}},
	}
	uc := newTestUseCase(calendar, mustTime(t, "2026-08-31T12:00:00Z"))

	// Тот же диапазон 2026-09-01, но выраженный со смещением +05:00
	offset := time.FixedZone("", 5*3600)
	resp, err := uc.Execute(context.Background(), &Request{
		ServiceTypeID: "virtual-consult-basic",
		From:          time.Date(2026, 9, 1, 5, 0, 0, 0, offset),
		To:            time.Date(2026, 9, 2, 5, 0, 0, 0, offset),
	})

	require.NoError(t, err)
	require.Len(t, resp.Dates, 1)
	require.Len(t, resp.Dates[0].Slots, 18)
	assert.True(t, resp.Dates[0].Slots[0].Start.Equal(mustTime(t, "2026-09-01T09:00:00Z")))
}

func TestExecute_RangeEntirelyInPast(t *testing.T) {
	calendar := &fakeCalendar{
		technicians: []fieldservice.Technician{{ID: "tech-1"}},
	}
	uc := newTestUseCase(calendar, mustTime(t, "2026-09-10T00:00:00Z"))

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceTypeID: "virtual-consult-basic",
		From:          mustTime(t, "2026-09-01T00:00:00Z"),
		To:            mustTime(t, "2026-09-02T00:00:00Z"),
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Dates)
	assert.Equal(t, 0, calendar.busyCallCount)
}

func TestExecute_PartialDegradationOnCalendarFailure(t *testing.T) {
	calendar := &fakeCalendar{
		technicians: []fieldservice.Technician{{ID: "tech-1"}, {ID: "tech-2"}},
		busyErr: map[string]error{
			"tech-1": fieldservice.ErrUnavailable,
		},
	}
	uc := newTestUseCase(calendar, mustTime(t, "2026-08-31T12:00:00Z"))

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceTypeID: "virtual-consult-basic",
		From:          mustTime(t, "2026-09-01T00:00:00Z"),
		To:            mustTime(t, "2026-09-02T00:00:00Z"),
	})

	require.NoError(t, err)
	require.Len(t, resp.Dates, 1)
	for _, slot := range resp.Dates[0].Slots {
		assert.Equal(t, "tech-2", slot.TechnicianID)
	}
}

func TestExecute_ListTechniciansFailure(t *testing.T) {
	calendar := &fakeCalendar{listErr: fieldservice.ErrUnavailable}
	uc := newTestUseCase(calendar, mustTime(t, "2026-08-31T12:00:00Z"))

	_, err := uc.Execute(context.Background(), &Request{
		ServiceTypeID: "virtual-consult-basic",
		From:          mustTime(t, "2026-09-01T00:00:00Z"),
		To:            mustTime(t, "2026-09-02T00:00:00Z"),
	})

	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestExecute_UnknownJobTypeMapsToServiceTypeNotFound(t *testing.T) {
	calendar := &fakeCalendar{listErr: fieldservice.ErrJobTypeNotFound}
	uc := newTestUseCase(calendar, mustTime(t, "2026-08-31T12:00:00Z"))

	_, err := uc.Execute(context.Background(), &Request{
		ServiceTypeID: "virtual-consult-basic",
		From:          mustTime(t, "2026-09-01T00:00:00Z"),
		To:            mustTime(t, "2026-09-02T00:00:00Z"),
	})

	assert.ErrorIs(t, err, ErrServiceTypeNotFound)
}

func TestExecute_Idempotent(t *testing.T) {
	calendar := &fakeCalendar{
		technicians: []fieldservice.Technician{{ID: "tech-2"}, {ID: "tech-1"}},
		busy: map[string][]fieldservice.BusyInterval{
			"tech-1": {
				{Start: mustTime(t, "2026-09-01T09:00:00Z"), End: mustTime(t, "2026-09-01T12:00:00Z")},
			},
		},
	}
	uc := newTestUseCase(calendar, mustTime(t, "2026-08-31T12:00:00Z"))

	req := &Request{
		ServiceTypeID: "virtual-consult-basic",
		From:          mustTime(t, "2026-09-01T00:00:00Z"),
		To:            mustTime(t, "2026-09-02T00:00:00Z"),
	}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExecute_NoTechnicians(t *testing.T) {
	calendar := &fakeCalendar{}
	uc := newTestUseCase(calendar, mustTime(t, "2026-08-31T12:00:00Z"))

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceTypeID: "virtual-consult-extended",
		From:          mustTime(t, "2026-09-01T00:00:00Z"),
		To:            mustTime(t, "2026-09-02T00:00:00Z"),
	})

	require.NoError(t, err)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Empty(t, resp.Dates)
}

func TestExecute_NoCalendarFetchAfterListFailure(t *testing.T) {
	calendar := &fakeCalendar{listErr: errors.New("boom")}
	uc := newTestUseCase(calendar, mustTime(t, "2026-08-31T12:00:00Z"))

	_, err := uc.Execute(context.Background(), &Request{
		ServiceTypeID: "virtual-consult-basic",
		From:          mustTime(t, "2026-09-01T00:00:00Z"),
		To:            mustTime(t, "2026-09-02T00:00:00Z"),
	})

	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	assert.Equal(t, 0, calendar.busyCallCount)
}
