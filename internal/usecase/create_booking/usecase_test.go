package create_booking

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velmor/VCS-ConsultationService/internal/domain"
	"github.com/velmor/VCS-ConsultationService/internal/integrations/fieldservice"
	"github.com/velmor/VCS-ConsultationService/internal/integrations/payments"
	promoRepo "github.com/velmor/VCS-ConsultationService/internal/infra/storage/promocode"
	"github.com/velmor/VCS-ConsultationService/internal/notifier"
	availability "github.com/velmor/VCS-ConsultationService/internal/usecase/get_availability"
	validatePromo "github.com/velmor/VCS-ConsultationService/internal/usecase/validate_promo"
	"github.com/velmor/VCS-ConsultationService/pkg/ptr"
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

type fakeResolver struct {
	resp     *availability.Response
	err      error
	requests []*availability.Request
}

func (f *fakeResolver) Execute(ctx context.Context, req *availability.Request) (*availability.Response, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type fakePromoValidator struct {
	resp *validatePromo.Response
	err  error
}

func (f *fakePromoValidator) Execute(ctx context.Context, req *validatePromo.Request) (*validatePromo.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type fakeReservations struct {
	job      *fieldservice.Job
	err      error
	requests []fieldservice.CreateJobRequest
}

func (f *fakeReservations) CreateJob(ctx context.Context, req fieldservice.CreateJobRequest) (*fieldservice.Job, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.job, nil
}

type fakePrices struct {
	price *payments.Price
	err   error
}

func (f *fakePrices) GetPrice(ctx context.Context, productName string) (*payments.Price, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.price, nil
}

type fakePromoCounter struct {
	incremented  []string
	released     []string
	incrementErr error
	releaseErr   error
}

func (f *fakePromoCounter) IncrementUsage(ctx context.Context, code string) error {
	if f.incrementErr != nil {
		return f.incrementErr
	}
	f.incremented = append(f.incremented, code)
	return nil
}

func (f *fakePromoCounter) ReleaseUsage(ctx context.Context, code string) error {
	if f.releaseErr != nil {
		return f.releaseErr
	}
	f.released = append(f.released, code)
	return nil
}

type fakeEnqueuer struct {
	payloads []notifier.NotificationPayload
	err      error
}

func (f *fakeEnqueuer) Enqueue(ctx context.Context, payload notifier.NotificationPayload) error {
	if f.err != nil {
		return f.err
	}
	f.payloads = append(f.payloads, payload)
	return nil
}

var testMappings = []domain.ServiceTypeMapping{
	{ServiceTypeID: "virtual-consult-basic", JobTypeID: "jt_basic", Label: "Basic Consultation", DurationMinutes: 30},
}

var testHours = domain.BusinessHours{OpenMinutes: 9 * 60, CloseMinutes: 18 * 60, Location: time.UTC}

var (
	testNow   = time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	slotStart = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	slotEnd   = slotStart.Add(30 * time.Minute)
)

func availableResponse() *availability.Response {
	return &availability.Response{
		ServiceTypeID:   "virtual-consult-basic",
		DurationMinutes: 30,
		Dates: []domain.DateEntry{
			{
				Date: "2026-09-01",
				Slots: []domain.Slot{
					{TechnicianID: "tech-1", Start: slotStart, End: slotEnd},
				},
			},
		},
	}
}

func validRequest() *Request {
	return &Request{
		Name:         "Ivan Petrov",
		Email:        "ivan@example.com",
		Phone:        "+79001234567",
		StartTime:    slotStart,
		EndTime:      slotEnd,
		TechnicianID: "tech-1",
		JobTypeID:    "jt_basic",
	}
}

type fixture struct {
	resolver     *fakeResolver
	promo        *fakePromoValidator
	reservations *fakeReservations
	prices       *fakePrices
	counter      *fakePromoCounter
	enqueuer     *fakeEnqueuer
}

func newFixture() *fixture {
	return &fixture{
		resolver:     &fakeResolver{resp: availableResponse()},
		promo:        &fakePromoValidator{},
		reservations: &fakeReservations{job: &fieldservice.Job{ID: "job-42"}},
		prices:       &fakePrices{price: &payments.Price{ProductName: "Basic Consultation", Price: 100, Currency: "RUB"}},
		counter:      &fakePromoCounter{},
		enqueuer:     &fakeEnqueuer{},
	}
}

func (f *fixture) useCase() *UseCase {
	uc := NewUseCase(
		testMappings,
		testHours,
		f.resolver,
		f.promo,
		f.counter,
		f.reservations,
		f.prices,
		f.enqueuer,
		nopLogger{},
	)
	uc.timeProvider = fixedTime{now: testNow}
	return uc
}

func TestExecute_SuccessWithoutPromo(t *testing.T) {
	f := newFixture()

	resp, err := f.useCase().Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, "job-42", resp.ReservationID)
	assert.Equal(t, "Basic Consultation", resp.ServiceLabel)
	assert.InDelta(t, 100, resp.OriginalPrice, 0.0001)
	assert.InDelta(t, 0, resp.DiscountAmount, 0.0001)
	assert.InDelta(t, 100, resp.FinalPrice, 0.0001)
	assert.Nil(t, resp.PromoCode)

	require.Len(t, f.reservations.requests, 1)
	assert.Equal(t, "tech-1", f.reservations.requests[0].TechnicianID)
	assert.Empty(t, f.counter.incremented)

	require.Len(t, f.enqueuer.payloads, 1)
	assert.Equal(t, "ivan@example.com", f.enqueuer.payloads[0].Recipient)
	assert.Equal(t, "job-42", f.enqueuer.payloads[0].ReservationID)
}

func TestExecute_SuccessWithPromo(t *testing.T) {
	f := newFixture()
	f.promo.resp = &validatePromo.Response{
		Valid:          true,
		PromoCode:      &validatePromo.PromoCodeView{Code: "SAVE20", Type: domain.DiscountPercent, Value: 20},
		DiscountAmount: ptr.Ptr(20.0),
		FinalPrice:     ptr.Ptr(80.0),
	}

	req := validRequest()
	req.PromoCode = ptr.Ptr("save20")

	resp, err := f.useCase().Execute(context.Background(), req)

	require.NoError(t, err)
	assert.InDelta(t, 20, resp.DiscountAmount, 0.0001)
	assert.InDelta(t, 80, resp.FinalPrice, 0.0001)
	require.NotNil(t, resp.PromoCode)
	assert.Equal(t, "SAVE20", *resp.PromoCode)

	// Код нормализован и списан ровно один раз
	assert.Equal(t, []string{"SAVE20"}, f.counter.incremented)
	assert.Empty(t, f.counter.released)
}

func TestExecute_ValidationFailures(t *testing.T) {
	f := newFixture()
	uc := f.useCase()

	t.Run("пустое имя", func(t *testing.T) {
		req := validRequest()
		req.Name = "  "
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("некорректный email", func(t *testing.T) {
		req := validRequest()
		req.Email = "not-an-email"
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("окно не совпадает с длительностью услуги", func(t *testing.T) {
		req := validRequest()
		req.EndTime = req.StartTime.Add(45 * time.Minute)
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("неизвестный тип работы", func(t *testing.T) {
		req := validRequest()
		req.JobTypeID = "jt_unknown"
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrServiceTypeNotFound)
	})

	assert.Empty(t, f.reservations.requests, "reservation must not be attempted")
}

func TestExecute_StartTimeInPast(t *testing.T) {
	f := newFixture()
	uc := f.useCase()
	uc.timeProvider = fixedTime{now: slotStart.Add(time.Hour)}

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, f.resolver.requests, "availability must not be re-checked")
	assert.Empty(t, f.reservations.requests)
}

func TestExecute_RecheckUsesBusinessDayBounds(t *testing.T) {
	f := newFixture()

	// Тот же момент начала слота, но записанный со смещением +05:00
	offset := time.FixedZone("", 5*3600)
	req := validRequest()
	req.StartTime = slotStart.In(offset)
	req.EndTime = slotEnd.In(offset)

	_, err := f.useCase().Execute(context.Background(), req)

	require.NoError(t, err)
	require.Len(t, f.resolver.requests, 1)
	assert.True(t, f.resolver.requests[0].From.Equal(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)),
		"re-check range must start at business-day midnight")
	assert.True(t, f.resolver.requests[0].To.Equal(time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)))
}

func TestExecute_SlotNoLongerAvailable(t *testing.T) {
	f := newFixture()
	f.resolver.resp = &availability.Response{
		ServiceTypeID:   "virtual-consult-basic",
		DurationMinutes: 30,
		Dates:           []domain.DateEntry{},
	}

	_, err := f.useCase().Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Empty(t, f.reservations.requests)
}

func TestExecute_ReservationConflict(t *testing.T) {
	f := newFixture()
	f.reservations.err = fieldservice.ErrJobConflict

	_, err := f.useCase().Execute(context.Background(), validRequest())

	// Конфликт внешнего резервирования выглядит для клиента как занятый слот
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_ReservationConflictReleasesPromo(t *testing.T) {
	f := newFixture()
	f.promo.resp = &validatePromo.Response{
		Valid:          true,
		PromoCode:      &validatePromo.PromoCodeView{Code: "SAVE20", Type: domain.DiscountPercent, Value: 20},
		DiscountAmount: ptr.Ptr(20.0),
		FinalPrice:     ptr.Ptr(80.0),
	}
	f.reservations.err = fieldservice.ErrJobConflict

	req := validRequest()
	req.PromoCode = ptr.Ptr("SAVE20")

	_, err := f.useCase().Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Equal(t, []string{"SAVE20"}, f.counter.incremented)
	assert.Equal(t, []string{"SAVE20"}, f.counter.released)
}

func TestExecute_ReservationFailureReleasesPromo(t *testing.T) {
	f := newFixture()
	f.promo.resp = &validatePromo.Response{
		Valid:          true,
		PromoCode:      &validatePromo.PromoCodeView{Code: "SAVE20", Type: domain.DiscountPercent, Value: 20},
		DiscountAmount: ptr.Ptr(20.0),
		FinalPrice:     ptr.Ptr(80.0),
	}
	f.reservations.err = fieldservice.ErrUnavailable

	req := validRequest()
	req.PromoCode = ptr.Ptr("SAVE20")

	_, err := f.useCase().Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrReservationFailed)
	assert.Equal(t, []string{"SAVE20"}, f.counter.released)
}

func TestExecute_PromoRejected(t *testing.T) {
	f := newFixture()
	f.promo.resp = &validatePromo.Response{Valid: false, Error: validatePromo.ReasonMinPurchaseNotMet}

	req := validRequest()
	req.PromoCode = ptr.Ptr("BIG")

	_, err := f.useCase().Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrPromoCodeInvalid)
	assert.Empty(t, f.counter.incremented)
	assert.Empty(t, f.reservations.requests)
}

func TestExecute_PromoExhaustedAtValidation(t *testing.T) {
	f := newFixture()
	f.promo.resp = &validatePromo.Response{Valid: false, Error: validatePromo.ReasonUsageLimitReached}

	req := validRequest()
	req.PromoCode = ptr.Ptr("LAST")

	_, err := f.useCase().Execute(context.Background(), req)

	// Исчерпанный код не превращается в бронирование по полной цене
	assert.ErrorIs(t, err, ErrPromoCodeExhausted)
	assert.Empty(t, f.reservations.requests)
}

func TestExecute_PromoExhaustedByConcurrentRedemption(t *testing.T) {
	f := newFixture()
	f.promo.resp = &validatePromo.Response{
		Valid:          true,
		PromoCode:      &validatePromo.PromoCodeView{Code: "LAST", Type: domain.DiscountAmount, Value: 5},
		DiscountAmount: ptr.Ptr(5.0),
		FinalPrice:     ptr.Ptr(95.0),
	}
	f.counter.incrementErr = promoRepo.ErrUsageLimitReached

	req := validRequest()
	req.PromoCode = ptr.Ptr("LAST")

	_, err := f.useCase().Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrPromoCodeExhausted)
	assert.Empty(t, f.reservations.requests)
}

func TestExecute_PriceLookupFailure(t *testing.T) {
	f := newFixture()
	f.prices.err = payments.ErrPriceNotFound

	_, err := f.useCase().Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, f.reservations.requests)
}

func TestExecute_AvailabilityRecheckFailure(t *testing.T) {
	f := newFixture()
	f.resolver.err = availability.ErrUpstreamUnavailable

	_, err := f.useCase().Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, f.reservations.requests)
}

func TestBuildJobNote_TruncatesLongNote(t *testing.T) {
	longLabel := strings.Repeat("Консультация ", 100)

	note := buildJobNote(longLabel, 99.99, ptr.Ptr("SAVE20"))

	assert.Equal(t, domain.MaxNoteLength, len([]rune(note)))

	short := buildJobNote("Basic Consultation", 100, nil)
	assert.Equal(t, "Basic Consultation, total 100.00", short)
}

func TestExecute_NotificationFailureDoesNotFailBooking(t *testing.T) {
	f := newFixture()
	f.enqueuer.err = errors.New("redis down")

	resp, err := f.useCase().Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, "job-42", resp.ReservationID)
}
