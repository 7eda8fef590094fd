package create_booking

import (
	"context"
	"time"

	"github.com/velmor/VCS-ConsultationService/internal/integrations/fieldservice"
	"github.com/velmor/VCS-ConsultationService/internal/integrations/payments"
	"github.com/velmor/VCS-ConsultationService/internal/notifier"
	availability "github.com/velmor/VCS-ConsultationService/internal/usecase/get_availability"
	validatePromo "github.com/velmor/VCS-ConsultationService/internal/usecase/validate_promo"
)

// AvailabilityResolver интерфейс повторной проверки доступности слота
// Клиентским (start, end, technicianId) не доверяем: перед резервированием
// слот перевычисляется по текущим данным календарей
type AvailabilityResolver interface {
	Execute(ctx context.Context, req *availability.Request) (*availability.Response, error)
}

// PromoValidator интерфейс движка валидации промокодов
type PromoValidator interface {
	Execute(ctx context.Context, req *validatePromo.Request) (*validatePromo.Response, error)
}

// ReservationClient интерфейс клиента внешней системы резервирования
type ReservationClient interface {
	CreateJob(ctx context.Context, req fieldservice.CreateJobRequest) (*fieldservice.Job, error)
}

// PriceClient интерфейс источника цен
type PriceClient interface {
	GetPrice(ctx context.Context, productName string) (*payments.Price, error)
}

// PromoCodeRepository интерфейс репозитория промокодов (списание использования)
type PromoCodeRepository interface {
	IncrementUsage(ctx context.Context, code string) error
	ReleaseUsage(ctx context.Context, code string) error
}

// NotificationEnqueuer интерфейс постановки уведомления в очередь
type NotificationEnqueuer interface {
	Enqueue(ctx context.Context, payload notifier.NotificationPayload) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
