package get_availability

import (
	"context"
	"time"

	"github.com/velmor/VCS-ConsultationService/internal/integrations/fieldservice"
)

// CalendarClient интерфейс клиента field-service платформы
// (источник специалистов и их занятости)
type CalendarClient interface {
	ListTechnicians(ctx context.Context, jobTypeID string) ([]fieldservice.Technician, error)
	GetBusyIntervals(ctx context.Context, technicianID string, from, to time.Time) ([]fieldservice.BusyInterval, error)
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
