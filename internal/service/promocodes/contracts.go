package promocodes

import (
	"context"

	"github.com/velmor/VCS-ConsultationService/internal/domain"
)

// PromoCodeRepository интерфейс репозитория промокодов
type PromoCodeRepository interface {
	Create(ctx context.Context, code *domain.PromoCode) (*domain.PromoCode, error)
	GetByCode(ctx context.Context, code string) (*domain.PromoCode, error)
	List(ctx context.Context) ([]*domain.PromoCode, error)
	Update(ctx context.Context, code *domain.PromoCode) error
	Delete(ctx context.Context, code string) error
}

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
