package get_promocodes

import (
	"context"

	"github.com/velmor/VCS-ConsultationService/internal/service/promocodes/models"
)

type PromoCodesService interface {
	List(ctx context.Context) (*models.PromoCodeListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
