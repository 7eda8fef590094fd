package create_promocode

import (
	"context"

	"github.com/velmor/VCS-ConsultationService/internal/service/promocodes/models"
)

type PromoCodesService interface {
	Create(ctx context.Context, req *models.CreatePromoCodeRequest) (*models.PromoCodeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
