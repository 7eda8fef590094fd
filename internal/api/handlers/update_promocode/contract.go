package update_promocode

import (
	"context"

	"github.com/velmor/VCS-ConsultationService/internal/service/promocodes/models"
)

type PromoCodesService interface {
	Update(ctx context.Context, code string, req *models.UpdatePromoCodeRequest) (*models.PromoCodeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
