package get_promocodes

import (
	"time"

	"github.com/velmor/VCS-ConsultationService/internal/service/promocodes/models"
)

// PromoCodeResponse HTTP модель промокода в списке
type PromoCodeResponse struct {
	ID          int64    `json:"id"`
	Code        string   `json:"code"`
	Type        string   `json:"type"`
	Value       float64  `json:"value"`
	UsageLimit  *int     `json:"usageLimit,omitempty"`
	UsageCount  int      `json:"usageCount"`
	MinPurchase *float64 `json:"minPurchase,omitempty"`
	MaxDiscount *float64 `json:"maxDiscount,omitempty"`
	StartsAt    *string  `json:"startsAt,omitempty"`
	ExpiresAt   *string  `json:"expiresAt,omitempty"`
	Enabled     bool     `json:"enabled"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

// PromoCodeListResponse HTTP модель списка промокодов
type PromoCodeListResponse struct {
	PromoCodes []PromoCodeResponse `json:"promoCodes"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.PromoCodeListResponse) *PromoCodeListResponse {
	out := make([]PromoCodeResponse, 0, len(resp.PromoCodes))
	for _, promo := range resp.PromoCodes {
		out = append(out, PromoCodeResponse{
			ID:          promo.ID,
			Code:        promo.Code,
			Type:        string(promo.Type),
			Value:       promo.Value,
			UsageLimit:  promo.UsageLimit,
			UsageCount:  promo.UsageCount,
			MinPurchase: promo.MinPurchase,
			MaxDiscount: promo.MaxDiscount,
			StartsAt:    formatOptionalTime(promo.StartsAt),
			ExpiresAt:   formatOptionalTime(promo.ExpiresAt),
			Enabled:     promo.Enabled,
			CreatedAt:   promo.CreatedAt.Format(time.RFC3339),
			UpdatedAt:   promo.UpdatedAt.Format(time.RFC3339),
		})
	}
	return &PromoCodeListResponse{PromoCodes: out}
}

func formatOptionalTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
