package get_promocode

import (
	"time"

	"github.com/velmor/VCS-ConsultationService/internal/service/promocodes/models"
)

// PromoCodeResponse HTTP response model
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

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.PromoCodeResponse) *PromoCodeResponse {
	return &PromoCodeResponse{
		ID:          resp.ID,
		Code:        resp.Code,
		Type:        string(resp.Type),
		Value:       resp.Value,
		UsageLimit:  resp.UsageLimit,
		UsageCount:  resp.UsageCount,
		MinPurchase: resp.MinPurchase,
		MaxDiscount: resp.MaxDiscount,
		StartsAt:    formatOptionalTime(resp.StartsAt),
		ExpiresAt:   formatOptionalTime(resp.ExpiresAt),
		Enabled:     resp.Enabled,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   resp.UpdatedAt.Format(time.RFC3339),
	}
}

func formatOptionalTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
