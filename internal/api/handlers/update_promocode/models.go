package update_promocode

import (
	"fmt"
	"time"

	"github.com/velmor/VCS-ConsultationService/internal/domain"
	"github.com/velmor/VCS-ConsultationService/internal/service/promocodes/models"
)

// UpdatePromoCodeRequest HTTP request model
// Все поля опциональны; указанные заменяют текущие значения
type UpdatePromoCodeRequest struct {
	Type        *string  `json:"type,omitempty"`
	Value       *float64 `json:"value,omitempty"`
	UsageLimit  *int     `json:"usageLimit,omitempty"`
	MinPurchase *float64 `json:"minPurchase,omitempty"`
	MaxDiscount *float64 `json:"maxDiscount,omitempty"`
	StartsAt    *string  `json:"startsAt,omitempty"`
	ExpiresAt   *string  `json:"expiresAt,omitempty"`
	Enabled     *bool    `json:"enabled,omitempty"`
}

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

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdatePromoCodeRequest) ToServiceRequest() (*models.UpdatePromoCodeRequest, error) {
	startsAt, err := parseOptionalTime(r.StartsAt)
	if err != nil {
		return nil, fmt.Errorf("parse startsAt: %w", err)
	}
	expiresAt, err := parseOptionalTime(r.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("parse expiresAt: %w", err)
	}

	var discountType *domain.DiscountType
	if r.Type != nil {
		t := domain.DiscountType(*r.Type)
		discountType = &t
	}

	return &models.UpdatePromoCodeRequest{
		Type:        discountType,
		Value:       r.Value,
		UsageLimit:  r.UsageLimit,
		MinPurchase: r.MinPurchase,
		MaxDiscount: r.MaxDiscount,
		StartsAt:    startsAt,
		ExpiresAt:   expiresAt,
		Enabled:     r.Enabled,
	}, nil
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

func parseOptionalTime(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatOptionalTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
