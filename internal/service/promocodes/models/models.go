package models

import (
	"time"

	"github.com/velmor/VCS-ConsultationService/internal/domain"
)

// CreatePromoCodeRequest запрос на создание промокода
type CreatePromoCodeRequest struct {
	Code        string
	Type        domain.DiscountType
	Value       float64
	UsageLimit  *int
	MinPurchase *float64
	MaxDiscount *float64
	StartsAt    *time.Time
	ExpiresAt   *time.Time
	Enabled     *bool // nil = true
}

// ToDomainPromoCode конвертирует запрос в доменную модель
func (r *CreatePromoCodeRequest) ToDomainPromoCode() *domain.PromoCode {
	enabled := true
	if r.Enabled != nil {
		enabled = *r.Enabled
	}

	return &domain.PromoCode{
		Code:        r.Code,
		Type:        r.Type,
		Value:       r.Value,
		UsageLimit:  r.UsageLimit,
		MinPurchase: r.MinPurchase,
		MaxDiscount: r.MaxDiscount,
		StartsAt:    r.StartsAt,
		ExpiresAt:   r.ExpiresAt,
		Enabled:     enabled,
	}
}

// UpdatePromoCodeRequest запрос на частичное обновление промокода
// Обновляются только непустые поля; код и счетчик использований неизменяемы
type UpdatePromoCodeRequest struct {
	Type        *domain.DiscountType
	Value       *float64
	UsageLimit  *int
	MinPurchase *float64
	MaxDiscount *float64
	StartsAt    *time.Time
	ExpiresAt   *time.Time
	Enabled     *bool
}

// ApplyToPromoCode применяет заполненные поля запроса к промокоду
func (r *UpdatePromoCodeRequest) ApplyToPromoCode(promo *domain.PromoCode) {
	if r.Type != nil {
		promo.Type = *r.Type
	}
	if r.Value != nil {
		promo.Value = *r.Value
	}
	if r.UsageLimit != nil {
		promo.UsageLimit = r.UsageLimit
	}
	if r.MinPurchase != nil {
		promo.MinPurchase = r.MinPurchase
	}
	if r.MaxDiscount != nil {
		promo.MaxDiscount = r.MaxDiscount
	}
	if r.StartsAt != nil {
		promo.StartsAt = r.StartsAt
	}
	if r.ExpiresAt != nil {
		promo.ExpiresAt = r.ExpiresAt
	}
	if r.Enabled != nil {
		promo.Enabled = *r.Enabled
	}
}

// PromoCodeResponse модель промокода в ответах сервиса
type PromoCodeResponse struct {
	ID          int64
	Code        string
	Type        domain.DiscountType
	Value       float64
	UsageLimit  *int
	UsageCount  int
	MinPurchase *float64
	MaxDiscount *float64
	StartsAt    *time.Time
	ExpiresAt   *time.Time
	Enabled     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FromDomainPromoCode конвертирует доменную модель в ответ сервиса
func FromDomainPromoCode(promo *domain.PromoCode) *PromoCodeResponse {
	return &PromoCodeResponse{
		ID:          promo.ID,
		Code:        promo.Code,
		Type:        promo.Type,
		Value:       promo.Value,
		UsageLimit:  promo.UsageLimit,
		UsageCount:  promo.UsageCount,
		MinPurchase: promo.MinPurchase,
		MaxDiscount: promo.MaxDiscount,
		StartsAt:    promo.StartsAt,
		ExpiresAt:   promo.ExpiresAt,
		Enabled:     promo.Enabled,
		CreatedAt:   promo.CreatedAt,
		UpdatedAt:   promo.UpdatedAt,
	}
}

// PromoCodeListResponse список промокодов
type PromoCodeListResponse struct {
	PromoCodes []*PromoCodeResponse
}

// FromDomainPromoCodeList конвертирует список доменных моделей
func FromDomainPromoCodeList(codes []*domain.PromoCode) *PromoCodeListResponse {
	out := make([]*PromoCodeResponse, 0, len(codes))
	for _, promo := range codes {
		out = append(out, FromDomainPromoCode(promo))
	}
	return &PromoCodeListResponse{PromoCodes: out}
}
