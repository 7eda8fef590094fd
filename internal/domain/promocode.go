package domain

import "time"

// DiscountType тип скидки промокода
type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountAmount  DiscountType = "amount"
)

// IsValid возвращает true для известных типов скидки
func (t DiscountType) IsValid() bool {
	return t == DiscountPercent || t == DiscountAmount
}

// PromoCode промокод на консультацию
// Код уникален, сравнение регистронезависимое (хранится в верхнем регистре)
// Инвариант UsageCount <= UsageLimit (при заданном лимите) обеспечивается
// атомарным условным инкрементом в хранилище, а не проверкой при валидации
type PromoCode struct {
	ID          int64
	Code        string
	Type        DiscountType
	Value       float64
	UsageLimit  *int // nil = безлимит
	UsageCount  int
	MinPurchase *float64   // nil = без минимальной суммы
	MaxDiscount *float64   // nil = без ограничения скидки
	StartsAt    *time.Time // nil = активен с момента создания
	ExpiresAt   *time.Time // nil = бессрочный
	Enabled     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActiveAt проверяет, что промокод включен и действует в момент now
func (p *PromoCode) IsActiveAt(now time.Time) bool {
	if !p.Enabled {
		return false
	}
	return p.IsWithinWindow(now)
}

// IsWithinWindow проверяет попадание now в окно действия [StartsAt, ExpiresAt]
// Отсутствующая граница означает отсутствие ограничения с этой стороны
func (p *PromoCode) IsWithinWindow(now time.Time) bool {
	if p.StartsAt != nil && now.Before(*p.StartsAt) {
		return false
	}
	if p.ExpiresAt != nil && now.After(*p.ExpiresAt) {
		return false
	}
	return true
}

// IsExhausted возвращает true, если лимит использований исчерпан
func (p *PromoCode) IsExhausted() bool {
	return p.UsageLimit != nil && p.UsageCount >= *p.UsageLimit
}

// Discount вычисляет применяемую скидку для суммы originalPrice
// Скидка ограничивается MaxDiscount (если задан) и суммой покупки:
// итоговая цена никогда не уходит в минус
func (p *PromoCode) Discount(originalPrice float64) float64 {
	var discount float64
	switch p.Type {
	case DiscountPercent:
		discount = originalPrice * p.Value / 100
	case DiscountAmount:
		discount = p.Value
	}

	if p.MaxDiscount != nil && discount > *p.MaxDiscount {
		discount = *p.MaxDiscount
	}
	if discount > originalPrice {
		discount = originalPrice
	}
	if discount < 0 {
		discount = 0
	}
	return discount
}
