package validate_promo

import "github.com/velmor/VCS-ConsultationService/internal/domain"

// Request модель запроса на валидацию промокода
type Request struct {
	Code          string  // код (регистр не важен)
	OriginalPrice float64 // цена до скидки
}

// Response результат валидации промокода
// При Valid=false заполнено только Error; при Valid=true - остальные поля
type Response struct {
	Valid          bool
	Error          string // стабильная причина отказа (см. Reason*-константы)
	PromoCode      *PromoCodeView
	DiscountAmount *float64 // фактически примененная скидка (после клампов)
	FinalPrice     *float64 // итоговая цена, не бывает отрицательной
}

// PromoCodeView публичное представление промокода в ответе валидации
type PromoCodeView struct {
	Code  string
	Type  domain.DiscountType
	Value float64
}
