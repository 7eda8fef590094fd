package validate_promo

import (
	validatePromo "github.com/velmor/VCS-ConsultationService/internal/usecase/validate_promo"
)

// ValidatePromoRequest HTTP request model
type ValidatePromoRequest struct {
	Code          string  `json:"code"`
	OriginalPrice float64 `json:"originalPrice"`
}

// PromoCodeView публичное представление промокода
type PromoCodeView struct {
	Code  string  `json:"code"`
	Type  string  `json:"type"`
	Value float64 `json:"value"`
}

// ValidatePromoResponse HTTP response model
// При valid=false заполнено только error; детали промокода не раскрываются
type ValidatePromoResponse struct {
	Valid          bool           `json:"valid"`
	Error          string         `json:"error,omitempty"`
	PromoCode      *PromoCodeView `json:"promoCode,omitempty"`
	DiscountAmount *float64       `json:"discountAmount,omitempty"`
	FinalPrice     *float64       `json:"finalPrice,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *validatePromo.Response) *ValidatePromoResponse {
	out := &ValidatePromoResponse{
		Valid:          resp.Valid,
		Error:          resp.Error,
		DiscountAmount: resp.DiscountAmount,
		FinalPrice:     resp.FinalPrice,
	}

	if resp.PromoCode != nil {
		out.PromoCode = &PromoCodeView{
			Code:  resp.PromoCode.Code,
			Type:  string(resp.PromoCode.Type),
			Value: resp.PromoCode.Value,
		}
	}

	return out
}
