package validate_promo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	promoRepo "github.com/velmor/VCS-ConsultationService/internal/infra/storage/promocode"
)

// UseCase use case валидации промокода и расчета скидки
//
// Только читает: счетчик использований здесь не меняется,
// списание происходит атомарно при успешном бронировании
type UseCase struct {
	promoRepo    PromoCodeRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(promoRepo PromoCodeRepository, logger Logger) *UseCase {
	return &UseCase{
		promoRepo:    promoRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет валидацию промокода
// Проверки идут по порядку, первая провалившаяся определяет причину отказа:
// 1. Код существует и включен
// 2. Текущее время в окне действия [startsAt, expiresAt]
// 3. Лимит использований не исчерпан
// 4. Сумма покупки не меньше минимальной
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if strings.TrimSpace(req.Code) == "" {
		return nil, fmt.Errorf("%w: code is required", ErrInvalidInput)
	}
	if req.OriginalPrice < 0 {
		return nil, fmt.Errorf("%w: originalPrice must be non-negative", ErrInvalidInput)
	}

	promo, err := uc.promoRepo.GetByCode(ctx, req.Code)
	if err != nil {
		if errors.Is(err, promoRepo.ErrPromoCodeNotFound) {
			uc.logger.Info("ValidatePromo: code %s not found", req.Code)
			return rejected(ReasonInvalidCode), nil
		}
		uc.logger.Error("ValidatePromo: failed to get code %s: %v", req.Code, err)
		return nil, fmt.Errorf("%w: failed to get promo code: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()

	if !promo.Enabled {
		uc.logger.Info("ValidatePromo: code %s is disabled", promo.Code)
		return rejected(ReasonInvalidCode), nil
	}

	if !promo.IsWithinWindow(now) {
		uc.logger.Info("ValidatePromo: code %s outside of validity window", promo.Code)
		return rejected(ReasonExpired), nil
	}

	if promo.IsExhausted() {
		uc.logger.Info("ValidatePromo: code %s usage limit reached (%d)", promo.Code, promo.UsageCount)
		return rejected(ReasonUsageLimitReached), nil
	}

	if promo.MinPurchase != nil && req.OriginalPrice < *promo.MinPurchase {
		uc.logger.Info("ValidatePromo: code %s min purchase not met (%.2f < %.2f)",
			promo.Code, req.OriginalPrice, *promo.MinPurchase)
		return rejected(ReasonMinPurchaseNotMet), nil
	}

	// DiscountAmount - скидка после ограничений (maxDiscount и сумма покупки),
	// а не сырое значение из промокода
	discount := promo.Discount(req.OriginalPrice)
	finalPrice := req.OriginalPrice - discount

	uc.logger.Info("ValidatePromo: code %s valid, discount=%.2f, final=%.2f", promo.Code, discount, finalPrice)

	return &Response{
		Valid: true,
		PromoCode: &PromoCodeView{
			Code:  promo.Code,
			Type:  promo.Type,
			Value: promo.Value,
		},
		DiscountAmount: &discount,
		FinalPrice:     &finalPrice,
	}, nil
}

func rejected(reason string) *Response {
	return &Response{Valid: false, Error: reason}
}
