package promocodes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/velmor/VCS-ConsultationService/internal/domain"
	promoRepo "github.com/velmor/VCS-ConsultationService/internal/infra/storage/promocode"
	"github.com/velmor/VCS-ConsultationService/internal/service/promocodes/models"
)

// Service сервис администрирования промокодов
type Service struct {
	promoRepo PromoCodeRepository
	txManager TxManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса промокодов
func NewService(promoRepo PromoCodeRepository, txManager TxManager, logger Logger) *Service {
	return &Service{
		promoRepo: promoRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// Create создает новый промокод
// Код нормализуется к верхнему регистру до записи
func (s *Service) Create(ctx context.Context, req *models.CreatePromoCodeRequest) (*models.PromoCodeResponse, error) {
	s.logger.Info("Create: creating promo code %s", req.Code)

	// 1. Валидируем входные данные
	if err := s.validatePromoCodeData(req.Code, req.Type, req.Value, req.UsageLimit, req.MinPurchase, req.MaxDiscount); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	promo := req.ToDomainPromoCode()
	promo.Code = strings.ToUpper(strings.TrimSpace(promo.Code))

	// 2. Создаем промокод; дубликат кода ловим по уникальному индексу
	created, err := s.promoRepo.Create(ctx, promo)
	if err != nil {
		if errors.Is(err, promoRepo.ErrDuplicateCode) {
			s.logger.Warn("Create: promo code %s already exists", promo.Code)
			return nil, ErrPromoCodeAlreadyExists
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created promo code %s (id=%d)", created.Code, created.ID)
	return models.FromDomainPromoCode(created), nil
}

// GetByCode получает промокод по коду (регистронезависимо)
func (s *Service) GetByCode(ctx context.Context, code string) (*models.PromoCodeResponse, error) {
	s.logger.Info("GetByCode: fetching promo code %s", code)

	promo, err := s.promoRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, promoRepo.ErrPromoCodeNotFound) {
			s.logger.Warn("GetByCode: promo code %s not found", code)
			return nil, ErrPromoCodeNotFound
		}
		s.logger.Error("GetByCode: repository error for code %s: %v", code, err)
		return nil, fmt.Errorf("%w: GetByCode - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPromoCode(promo), nil
}

// List возвращает все промокоды
func (s *Service) List(ctx context.Context) (*models.PromoCodeListResponse, error) {
	s.logger.Info("List: fetching promo codes")

	codes, err := s.promoRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d promo codes", len(codes))
	return models.FromDomainPromoCodeList(codes), nil
}

// Update частично обновляет промокод
// Чтение и запись идут в одной сериализуемой транзакции, чтобы частичное
// обновление не перетерло конкурентное изменение
func (s *Service) Update(ctx context.Context, code string, req *models.UpdatePromoCodeRequest) (*models.PromoCodeResponse, error) {
	s.logger.Info("Update: updating promo code %s", code)

	var updated *domain.PromoCode
	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		promo, err := s.promoRepo.GetByCode(ctx, code)
		if err != nil {
			return err
		}

		req.ApplyToPromoCode(promo)

		if err := s.validatePromoCodeData(promo.Code, promo.Type, promo.Value, promo.UsageLimit, promo.MinPurchase, promo.MaxDiscount); err != nil {
			return err
		}

		if err := s.promoRepo.Update(ctx, promo); err != nil {
			return err
		}

		updated = promo
		return nil
	})

	if err != nil {
		if errors.Is(err, promoRepo.ErrPromoCodeNotFound) {
			s.logger.Warn("Update: promo code %s not found", code)
			return nil, ErrPromoCodeNotFound
		}
		if errors.Is(err, ErrInvalidInput) {
			s.logger.Warn("Update: validation failed for promo code %s: %v", code, err)
			return nil, err
		}
		s.logger.Error("Update: repository error for code %s: %v", code, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated promo code %s", code)
	return models.FromDomainPromoCode(updated), nil
}

// Delete удаляет промокод
func (s *Service) Delete(ctx context.Context, code string) error {
	s.logger.Info("Delete: deleting promo code %s", code)

	if err := s.promoRepo.Delete(ctx, code); err != nil {
		if errors.Is(err, promoRepo.ErrPromoCodeNotFound) {
			s.logger.Warn("Delete: promo code %s not found", code)
			return ErrPromoCodeNotFound
		}
		s.logger.Error("Delete: repository error for code %s: %v", code, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted promo code %s", code)
	return nil
}

// validatePromoCodeData валидирует параметры промокода
func (s *Service) validatePromoCodeData(code string, discountType domain.DiscountType, value float64, usageLimit *int, minPurchase, maxDiscount *float64) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return fmt.Errorf("%w: code is required", ErrInvalidInput)
	}
	if len(code) > domain.MaxPromoCodeLength {
		return fmt.Errorf("%w: code must be at most %d characters", ErrInvalidInput, domain.MaxPromoCodeLength)
	}

	if !discountType.IsValid() {
		return fmt.Errorf("%w: type must be %q or %q", ErrInvalidInput, domain.DiscountPercent, domain.DiscountAmount)
	}

	if value <= 0 {
		return fmt.Errorf("%w: value must be positive", ErrInvalidInput)
	}
	if discountType == domain.DiscountPercent && value > 100 {
		return fmt.Errorf("%w: percent value must be at most 100", ErrInvalidInput)
	}

	if usageLimit != nil && *usageLimit <= 0 {
		return fmt.Errorf("%w: usageLimit must be positive", ErrInvalidInput)
	}
	if minPurchase != nil && *minPurchase < 0 {
		return fmt.Errorf("%w: minPurchase must not be negative", ErrInvalidInput)
	}
	if maxDiscount != nil && *maxDiscount <= 0 {
		return fmt.Errorf("%w: maxDiscount must be positive", ErrInvalidInput)
	}

	return nil
}
