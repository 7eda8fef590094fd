package create_booking

import (
	"fmt"
	"strings"

	"github.com/velmor/VCS-ConsultationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
// Все поля обязательны; окно должно быть корректным интервалом
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(req.Name) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Email) == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if !strings.Contains(req.Email, "@") {
		return fmt.Errorf("%w: email is malformed", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Phone) == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}

	if req.TechnicianID == "" {
		return fmt.Errorf("%w: technicianId is required", ErrInvalidInput)
	}

	if req.JobTypeID == "" {
		return fmt.Errorf("%w: jobTypeId is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}

	if !req.StartTime.Before(req.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	if req.PromoCode != nil {
		code := strings.TrimSpace(*req.PromoCode)
		if code == "" {
			return fmt.Errorf("%w: promoCode must not be empty when provided", ErrInvalidInput)
		}
		if len(code) > domain.MaxPromoCodeLength {
			return fmt.Errorf("%w: promoCode is too long", ErrInvalidInput)
		}
	}

	return nil
}

// validateWindowMatchesDuration проверяет, что длительность запрошенного окна
// в точности равна сконфигурированной длительности услуги
func validateWindowMatchesDuration(req *Request, mapping domain.ServiceTypeMapping) error {
	if req.EndTime.Sub(req.StartTime) != mapping.Duration() {
		return fmt.Errorf("%w: booking window must be exactly %d minutes",
			ErrInvalidInput, mapping.DurationMinutes)
	}
	return nil
}

// findMappingByJobType ищет маппинг услуги по типу работы внешней системы
func findMappingByJobType(mappings []domain.ServiceTypeMapping, jobTypeID string) (domain.ServiceTypeMapping, bool) {
	for _, m := range mappings {
		if m.JobTypeID == jobTypeID {
			return m, true
		}
	}
	return domain.ServiceTypeMapping{}, false
}
