package get_availability

import (
	"fmt"

	"github.com/velmor/VCS-ConsultationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceTypeID == "" {
		return fmt.Errorf("%w: serviceTypeId is required", ErrInvalidInput)
	}

	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: date range is required", ErrInvalidInput)
	}

	if !req.From.Before(req.To) {
		return fmt.Errorf("%w: range start must be before range end", ErrInvalidInput)
	}

	maxRange := req.From.AddDate(0, 0, domain.MaxAvailabilityRangeDays)
	if req.To.After(maxRange) {
		return fmt.Errorf("%w: range must not exceed %d days", ErrInvalidInput, domain.MaxAvailabilityRangeDays)
	}

	return nil
}

// findMapping ищет маппинг типа услуги по внешнему ID
func findMapping(mappings []domain.ServiceTypeMapping, serviceTypeID string) (domain.ServiceTypeMapping, bool) {
	for _, m := range mappings {
		if m.ServiceTypeID == serviceTypeID {
			return m, true
		}
	}
	return domain.ServiceTypeMapping{}, false
}
