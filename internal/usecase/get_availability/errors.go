package get_availability

import "errors"

var (
	// ErrServiceTypeNotFound возвращается, когда тип услуги не найден в маппинге
	ErrServiceTypeNotFound = errors.New("get_availability: service type not found")

	// ErrUpstreamUnavailable возвращается при полной недоступности источника календарей
	// Отказ календаря отдельного специалиста не считается полным отказом:
	// его слоты просто исключаются из выдачи
	ErrUpstreamUnavailable = errors.New("get_availability: calendar source unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
