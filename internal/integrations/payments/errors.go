package payments

import "errors"

var (
	// ErrPriceNotFound возвращается, когда продукт не найден в платежном сервисе
	ErrPriceNotFound = errors.New("payments client: price not found")

	// ErrUnavailable возвращается при недоступности платежного сервиса
	ErrUnavailable = errors.New("payments client: service unavailable")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("payments client: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("payments client: internal error")
)
