package fieldservice

import "errors"

var (
	// ErrJobTypeNotFound возвращается, когда тип работы неизвестен внешней системе
	ErrJobTypeNotFound = errors.New("fieldservice client: job type not found")

	// ErrTechnicianNotFound возвращается, когда специалист не найден
	ErrTechnicianNotFound = errors.New("fieldservice client: technician not found")

	// ErrJobConflict возвращается, когда слот уже занят другой работой
	// Внешняя система - единственный источник истины по конфликтам расписания
	ErrJobConflict = errors.New("fieldservice client: job conflicts with an existing reservation")

	// ErrUnavailable возвращается при недоступности внешней системы (5xx, таймаут)
	ErrUnavailable = errors.New("fieldservice client: service unavailable")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("fieldservice client: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("fieldservice client: internal error")
)
