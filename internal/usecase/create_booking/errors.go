package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при отсутствующих или некорректных полях запроса
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrServiceTypeNotFound возвращается, когда тип работы не найден в маппинге услуг
	ErrServiceTypeNotFound = errors.New("create_booking: service type not found")

	// ErrSlotUnavailable возвращается, когда запрошенный слот больше не свободен
	// Сюда же попадает конфликт внешнего резервирования: гонку за слот выиграл
	// другой запрос, клиент должен выбрать слот заново
	ErrSlotUnavailable = errors.New("create_booking: slot is not available")

	// ErrPromoCodeInvalid возвращается, когда промокод не прошел валидацию
	ErrPromoCodeInvalid = errors.New("create_booking: promo code is not valid")

	// ErrPromoCodeExhausted возвращается, когда лимит промокода исчерпан
	// конкурентным списанием; бронирование по полной цене не продолжается
	ErrPromoCodeExhausted = errors.New("create_booking: promo code usage limit reached")

	// ErrReservationFailed возвращается при сбое внешней системы резервирования
	ErrReservationFailed = errors.New("create_booking: reservation system failure")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
