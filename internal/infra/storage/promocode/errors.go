package promocode

import "errors"

var (
	// ErrPromoCodeNotFound возвращается, когда промокод не найден
	ErrPromoCodeNotFound = errors.New("promocode.repository: promo code not found")

	// ErrUsageLimitReached возвращается, когда условный инкремент не прошел:
	// лимит использований уже исчерпан конкурентным списанием
	ErrUsageLimitReached = errors.New("promocode.repository: usage limit reached")

	// ErrDuplicateCode возвращается при попытке создать промокод с существующим кодом
	ErrDuplicateCode = errors.New("promocode.repository: duplicate promo code")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("promocode.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("promocode.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("promocode.repository: failed to scan row")
)
