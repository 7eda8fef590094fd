package validate_promo

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	// Бизнес-отказы (неактивный код, исчерпанный лимит и т.п.) ошибками
	// не являются - они возвращаются как Response с Valid=false
	ErrInvalidInput = errors.New("validate_promo: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("validate_promo: internal error")
)

// Стабильные строки бизнес-отказов валидации
// Это контракт API: клиенты матчатся на них, формулировки не менять
const (
	ReasonInvalidCode       = "invalid code"
	ReasonExpired           = "expired or not yet active"
	ReasonUsageLimitReached = "usage limit reached"
	ReasonMinPurchaseNotMet = "minimum purchase not met"
)
