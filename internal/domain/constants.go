package domain

// Значения по умолчанию для параметров расписания
const (
	DefaultAvailabilityRangeDays   = 14
	DefaultMinBookingNoticeMinutes = 60 // 1 час
)

// Ограничения бизнес-валидации
const (
	MinConsultationMinutes   = 5
	MaxConsultationMinutes   = 480 // 8 часов
	MaxAvailabilityRangeDays = 90
	MaxPromoCodeLength       = 64
	MaxCustomerNameLength    = 200
	MaxNoteLength            = 500
)

// Форматы даты и времени
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
	TimeFormat = "15:04"      // HH:MM
)
