package create_booking

import "time"

// Request модель запроса на бронирование консультации
// Все поля, кроме PromoCode, обязательны; (StartTime, EndTime, TechnicianID)
// должны совпадать с ранее выданным слотом
type Request struct {
	Name         string
	Email        string
	Phone        string
	StartTime    time.Time
	EndTime      time.Time
	TechnicianID string
	JobTypeID    string
	PromoCode    *string // опционально
}

// Response модель ответа с созданным резервированием
// ReservationID - идентификатор работы во внешней системе;
// сервис не хранит резервирование у себя
type Response struct {
	ReservationID  string
	TechnicianID   string
	JobTypeID      string
	ServiceLabel   string
	StartTime      time.Time
	EndTime        time.Time
	OriginalPrice  float64
	DiscountAmount float64
	FinalPrice     float64
	PromoCode      *string
}
