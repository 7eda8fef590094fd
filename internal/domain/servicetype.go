package domain

import "time"

// ServiceTypeMapping связка типа услуги с типом работы во внешней
// field-service системе и длительностью консультации
// Неизменяема после загрузки конфигурации; ключ уникален по ServiceTypeID
type ServiceTypeMapping struct {
	ServiceTypeID   string // внешний ID услуги
	JobTypeID       string // ID типа работы во внешней системе
	Label           string // человекочитаемое название (оно же имя продукта в платежном сервисе)
	DurationMinutes int
}

// Duration возвращает длительность консультации
func (m ServiceTypeMapping) Duration() time.Duration {
	return time.Duration(m.DurationMinutes) * time.Minute
}

// BusinessHours ежедневное окно рабочего времени, в которое разрешено бронирование
//
// Окно определено в часовом поясе Location: один и тот же момент времени,
// записанный с разными смещениями, попадает в одно и то же окно
type BusinessHours struct {
	OpenMinutes  int // минут от полуночи, например 9:00 = 540
	CloseMinutes int // минут от полуночи, например 18:00 = 1080
	Location     *time.Location
}

func (h BusinessHours) loc() *time.Location {
	if h.Location == nil {
		return time.UTC
	}
	return h.Location
}

// WindowForDate возвращает окно рабочего времени для календарного дня,
// на который приходится момент date в бизнес-часовом поясе
func (h BusinessHours) WindowForDate(date time.Time) TimeWindow {
	midnight := h.DayStart(date)
	return TimeWindow{
		Start: midnight.Add(time.Duration(h.OpenMinutes) * time.Minute),
		End:   midnight.Add(time.Duration(h.CloseMinutes) * time.Minute),
	}
}

// DayStart возвращает полночь календарного дня момента t в бизнес-часовом поясе
func (h BusinessHours) DayStart(t time.Time) time.Time {
	d := t.In(h.loc())
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, h.loc())
}
