package domain

import "time"

// Slot свободный слот фиксированной длительности, привязанный к одному специалисту
// Длительность слота всегда в точности равна длительности услуги из маппинга
type Slot struct {
	TechnicianID string
	Start        time.Time
	End          time.Time
}

// Window возвращает временной интервал слота
func (s Slot) Window() TimeWindow {
	return TimeWindow{Start: s.Start, End: s.End}
}

// Equal сравнивает слоты по (start, end, technicianId)
func (s Slot) Equal(other Slot) bool {
	return s.TechnicianID == other.TechnicianID &&
		s.Start.Equal(other.Start) &&
		s.End.Equal(other.End)
}

// DateEntry набор доступных слотов на одну календарную дату
// Слоты упорядочены по возрастанию времени начала
// Даты без слотов в выдачу не попадают
type DateEntry struct {
	Date  string // YYYY-MM-DD
	Slots []Slot
}
