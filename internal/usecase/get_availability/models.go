package get_availability

import (
	"time"

	"github.com/velmor/VCS-ConsultationService/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ServiceTypeID string    // внешний ID типа услуги
	From          time.Time // начало диапазона поиска
	To            time.Time // конец диапазона поиска (исключительно)
}

// Response модель ответа со слотами, сгруппированными по датам
// Даты упорядочены по возрастанию; даты без слотов опущены
type Response struct {
	ServiceTypeID   string
	DurationMinutes int
	Dates           []domain.DateEntry
}

// FindSlot ищет в ответе слот с точным совпадением (start, end, technicianId)
func (r *Response) FindSlot(start, end time.Time, technicianID string) bool {
	want := domain.Slot{TechnicianID: technicianID, Start: start, End: end}
	for _, entry := range r.Dates {
		for _, slot := range entry.Slots {
			if slot.Equal(want) {
				return true
			}
		}
	}
	return false
}
