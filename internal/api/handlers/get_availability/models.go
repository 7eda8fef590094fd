package get_availability

import (
	"time"

	"github.com/velmor/VCS-ConsultationService/internal/domain"
	getAvailability "github.com/velmor/VCS-ConsultationService/internal/usecase/get_availability"
)

// SlotResponse HTTP модель слота
type SlotResponse struct {
	StartTime    string `json:"startTime"` // RFC3339
	EndTime      string `json:"endTime"`   // RFC3339
	TechnicianID string `json:"technicianId"`
}

// DateEntryResponse слоты одной даты
type DateEntryResponse struct {
	Date  string         `json:"date"` // YYYY-MM-DD
	Slots []SlotResponse `json:"slots"`
}

// AvailabilityResponse HTTP модель ответа с доступными слотами
type AvailabilityResponse struct {
	ServiceTypeID   string              `json:"serviceTypeId"`
	DurationMinutes int                 `json:"durationMinutes"`
	Dates           []DateEntryResponse `json:"dates"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	dates := make([]DateEntryResponse, 0, len(resp.Dates))
	for _, entry := range resp.Dates {
		dates = append(dates, fromDateEntry(entry))
	}

	return &AvailabilityResponse{
		ServiceTypeID:   resp.ServiceTypeID,
		DurationMinutes: resp.DurationMinutes,
		Dates:           dates,
	}
}

func fromDateEntry(entry domain.DateEntry) DateEntryResponse {
	slots := make([]SlotResponse, 0, len(entry.Slots))
	for _, slot := range entry.Slots {
		slots = append(slots, SlotResponse{
			StartTime:    slot.Start.Format(time.RFC3339),
			EndTime:      slot.End.Format(time.RFC3339),
			TechnicianID: slot.TechnicianID,
		})
	}
	return DateEntryResponse{Date: entry.Date, Slots: slots}
}
