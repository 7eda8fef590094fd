package fieldservice

import "time"

// Technician специалист во внешней field-service системе
type Technician struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BusyInterval занятый интервал в календаре специалиста
type BusyInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// CreateJobRequest запрос на создание работы (резервирование слота)
type CreateJobRequest struct {
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
	CustomerPhone string    `json:"customerPhone"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	TechnicianID  string    `json:"technicianId"`
	JobTypeID     string    `json:"jobTypeId"`
	Note          string    `json:"note,omitempty"`
}

// Job созданная работа во внешней системе
type Job struct {
	ID string `json:"id"`
}

// ErrorResponse модель ошибки от field-service API
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
