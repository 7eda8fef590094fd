package create_booking

import (
	"fmt"
	"time"

	createBooking "github.com/velmor/VCS-ConsultationService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	StartTime    string  `json:"startTime"` // RFC3339
	EndTime      string  `json:"endTime"`   // RFC3339
	TechnicianID string  `json:"technicianId"`
	JobTypeID    string  `json:"jobTypeId"`
	PromoCode    *string `json:"promoCode,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ReservationID  string  `json:"reservationId"`
	TechnicianID   string  `json:"technicianId"`
	JobTypeID      string  `json:"jobTypeId"`
	ServiceLabel   string  `json:"serviceLabel"`
	StartTime      string  `json:"startTime"`
	EndTime        string  `json:"endTime"`
	OriginalPrice  float64 `json:"originalPrice"`
	DiscountAmount float64 `json:"discountAmount"`
	FinalPrice     float64 `json:"finalPrice"`
	PromoCode      *string `json:"promoCode,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("parse startTime: %w", err)
	}

	endTime, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return nil, fmt.Errorf("parse endTime: %w", err)
	}

	return &createBooking.Request{
		Name:         r.Name,
		Email:        r.Email,
		Phone:        r.Phone,
		StartTime:    startTime,
		EndTime:      endTime,
		TechnicianID: r.TechnicianID,
		JobTypeID:    r.JobTypeID,
		PromoCode:    r.PromoCode,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ReservationID:  resp.ReservationID,
		TechnicianID:   resp.TechnicianID,
		JobTypeID:      resp.JobTypeID,
		ServiceLabel:   resp.ServiceLabel,
		StartTime:      resp.StartTime.Format(time.RFC3339),
		EndTime:        resp.EndTime.Format(time.RFC3339),
		OriginalPrice:  resp.OriginalPrice,
		DiscountAmount: resp.DiscountAmount,
		FinalPrice:     resp.FinalPrice,
		PromoCode:      resp.PromoCode,
	}
}
