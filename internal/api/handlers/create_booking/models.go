package create_booking

import (
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-VenueBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Venue    string `json:"venue"`
	Date     string `json:"date"`          // "2024-03-04"
	Day      string `json:"day,omitempty"` // "monday", по умолчанию день недели даты
	TimeSlot string `json:"timeSlot"`      // "09:00-10:00"
	Purpose  string `json:"purpose"`

	// BookedBy присылает веб-клиент. Не используется: автор берётся из контекста запроса
	BookedBy string `json:"bookedBy,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID           string    `json:"id"`
	Venue        string    `json:"venue"`
	Date         string    `json:"date"`
	Day          string    `json:"day"`
	TimeSlot     string    `json:"timeSlot"`
	BookedBy     int64     `json:"bookedBy"`
	BookedByName string    `json:"bookedByName,omitempty"`
	Purpose      string    `json:"purpose"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(requester domain.Requester) (*createBooking.Request, error) {
	cell, err := handlers.CellParams{
		Venue:    r.Venue,
		Date:     r.Date,
		Day:      r.Day,
		TimeSlot: r.TimeSlot,
	}.Parse()
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		VenueID:   cell.VenueID,
		Date:      cell.Date,
		DayName:   cell.DayName,
		TimeSlot:  cell.TimeSlot,
		Purpose:   r.Purpose,
		Requester: requester,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:           resp.ID.String(),
		Venue:        resp.VenueID,
		Date:         resp.Date.Format(domain.DateFormat),
		Day:          resp.DayName.String(),
		TimeSlot:     resp.TimeSlot.String(),
		BookedBy:     resp.UserID,
		BookedByName: resp.BookedByName,
		Purpose:      resp.Purpose,
		CreatedAt:    resp.CreatedAt,
	}
}
