package cancel_booking

import (
	"net/url"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Venue    string `json:"venue"`
	Date     string `json:"date"`
	Day      string `json:"day,omitempty"`
	TimeSlot string `json:"timeSlot"`
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	Message string `json:"message"`
}

// fromQuery ячейка из query параметров (для клиентов, не отправляющих тело в DELETE)
func fromQuery(q url.Values) CancelBookingRequest {
	return CancelBookingRequest{
		Venue:    q.Get("venue"),
		Date:     q.Get("date"),
		Day:      q.Get("day"),
		TimeSlot: q.Get("timeSlot"),
	}
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest(requester domain.Requester) (*models.CancelBookingRequest, error) {
	cell, err := handlers.CellParams{
		Venue:    r.Venue,
		Date:     r.Date,
		Day:      r.Day,
		TimeSlot: r.TimeSlot,
	}.Parse()
	if err != nil {
		return nil, err
	}

	return &models.CancelBookingRequest{
		CellRequest: models.CellRequest{
			VenueID:  cell.VenueID,
			Date:     cell.Date,
			DayName:  cell.DayName,
			TimeSlot: cell.TimeSlot,
		},
		Requester: requester,
	}, nil
}
