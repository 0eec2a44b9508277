package get_availability

import (
	"net/url"
	"strings"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	getAvailability "github.com/m04kA/SMC-VenueBookingService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date   string      `json:"date"`
	Day    string      `json:"day"`
	Free   int         `json:"free"`
	Booked int         `json:"booked"`
	Cells  []CellState `json:"cells"`
}

// CellState состояние одной ячейки сетки
type CellState struct {
	Venue     string       `json:"venue"`
	VenueName string       `json:"venueName"`
	Category  string       `json:"category,omitempty"`
	Capacity  int          `json:"capacity"`
	TimeSlot  string       `json:"timeSlot"`
	StartTime string       `json:"startTime"`
	EndTime   string       `json:"endTime"`
	Duration  int          `json:"durationMinutes"`
	Status    string       `json:"status"` // free | booked
	Booking   *BookingInfo `json:"booking,omitempty"`
}

// BookingInfo кто и зачем занял ячейку
type BookingInfo struct {
	ID           string `json:"id"`
	BookedBy     int64  `json:"bookedBy"`
	BookedByName string `json:"bookedByName,omitempty"`
	Purpose      string `json:"purpose"`
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(q url.Values) (*getAvailability.Request, error) {
	date, err := handlers.ParseDate(q.Get("date"))
	if err != nil {
		return nil, err
	}

	day, err := handlers.ParseDay(q.Get("day"), date)
	if err != nil {
		return nil, err
	}

	return &getAvailability.Request{
		Date:    date,
		DayName: day,
		VenueID: strings.TrimSpace(q.Get("venue")),
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	cells := make([]CellState, len(resp.Cells))
	for i, cell := range resp.Cells {
		cells[i] = CellState{
			Venue:     cell.Cell.VenueID,
			VenueName: cell.VenueName,
			Category:  cell.Category,
			Capacity:  cell.Capacity,
			TimeSlot:  cell.Cell.TimeSlot.String(),
			StartTime: cell.Cell.TimeSlot.Start().String(),
			EndTime:   cell.Cell.TimeSlot.End().String(),
			Duration:  cell.Cell.TimeSlot.DurationMinutes(),
			Status:    string(cell.Status),
		}
		if cell.Booking != nil {
			cells[i].Booking = &BookingInfo{
				ID:           cell.Booking.BookingID.String(),
				BookedBy:     cell.Booking.BookedBy,
				BookedByName: cell.Booking.BookedByName,
				Purpose:      cell.Booking.Purpose,
			}
		}
	}

	return &AvailabilityResponse{
		Date:   resp.Date.Format(domain.DateFormat),
		Day:    resp.DayName.String(),
		Free:   resp.Free,
		Booked: resp.Booked,
		Cells:  cells,
	}
}
