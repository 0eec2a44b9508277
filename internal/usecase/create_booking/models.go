package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	VenueID   string           // ID площадки
	Date      time.Time        // Дата бронирования (без времени)
	DayName   domain.DayName   // День расписания
	TimeSlot  types.TimeSlot   // Слот "HH:MM-HH:MM"
	Purpose   string           // Цель бронирования
	Requester domain.Requester // Кто бронирует
}

// Cell ячейка, которую пытается занять запрос
func (r *Request) Cell() domain.VenueCell {
	return domain.NewVenueCell(r.VenueID, r.Date, r.DayName, r.TimeSlot)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID           uuid.UUID
	VenueID      string
	Date         time.Time
	DayName      domain.DayName
	TimeSlot     types.TimeSlot
	UserID       int64
	BookedByName string
	Purpose      string
	CreatedAt    time.Time
}

func newResponse(b *domain.Booking) *Response {
	return &Response{
		ID:           b.ID,
		VenueID:      b.Cell.VenueID,
		Date:         b.Cell.Date,
		DayName:      b.Cell.DayName,
		TimeSlot:     b.Cell.TimeSlot,
		UserID:       b.UserID,
		BookedByName: b.BookedByName,
		Purpose:      b.Purpose,
		CreatedAt:    b.CreatedAt,
	}
}
