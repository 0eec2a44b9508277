package models

import (
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// Request модели

// CellRequest идентификаторы ячейки
type CellRequest struct {
	VenueID  string         `json:"venue"`
	Date     time.Time      `json:"date"`
	DayName  domain.DayName `json:"day"`
	TimeSlot types.TimeSlot `json:"timeSlot"`
}

// Cell ячейка запроса
func (r CellRequest) Cell() domain.VenueCell {
	return domain.NewVenueCell(r.VenueID, r.Date, r.DayName, r.TimeSlot)
}

// CancelBookingRequest запрос на отмену бронирования в ячейке
type CancelBookingRequest struct {
	CellRequest
	Requester domain.Requester `json:"-"`
}

// GetBookingRequest запрос бронирования в ячейке
type GetBookingRequest struct {
	CellRequest
}

// GetBookingsRequest запрос списка бронирований
type GetBookingsRequest struct {
	Date    *time.Time `json:"date,omitempty"`  // Дата (опционально)
	VenueID *string    `json:"venue,omitempty"` // Площадка (опционально)
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID    int64            `json:"userId"`
	Requester domain.Requester `json:"-"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID           string    `json:"id"`
	VenueID      string    `json:"venue"`
	Date         string    `json:"date"` // "2024-03-04"
	DayName      string    `json:"day"`
	TimeSlot     string    `json:"timeSlot"` // "09:00-10:00"
	BookedBy     int64     `json:"bookedBy"`
	BookedByName string    `json:"bookedByName,omitempty"`
	Purpose      string    `json:"purpose"`
	CreatedAt    time.Time `json:"createdAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:           b.ID.String(),
		VenueID:      b.Cell.VenueID,
		Date:         b.Cell.Date.Format(domain.DateFormat),
		DayName:      b.Cell.DayName.String(),
		TimeSlot:     b.Cell.TimeSlot.String(),
		BookedBy:     b.UserID,
		BookedByName: b.BookedByName,
		Purpose:      b.Purpose,
		CreatedAt:    b.CreatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
