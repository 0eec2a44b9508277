package events

import "time"

// Ключи маршрутизации событий бронирований
const (
	RoutingKeyBookingCreated   = "booking.created"
	RoutingKeyBookingCancelled = "booking.cancelled"
)

// BookingEvent тело события booking.created / booking.cancelled
type BookingEvent struct {
	Type         string    `json:"type"`
	BookingID    string    `json:"bookingId"`
	VenueID      string    `json:"venue"`
	Date         string    `json:"date"`
	DayName      string    `json:"day"`
	TimeSlot     string    `json:"timeSlot"`
	UserID       int64     `json:"userId"`
	BookedByName string    `json:"bookedByName,omitempty"`
	Purpose      string    `json:"purpose"`
	CancelledBy  int64     `json:"cancelledBy,omitempty"`
	OccurredAt   time.Time `json:"occurredAt"`
}
