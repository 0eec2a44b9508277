package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// Role of the requester as supplied by the identity collaborator
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// Requester is the authenticated caller of an engine operation.
// It is built per request by the API layer and never stored globally.
type Requester struct {
	UserID int64
	Name   string
	Role   Role
}

// IsPrivileged returns true for administrators, who may cancel any booking
func (r Requester) IsPrivileged() bool {
	return r.Role == RoleAdmin || r.Role == RoleSuperAdmin
}

// Booking is a live reservation occupying exactly one venue cell
type Booking struct {
	ID           uuid.UUID
	Cell         VenueCell
	UserID       int64
	BookedByName string
	Purpose      string
	CreatedAt    time.Time
}

// IsOwnedBy returns true if the booking was made by userID
func (b *Booking) IsOwnedBy(userID int64) bool {
	return b.UserID == userID
}

// CanBeCancelledBy returns true if the requester may cancel the booking
func (b *Booking) CanBeCancelledBy(userID int64, isPrivileged bool) bool {
	return isPrivileged || b.IsOwnedBy(userID)
}

// BookingsFilter фильтр для получения списка бронирований
type BookingsFilter struct {
	Date    *time.Time // Дата (опционально)
	VenueID *string    // Площадка (опционально)
	UserID  *int64     // Автор бронирования (опционально)
}

// Matches reports whether the booking passes the filter
func (f BookingsFilter) Matches(b *Booking) bool {
	if f.Date != nil && !NormalizeDate(*f.Date).Equal(NormalizeDate(b.Cell.Date)) {
		return false
	}
	if f.VenueID != nil && *f.VenueID != b.Cell.VenueID {
		return false
	}
	if f.UserID != nil && *f.UserID != b.UserID {
		return false
	}
	return true
}

// CellStatus is the availability of one venue cell
type CellStatus string

const (
	CellFree   CellStatus = "free"
	CellBooked CellStatus = "booked"
)

// BookingSummary holds the booking fields needed to display or export a booked cell
type BookingSummary struct {
	BookingID    uuid.UUID
	BookedBy     int64
	BookedByName string
	Purpose      string
	TimeSlot     types.TimeSlot
	VenueName    string
}

// CellAvailability is one row of the availability grid
type CellAvailability struct {
	Cell      VenueCell
	VenueName string
	Category  string
	Capacity  int
	Status    CellStatus
	Booking   *BookingSummary // nil when Status == CellFree
}

// IsFree returns true if nobody holds the cell
func (a *CellAvailability) IsFree() bool {
	return a.Status == CellFree
}

// NewCellAvailability composes a catalog cell with the booking holding it, if any
func NewCellAvailability(cell CatalogCell, date time.Time, booking *Booking) CellAvailability {
	av := CellAvailability{
		Cell:      cell.On(date),
		VenueName: cell.VenueName,
		Category:  cell.Category,
		Capacity:  cell.Capacity,
		Status:    CellFree,
	}
	if booking != nil {
		av.Status = CellBooked
		av.Booking = &BookingSummary{
			BookingID:    booking.ID,
			BookedBy:     booking.UserID,
			BookedByName: booking.BookedByName,
			Purpose:      booking.Purpose,
			TimeSlot:     booking.Cell.TimeSlot,
			VenueName:    cell.VenueName,
		}
	}
	return av
}
