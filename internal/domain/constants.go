package domain

// Business validation constants
const (
	MinPurposeLength  = 5
	MaxPurposeLength  = 100
	MaxVenueIDLength  = 100
	MaxBookedByLength = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Booking engine operations and outcomes, used as metric labels
const (
	OperationCreate = "create"
	OperationCancel = "cancel"

	OutcomeAdmitted         = "admitted"
	OutcomeCancelled        = "cancelled"
	OutcomeAlreadyBooked    = "already_booked"
	OutcomeNoActiveBooking  = "no_active_booking"
	OutcomeNotBookingOwner  = "not_booking_owner"
	OutcomeUnknownVenueCell = "unknown_venue_cell"
	OutcomeInvalidInput     = "invalid_input"
	OutcomeStoreUnavailable = "store_unavailable"
)
