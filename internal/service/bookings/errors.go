package bookings

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrNoActiveBooking возвращается, когда в ячейке нет активного бронирования
	ErrNoActiveBooking = errors.New("no active booking for this venue cell")

	// ErrNotBookingOwner возвращается при попытке отменить чужое бронирование
	ErrNotBookingOwner = errors.New("requester is not the booking owner")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на просмотр данных
	ErrAccessDenied = errors.New("access denied")

	// ErrStoreUnavailable возвращается при недоступности хранилища бронирований
	ErrStoreUnavailable = errors.New("service: booking store unavailable")
)
