package booking

import "errors"

// Ошибки хранилища бронирований. Общие для всех реализаций (postgres, memory, redis)
var (
	// ErrBookingNotFound возвращается, когда в ячейке нет активного бронирования
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotAlreadyBooked возвращается, когда ячейка уже занята другим бронированием
	ErrSlotAlreadyBooked = errors.New("booking.repository: slot already booked")

	// ErrNotBookingOwner возвращается при попытке удалить чужое бронирование без привилегий
	ErrNotBookingOwner = errors.New("booking.repository: requester is not the booking owner")

	// ErrStoreUnavailable возвращается при недоступности хранилища (сеть, соединение)
	ErrStoreUnavailable = errors.New("booking.repository: store unavailable")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
