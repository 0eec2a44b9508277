package create_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных (purpose, идентификаторы ячейки)
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInvalidPurpose возвращается, когда цель бронирования короче или длиннее допустимого.
	// Оборачивает ErrInvalidInput
	ErrInvalidPurpose = fmt.Errorf("%w: purpose length", ErrInvalidInput)

	// ErrUnknownVenueCell возвращается, когда площадка не определяет этот слот в этот день
	ErrUnknownVenueCell = errors.New("create_booking: unknown venue cell")

	// ErrAlreadyBooked возвращается, когда ячейка уже занята
	ErrAlreadyBooked = errors.New("create_booking: venue cell is already booked")

	// ErrStoreUnavailable возвращается при недоступности хранилища бронирований
	ErrStoreUnavailable = errors.New("create_booking: booking store unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
