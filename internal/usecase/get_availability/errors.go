package get_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrStoreUnavailable возвращается при недоступности хранилища бронирований
	ErrStoreUnavailable = errors.New("get_availability: booking store unavailable")

	// ErrInternal возвращается при ошибках каталога
	ErrInternal = errors.New("get_availability: internal error")
)
