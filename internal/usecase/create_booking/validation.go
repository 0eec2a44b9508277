package create_booking

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса и возвращает нормализованную цель бронирования
func validateRequest(req *Request) (string, error) {
	if req.Requester.UserID <= 0 {
		return "", fmt.Errorf("%w: requester id must be positive", ErrInvalidInput)
	}

	purpose, err := normalizePurpose(req.Purpose)
	if err != nil {
		return "", err
	}

	if err := req.Cell().Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return purpose, nil
}

// normalizePurpose обрезает пробелы и проверяет длину в символах
func normalizePurpose(purpose string) (string, error) {
	trimmed := strings.TrimSpace(purpose)
	length := utf8.RuneCountInString(trimmed)

	if length < domain.MinPurposeLength {
		return "", fmt.Errorf("%w: must be at least %d characters", ErrInvalidPurpose, domain.MinPurposeLength)
	}
	if length > domain.MaxPurposeLength {
		return "", fmt.Errorf("%w: must be at most %d characters", ErrInvalidPurpose, domain.MaxPurposeLength)
	}

	return trimmed, nil
}

// displayName обрезает отображаемое имя до MaxBookedByLength символов
func displayName(name string) string {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) <= domain.MaxBookedByLength {
		return name
	}
	return string([]rune(name)[:domain.MaxBookedByLength])
}
