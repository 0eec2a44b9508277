package venues

import (
	"context"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// VenueCatalog каталог площадок (только чтение)
type VenueCatalog interface {
	ListVenues(ctx context.Context) ([]domain.Venue, error)
	GetVenue(ctx context.Context, venueID string) (*domain.Venue, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
