package get_availability

import (
	"context"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// BookingStore чтение активных бронирований
type BookingStore interface {
	Get(ctx context.Context, cell domain.VenueCell) (*domain.Booking, error)
}

// VenueCatalog каталог площадок (только чтение)
type VenueCatalog interface {
	ListCellsForDay(ctx context.Context, day domain.DayName) ([]domain.CatalogCell, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
