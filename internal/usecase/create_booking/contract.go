package create_booking

import (
	"context"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// BookingStore хранилище бронирований с атомарной вставкой в свободную ячейку
type BookingStore interface {
	TryInsert(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// VenueCatalog каталог площадок (только чтение)
type VenueCatalog interface {
	CellExists(ctx context.Context, venueID string, day domain.DayName, slot types.TimeSlot) (bool, error)
}

// EventPublisher публикация события о созданном бронировании
type EventPublisher interface {
	BookingCreated(ctx context.Context, booking *domain.Booking) error
}

// OutcomeRecorder учёт исходов операций движка (*metrics.Metrics, допускает nil)
type OutcomeRecorder interface {
	ObserveBookingOutcome(operation, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
