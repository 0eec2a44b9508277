package bookings

import (
	"context"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// BookingStore хранилище бронирований
type BookingStore interface {
	Get(ctx context.Context, cell domain.VenueCell) (*domain.Booking, error)
	Remove(ctx context.Context, cell domain.VenueCell, requesterID int64, isPrivileged bool) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// EventPublisher публикация события об отмене бронирования
type EventPublisher interface {
	BookingCancelled(ctx context.Context, booking *domain.Booking, cancelledBy int64) error
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
