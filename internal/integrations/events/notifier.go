package events

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// JSONPublisher транспорт событий (Dispatcher поверх RabbitPublisher)
type JSONPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// Notifier формирует события бронирований и отправляет их через JSONPublisher
type Notifier struct {
	publisher JSONPublisher
	now       func() time.Time
}

// NewNotifier создает Notifier. publisher == nil - события не отправляются
func NewNotifier(publisher JSONPublisher) *Notifier {
	return &Notifier{publisher: publisher, now: time.Now}
}

// BookingCreated публикует booking.created
func (n *Notifier) BookingCreated(ctx context.Context, b *domain.Booking) error {
	return n.publish(ctx, RoutingKeyBookingCreated, b, 0)
}

// BookingCancelled публикует booking.cancelled
func (n *Notifier) BookingCancelled(ctx context.Context, b *domain.Booking, cancelledBy int64) error {
	return n.publish(ctx, RoutingKeyBookingCancelled, b, cancelledBy)
}

func (n *Notifier) publish(ctx context.Context, key string, b *domain.Booking, cancelledBy int64) error {
	if n == nil || n.publisher == nil {
		return nil
	}

	event := BookingEvent{
		Type:         key,
		BookingID:    b.ID.String(),
		VenueID:      b.Cell.VenueID,
		Date:         b.Cell.Date.Format(domain.DateFormat),
		DayName:      b.Cell.DayName.String(),
		TimeSlot:     b.Cell.TimeSlot.String(),
		UserID:       b.UserID,
		BookedByName: b.BookedByName,
		Purpose:      b.Purpose,
		CancelledBy:  cancelledBy,
		OccurredAt:   n.now().UTC(),
	}

	return n.publisher.PublishJSON(ctx, key, event)
}
