package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/booking"
)

// Store хранилище бронирований в памяти процесса.
// Ключ - VenueCell.Key(), значение - *domain.Booking.
// Атомарность обеспечивается на уровне одного ключа (LoadOrStore / CompareAndDelete),
// операции над разными ячейками не блокируют друг друга.
type Store struct {
	cells sync.Map
	now   func() time.Time
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{now: time.Now}
}

// TryInsert занимает ячейку, если она свободна
func (s *Store) TryInsert(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	created := *b
	if created.ID == uuid.Nil {
		created.ID = uuid.New()
	}
	created.Cell = domain.NewVenueCell(b.Cell.VenueID, b.Cell.Date, b.Cell.DayName, b.Cell.TimeSlot)
	created.CreatedAt = s.now().UTC()

	if _, loaded := s.cells.LoadOrStore(created.Cell.Key(), &created); loaded {
		return nil, booking.ErrSlotAlreadyBooked
	}

	out := created
	return &out, nil
}

// Remove освобождает ячейку, если запрашивающий - владелец или привилегированный пользователь.
// Удаляется ровно то бронирование, которое прошло проверку владельца.
func (s *Store) Remove(ctx context.Context, cell domain.VenueCell, requesterID int64, isPrivileged bool) (*domain.Booking, error) {
	key := cell.Key()

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		value, ok := s.cells.Load(key)
		if !ok {
			return nil, booking.ErrBookingNotFound
		}

		current := value.(*domain.Booking)
		if !current.CanBeCancelledBy(requesterID, isPrivileged) {
			return nil, booking.ErrNotBookingOwner
		}

		if s.cells.CompareAndDelete(key, current) {
			out := *current
			return &out, nil
		}
		// ячейку освободили и заняли заново между Load и CompareAndDelete
	}
}

// Get возвращает активное бронирование ячейки
func (s *Store) Get(ctx context.Context, cell domain.VenueCell) (*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	value, ok := s.cells.Load(cell.Key())
	if !ok {
		return nil, booking.ErrBookingNotFound
	}

	out := *value.(*domain.Booking)
	return &out, nil
}

// List возвращает бронирования по фильтру в порядке (дата, площадка, слот)
func (s *Store) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bookings := make([]*domain.Booking, 0)
	s.cells.Range(func(_, value any) bool {
		b := value.(*domain.Booking)
		if filter.Matches(b) {
			out := *b
			bookings = append(bookings, &out)
		}
		return true
	})

	sort.Slice(bookings, func(i, j int) bool {
		a, b := bookings[i].Cell, bookings[j].Cell
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.VenueID != b.VenueID {
			return a.VenueID < b.VenueID
		}
		return a.TimeSlot < b.TimeSlot
	})

	return bookings, nil
}
