package redis

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/booking"
)

var monday = time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

// newTestStore подключается к TEST_REDIS_ADDR с уникальным префиксом ключей
func newTestStore(t *testing.T) *Store {
	t.Helper()

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR is not set")
	}

	client := goredis.NewClient(&goredis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, client.Ping(ctx).Err())

	prefix := "test:" + uuid.NewString() + ":"
	t.Cleanup(func() {
		keys, _ := client.Keys(context.Background(), prefix+"*").Result()
		if len(keys) > 0 {
			client.Del(context.Background(), keys...)
		}
	})

	return NewStore(client, prefix)
}

func lab206() domain.VenueCell {
	return domain.NewVenueCell("Lab 206", monday, domain.Monday, "09:00-10:00")
}

func TestStore_TryInsertAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.TryInsert(ctx, &domain.Booking{Cell: lab206(), UserID: 7, BookedByName: "Asha", Purpose: "Club meeting"})
	require.NoError(t, err)

	got, err := s.Get(ctx, lab206())
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, int64(7), got.UserID)
	assert.Equal(t, "Asha", got.BookedByName)
	assert.Equal(t, lab206().Key(), got.Cell.Key())
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))

	_, err = s.TryInsert(ctx, &domain.Booking{Cell: lab206(), UserID: 8, Purpose: "Another event"})
	assert.ErrorIs(t, err, booking.ErrSlotAlreadyBooked)
}

func TestStore_ConcurrentTryInsert(t *testing.T) {
	s := newTestStore(t)

	var (
		wg      sync.WaitGroup
		success atomic.Int32
	)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			if _, err := s.TryInsert(context.Background(), &domain.Booking{Cell: lab206(), UserID: userID, Purpose: "Concurrent"}); err == nil {
				success.Add(1)
			}
		}(int64(i + 1))
	}
	wg.Wait()

	assert.Equal(t, int32(1), success.Load())
}

func TestStore_Remove(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Remove(ctx, lab206(), 7, false)
	assert.ErrorIs(t, err, booking.ErrBookingNotFound)

	created, err := s.TryInsert(ctx, &domain.Booking{Cell: lab206(), UserID: 7, Purpose: "Club meeting"})
	require.NoError(t, err)

	_, err = s.Remove(ctx, lab206(), 8, false)
	assert.ErrorIs(t, err, booking.ErrNotBookingOwner)

	_, err = s.Get(ctx, lab206())
	require.NoError(t, err)

	removed, err := s.Remove(ctx, lab206(), 7, false)
	require.NoError(t, err)
	assert.Equal(t, created.ID, removed.ID)

	_, err = s.TryInsert(ctx, &domain.Booking{Cell: lab206(), UserID: 8, Purpose: "Rebooked"})
	require.NoError(t, err)

	_, err = s.Remove(ctx, lab206(), 1, true)
	assert.NoError(t, err)
}

func TestStore_List(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, c := range []domain.VenueCell{
		domain.NewVenueCell("Seminar Hall", monday, domain.Monday, "09:00-10:00"),
		domain.NewVenueCell("Lab 206", monday, domain.Monday, "10:00-11:00"),
		domain.NewVenueCell("Lab 206", monday.AddDate(0, 0, 1), domain.Tuesday, "09:00-10:00"),
	} {
		_, err := s.TryInsert(ctx, &domain.Booking{Cell: c, UserID: 7, Purpose: "Listing"})
		require.NoError(t, err)
	}

	bookings, err := s.List(ctx, domain.BookingsFilter{Date: &monday})
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, "Lab 206", bookings[0].Cell.VenueID)
	assert.Equal(t, "Seminar Hall", bookings[1].Cell.VenueID)
}

func TestToRecord_StoresOwnerAsString(t *testing.T) {
	b := &domain.Booking{
		ID:           uuid.New(),
		Cell:         lab206(),
		UserID:       9007199254740993,
		BookedByName: "Asha",
		Purpose:      "Club meeting",
		CreatedAt:    time.UnixMilli(1709542800123).UTC(),
	}

	payload := toRecord(b)
	assert.Equal(t, "9007199254740993", payload.Owner)
	assert.Equal(t, "2024-03-04", payload.Date)
}
