package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// DefaultKeyPrefix префикс ключей по умолчанию
const DefaultKeyPrefix = "venue-booking:"

const scanBatch = 200

// removeScript атомарно проверяет владельца и удаляет ключ ячейки.
// ARGV[1] - id запрашивающего, ARGV[2] - "1" для привилегированного пользователя.
// Возвращает {0} если ячейка свободна, {-1} если запрашивающий не владелец, {1, value} при удалении.
var removeScript = goredis.NewScript(`
	local value = redis.call('GET', KEYS[1])
	if not value then
		return {0}
	end

	local record = cjson.decode(value)
	if ARGV[2] ~= '1' and record.owner ~= ARGV[1] then
		return {-1}
	end

	redis.call('DEL', KEYS[1])
	return {1, value}
`)

// record формат бронирования в Redis. owner хранится строкой для сравнения в Lua
type record struct {
	ID           string `json:"id"`
	VenueID      string `json:"venue_id"`
	Date         string `json:"date"`
	DayName      string `json:"day_name"`
	TimeSlot     string `json:"time_slot"`
	Owner        string `json:"owner"`
	BookedByName string `json:"booked_by_name"`
	Purpose      string `json:"purpose"`
	CreatedAt    int64  `json:"created_at"`
}

// Store хранилище бронирований в Redis.
// Одна ячейка - один ключ: занятие через SET NX, освобождение через Lua-скрипт.
type Store struct {
	client goredis.UniversalClient
	prefix string
	now    func() time.Time
}

// NewStore создает хранилище. Пустой prefix заменяется на DefaultKeyPrefix
func NewStore(client goredis.UniversalClient, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Store{
		client: client,
		prefix: prefix,
		now:    time.Now,
	}
}

func (s *Store) key(cell domain.VenueCell) string {
	return s.prefix + "cell:" + cell.Key()
}

// TryInsert занимает ячейку, если ключ ещё не существует
func (s *Store) TryInsert(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	created := *b
	if created.ID == uuid.Nil {
		created.ID = uuid.New()
	}
	created.Cell = domain.NewVenueCell(b.Cell.VenueID, b.Cell.Date, b.Cell.DayName, b.Cell.TimeSlot)
	created.CreatedAt = s.now().UTC().Truncate(time.Millisecond)

	payload, err := json.Marshal(toRecord(&created))
	if err != nil {
		return nil, fmt.Errorf("%w: TryInsert - marshal booking: %v", booking.ErrStoreUnavailable, err)
	}

	ok, err := s.client.SetNX(ctx, s.key(created.Cell), payload, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: TryInsert - setnx: %v", booking.ErrStoreUnavailable, err)
	}
	if !ok {
		return nil, booking.ErrSlotAlreadyBooked
	}

	return &created, nil
}

// Remove освобождает ячейку, проверяя владельца в том же скрипте, что и удаление
func (s *Store) Remove(ctx context.Context, cell domain.VenueCell, requesterID int64, isPrivileged bool) (*domain.Booking, error) {
	privileged := "0"
	if isPrivileged {
		privileged = "1"
	}

	result, err := removeScript.Run(ctx, s.client,
		[]string{s.key(cell)},
		strconv.FormatInt(requesterID, 10), privileged,
	).Slice()
	if err != nil {
		return nil, fmt.Errorf("%w: Remove - run script: %v", booking.ErrStoreUnavailable, err)
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("%w: Remove - empty script result", booking.ErrStoreUnavailable)
	}

	status, _ := result[0].(int64)
	switch status {
	case 0:
		return nil, booking.ErrBookingNotFound
	case -1:
		return nil, booking.ErrNotBookingOwner
	}

	if len(result) < 2 {
		return nil, fmt.Errorf("%w: Remove - missing removed value", booking.ErrStoreUnavailable)
	}
	value, _ := result[1].(string)

	return decode(value)
}

// Get возвращает активное бронирование ячейки
func (s *Store) Get(ctx context.Context, cell domain.VenueCell) (*domain.Booking, error) {
	value, err := s.client.Get(ctx, s.key(cell)).Result()
	if errors.Is(err, goredis.Nil) {
		return nil, booking.ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - get: %v", booking.ErrStoreUnavailable, err)
	}

	return decode(value)
}

// List обходит ключи ячеек через SCAN и фильтрует бронирования
func (s *Store) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	iter := s.client.Scan(ctx, 0, s.prefix+"cell:*", scanBatch).Iterator()
	for iter.Next(ctx) {
		value, err := s.client.Get(ctx, iter.Val()).Result()
		if errors.Is(err, goredis.Nil) {
			// ячейку освободили во время обхода
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: List - get: %v", booking.ErrStoreUnavailable, err)
		}

		b, err := decode(value)
		if err != nil {
			return nil, err
		}
		if filter.Matches(b) {
			bookings = append(bookings, b)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - scan: %v", booking.ErrStoreUnavailable, err)
	}

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

func toRecord(b *domain.Booking) record {
	return record{
		ID:           b.ID.String(),
		VenueID:      b.Cell.VenueID,
		Date:         b.Cell.Date.Format(domain.DateFormat),
		DayName:      string(b.Cell.DayName),
		TimeSlot:     string(b.Cell.TimeSlot),
		Owner:        strconv.FormatInt(b.UserID, 10),
		BookedByName: b.BookedByName,
		Purpose:      b.Purpose,
		CreatedAt:    b.CreatedAt.UnixMilli(),
	}
}

func decode(value string) (*domain.Booking, error) {
	var r record
	if err := json.Unmarshal([]byte(value), &r); err != nil {
		return nil, fmt.Errorf("%w: decode booking: %v", booking.ErrStoreUnavailable, err)
	}

	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: decode booking id: %v", booking.ErrStoreUnavailable, err)
	}
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: decode booking date: %v", booking.ErrStoreUnavailable, err)
	}
	owner, err := strconv.ParseInt(r.Owner, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: decode booking owner: %v", booking.ErrStoreUnavailable, err)
	}

	return &domain.Booking{
		ID:           id,
		Cell:         domain.NewVenueCell(r.VenueID, date, domain.DayName(r.DayName), types.TimeSlot(r.TimeSlot)),
		UserID:       owner,
		BookedByName: r.BookedByName,
		Purpose:      r.Purpose,
		CreatedAt:    time.UnixMilli(r.CreatedAt).UTC(),
	}, nil
}
