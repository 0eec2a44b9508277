package get_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/booking/memory"
	"github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/venue"
	"github.com/m04kA/SMC-VenueBookingService/pkg/logger"
)

var monday = time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

func testCatalog(t *testing.T) *venue.Catalog {
	t.Helper()
	catalog, err := venue.NewCatalog([]domain.Venue{
		{
			ID: "Lab 206", Name: "Lab 206", Category: "lab", Capacity: 65,
			Slots: []domain.VenueSlot{
				{DayName: domain.Monday, TimeSlot: "09:00-10:00"},
				{DayName: domain.Monday, TimeSlot: "10:00-11:00"},
				{DayName: domain.Tuesday, TimeSlot: "09:00-10:00"},
			},
		},
		{
			ID: "Seminar Hall", Name: "Seminar Hall", Category: "hall", Capacity: 200,
			Slots: []domain.VenueSlot{
				{DayName: domain.Monday, TimeSlot: "14:00-16:00"},
			},
		},
	})
	require.NoError(t, err)
	return catalog
}

type failingStore struct{}

func (failingStore) Get(context.Context, domain.VenueCell) (*domain.Booking, error) {
	return nil, errors.New("connection reset")
}

type failingCatalog struct{}

func (failingCatalog) ListCellsForDay(context.Context, domain.DayName) ([]domain.CatalogCell, error) {
	return nil, errors.New("db down")
}

func TestExecute(t *testing.T) {
	store := memory.NewStore()
	uc := NewUseCase(store, testCatalog(t), logger.Discard())
	ctx := context.Background()

	_, err := store.TryInsert(ctx, &domain.Booking{
		Cell:         domain.NewVenueCell("Lab 206", monday, domain.Monday, "10:00-11:00"),
		UserID:       7,
		BookedByName: "Asha",
		Purpose:      "Club meeting",
	})
	require.NoError(t, err)

	resp, err := uc.Execute(ctx, &Request{Date: monday, DayName: domain.Monday})
	require.NoError(t, err)
	require.Len(t, resp.Cells, 3)
	assert.Equal(t, 2, resp.Free)
	assert.Equal(t, 1, resp.Booked)

	assert.True(t, resp.Cells[0].IsFree())
	assert.Equal(t, "Lab 206", resp.Cells[0].Cell.VenueID)

	booked := resp.Cells[1]
	require.NotNil(t, booked.Booking)
	assert.Equal(t, domain.CellBooked, booked.Status)
	assert.Equal(t, int64(7), booked.Booking.BookedBy)
	assert.Equal(t, "Club meeting", booked.Booking.Purpose)
	assert.Equal(t, "Lab 206", booked.Booking.VenueName)

	assert.Equal(t, "Seminar Hall", resp.Cells[2].Cell.VenueID)
	assert.Equal(t, 200, resp.Cells[2].Capacity)
}

func TestExecute_DayDerivedFromDate(t *testing.T) {
	uc := NewUseCase(memory.NewStore(), testCatalog(t), logger.Discard())

	resp, err := uc.Execute(context.Background(), &Request{Date: monday.AddDate(0, 0, 1)})
	require.NoError(t, err)
	assert.Equal(t, domain.Tuesday, resp.DayName)
	assert.Len(t, resp.Cells, 1)
}

func TestExecute_VenueFilter(t *testing.T) {
	uc := NewUseCase(memory.NewStore(), testCatalog(t), logger.Discard())

	resp, err := uc.Execute(context.Background(), &Request{Date: monday, VenueID: "Seminar Hall"})
	require.NoError(t, err)
	require.Len(t, resp.Cells, 1)
	assert.Equal(t, "Seminar Hall", resp.Cells[0].Cell.VenueID)
}

func TestExecute_Errors(t *testing.T) {
	uc := NewUseCase(memory.NewStore(), testCatalog(t), logger.Discard())

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Date: monday, DayName: "funday"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewUseCase(failingStore{}, testCatalog(t), logger.Discard()).Execute(context.Background(), &Request{Date: monday})
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = NewUseCase(memory.NewStore(), failingCatalog{}, logger.Discard()).Execute(context.Background(), &Request{Date: monday})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestCells_IsLazyAndRestartable(t *testing.T) {
	store := memory.NewStore()
	uc := NewUseCase(store, testCatalog(t), logger.Discard())
	ctx := context.Background()

	seq := uc.Cells(ctx, &Request{Date: monday, DayName: domain.Monday})

	// ранняя остановка
	seen := 0
	for range seq {
		seen++
		break
	}
	assert.Equal(t, 1, seen)

	// бронирование после создания последовательности видно при следующем обходе
	_, err := store.TryInsert(ctx, &domain.Booking{
		Cell:    domain.NewVenueCell("Lab 206", monday, domain.Monday, "09:00-10:00"),
		UserID:  1,
		Purpose: "Club meeting",
	})
	require.NoError(t, err)

	var statuses []domain.CellStatus
	for cell, err := range seq {
		require.NoError(t, err)
		statuses = append(statuses, cell.Status)
	}
	assert.Equal(t, []domain.CellStatus{domain.CellBooked, domain.CellFree, domain.CellFree}, statuses)
}
