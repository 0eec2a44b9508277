package get_availability

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/booking/memory"
	"github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/venue"
	getAvailability "github.com/m04kA/SMC-VenueBookingService/internal/usecase/get_availability"
	"github.com/m04kA/SMC-VenueBookingService/pkg/logger"
)

type unavailableStore struct{}

func (unavailableStore) Get(context.Context, domain.VenueCell) (*domain.Booking, error) {
	return nil, errors.New("connection refused")
}

func testCatalog(t *testing.T) *venue.Catalog {
	t.Helper()
	catalog, err := venue.NewCatalog([]domain.Venue{
		{
			ID: "Lab 206", Name: "Lab 206", Category: "lab", Capacity: 65,
			Slots: []domain.VenueSlot{
				{DayName: domain.Monday, TimeSlot: "09:00-10:00"},
				{DayName: domain.Monday, TimeSlot: "10:00-11:00"},
			},
		},
		{
			ID: "CL 101", Name: "Computer Lab 101", Category: "complab", Capacity: 40,
			Slots: []domain.VenueSlot{
				{DayName: domain.Monday, TimeSlot: "09:00-10:00"},
				{DayName: domain.Friday, TimeSlot: "09:00-10:00"},
			},
		},
	})
	require.NoError(t, err)
	return catalog
}

func get(h *Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle(t *testing.T) {
	store := memory.NewStore()
	_, err := store.TryInsert(context.Background(), &domain.Booking{
		Cell:         domain.NewVenueCell("Lab 206", time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), domain.Monday, "10:00-11:00"),
		UserID:       7,
		BookedByName: "Asha",
		Purpose:      "Club meeting",
	})
	require.NoError(t, err)

	h := NewHandler(getAvailability.NewUseCase(store, testCatalog(t), logger.Discard()), logger.Discard())

	rec := get(h, "/api/v1/availability?date=2024-03-04")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "monday", resp.Day)
	assert.Equal(t, 2, resp.Free)
	assert.Equal(t, 1, resp.Booked)
	require.Len(t, resp.Cells, 3)

	booked := resp.Cells[1]
	assert.Equal(t, "Lab 206", booked.Venue)
	assert.Equal(t, "10:00-11:00", booked.TimeSlot)
	assert.Equal(t, "10:00", booked.StartTime)
	assert.Equal(t, "11:00", booked.EndTime)
	assert.Equal(t, 60, booked.Duration)
	assert.Equal(t, "booked", booked.Status)
	require.NotNil(t, booked.Booking)
	assert.Equal(t, "Club meeting", booked.Booking.Purpose)
	assert.Nil(t, resp.Cells[0].Booking)

	// день расписания отличается от дня недели даты
	rec = get(h, "/api/v1/availability?date=2024-03-04&day=friday")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "friday", resp.Day)
	require.Len(t, resp.Cells, 1)
	assert.Equal(t, "CL 101", resp.Cells[0].Venue)

	rec = get(h, "/api/v1/availability?date=2024-03-04&venue=CL+101")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Cells, 1)
}

func TestHandle_Errors(t *testing.T) {
	h := NewHandler(getAvailability.NewUseCase(memory.NewStore(), testCatalog(t), logger.Discard()), logger.Discard())

	assert.Equal(t, http.StatusBadRequest, get(h, "/api/v1/availability").Code)
	assert.Equal(t, http.StatusBadRequest, get(h, "/api/v1/availability?date=2024-13-01").Code)
	assert.Equal(t, http.StatusBadRequest, get(h, "/api/v1/availability?date=2024-03-04&day=someday").Code)

	broken := NewHandler(getAvailability.NewUseCase(unavailableStore{}, testCatalog(t), logger.Discard()), logger.Discard())
	assert.Equal(t, http.StatusServiceUnavailable, get(broken, "/api/v1/availability?date=2024-03-04").Code)
}
