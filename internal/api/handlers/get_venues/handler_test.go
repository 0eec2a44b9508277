package get_venues

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	venueRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/venue"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/venues"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/venues/models"
	"github.com/m04kA/SMC-VenueBookingService/pkg/logger"
)

func newRouter(t *testing.T) *mux.Router {
	t.Helper()

	catalog, err := venueRepo.NewCatalog([]domain.Venue{
		{
			ID: "Lab 206", Name: "Lab 206", Category: "lab", Capacity: 65,
			Slots: []domain.VenueSlot{
				{DayName: domain.Monday, TimeSlot: "09:00-10:00"},
				{DayName: domain.Monday, TimeSlot: "10:00-11:00"},
			},
		},
		{ID: "Seminar Hall", Name: "Seminar Hall", Category: "hall", Capacity: 200},
	})
	require.NoError(t, err)

	h := NewHandler(venues.NewService(catalog, logger.Discard()), logger.Discard())

	r := mux.NewRouter()
	r.HandleFunc("/api/v1/venues", h.Handle).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/venues/{venueId}", h.HandleByID).Methods(http.MethodGet)
	return r
}

func TestHandle(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/venues", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var list models.VenueListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Venues, 2)
	assert.Equal(t, "Lab 206", list.Venues[0].ID)
}

func TestHandleByID(t *testing.T) {
	r := newRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/venues/Lab%20206", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var venue models.VenueResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &venue))
	assert.Equal(t, 65, venue.Capacity)
	require.Len(t, venue.Slots, 1)
	assert.Equal(t, []string{"09:00-10:00", "10:00-11:00"}, venue.Slots[0].Times)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/venues/Lab%20999", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
