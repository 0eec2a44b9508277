package get_user_bookings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/booking/memory"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-VenueBookingService/pkg/logger"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

func newRouter(t *testing.T, requester domain.Requester) *mux.Router {
	t.Helper()

	store := memory.NewStore()
	date := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	for i, slot := range []string{"09:00-10:00", "10:00-11:00"} {
		cell := domain.NewVenueCell("Lab 206", date, domain.Monday, types.TimeSlot(slot))
		_, err := store.TryInsert(context.Background(), &domain.Booking{Cell: cell, UserID: int64(7 + i), Purpose: "Club meeting"})
		require.NoError(t, err)
	}

	h := NewHandler(bookings.NewService(store, nil, nil, logger.Discard()), logger.Discard())

	r := mux.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithRequester(r.Context(), requester)))
		})
	})
	r.HandleFunc("/api/v1/users/{userId}/bookings", h.Handle).Methods(http.MethodGet)
	return r
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name      string
		requester domain.Requester
		target    string
		want      int
		wantCount int
	}{
		{name: "own bookings", requester: domain.Requester{UserID: 7}, target: "/api/v1/users/7/bookings", want: http.StatusOK, wantCount: 1},
		{name: "admin", requester: domain.Requester{UserID: 1, Role: domain.RoleAdmin}, target: "/api/v1/users/8/bookings", want: http.StatusOK, wantCount: 1},
		{name: "no bookings", requester: domain.Requester{UserID: 9}, target: "/api/v1/users/9/bookings", want: http.StatusOK},
		{name: "foreign bookings", requester: domain.Requester{UserID: 7}, target: "/api/v1/users/8/bookings", want: http.StatusForbidden},
		{name: "bad id", requester: domain.Requester{UserID: 7}, target: "/api/v1/users/x/bookings", want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newRouter(t, tt.requester).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			require.Equal(t, tt.want, rec.Code)
			if tt.want != http.StatusOK {
				return
			}

			var list models.BookingListResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
			assert.Len(t, list.Bookings, tt.wantCount)
		})
	}
}
