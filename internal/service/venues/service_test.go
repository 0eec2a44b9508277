package venues

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	venueRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/venue"
	"github.com/m04kA/SMC-VenueBookingService/pkg/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	catalog, err := venueRepo.NewCatalog([]domain.Venue{
		{
			ID: "Lab 206", Name: "Lab 206", Category: "lab", Capacity: 65,
			Slots: []domain.VenueSlot{
				{DayName: domain.Wednesday, TimeSlot: "09:00-10:00"},
				{DayName: domain.Monday, TimeSlot: "09:00-10:00"},
				{DayName: domain.Monday, TimeSlot: "10:00-11:00"},
			},
		},
		{ID: "Seminar Hall", Name: "Seminar Hall", Category: "hall", Capacity: 200},
	})
	require.NoError(t, err)
	return NewService(catalog, logger.Discard())
}

func TestService_List(t *testing.T) {
	resp, err := newTestService(t).List(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Venues, 2)

	lab := resp.Venues[0]
	assert.Equal(t, "Lab 206", lab.ID)
	require.Len(t, lab.Slots, 2)
	assert.Equal(t, "monday", lab.Slots[0].Day)
	assert.Equal(t, []string{"09:00-10:00", "10:00-11:00"}, lab.Slots[0].Times)
	assert.Equal(t, "wednesday", lab.Slots[1].Day)

	assert.Empty(t, resp.Venues[1].Slots)
}

func TestService_GetByID(t *testing.T) {
	svc := newTestService(t)

	v, err := svc.GetByID(context.Background(), "Seminar Hall")
	require.NoError(t, err)
	assert.Equal(t, 200, v.Capacity)

	_, err = svc.GetByID(context.Background(), "Lab 999")
	assert.ErrorIs(t, err, ErrVenueNotFound)

	_, err = svc.GetByID(context.Background(), " ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
