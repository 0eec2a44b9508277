package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

func TestParseDayName(t *testing.T) {
	d, err := ParseDayName("  Monday ")
	require.NoError(t, err)
	assert.Equal(t, Monday, d)

	_, err = ParseDayName("funday")
	assert.ErrorIs(t, err, ErrInvalidDayName)
}

func TestDayNameOf(t *testing.T) {
	assert.Equal(t, Monday, DayNameOf(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, Sunday, DayNameOf(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, Saturday, DayNameOf(time.Date(2024, 3, 9, 23, 59, 0, 0, time.UTC)))
}

func TestVenueCell_Key(t *testing.T) {
	morning := time.Date(2024, 3, 4, 8, 30, 0, 0, time.UTC)
	evening := time.Date(2024, 3, 4, 21, 0, 0, 0, time.UTC)

	a := NewVenueCell("Lab 206", morning, Monday, "09:00-10:00")
	b := NewVenueCell("Lab 206", evening, Monday, "09:00-10:00")
	c := NewVenueCell("Lab 206", morning, Monday, "10:00-11:00")

	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), c.Key())
	assert.Equal(t, "Lab 206|2024-03-04|monday|09:00-10:00", a.Key())
}

func TestVenueCell_Validate(t *testing.T) {
	date := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		cell    VenueCell
		wantErr bool
	}{
		{name: "valid", cell: NewVenueCell("Lab 206", date, Monday, "09:00-10:00")},
		{name: "empty venue", cell: NewVenueCell("", date, Monday, "09:00-10:00"), wantErr: true},
		{name: "untrimmed venue", cell: NewVenueCell(" Lab 206", date, Monday, "09:00-10:00"), wantErr: true},
		{name: "zero date", cell: VenueCell{VenueID: "Lab 206", DayName: Monday, TimeSlot: "09:00-10:00"}, wantErr: true},
		{name: "bad day", cell: NewVenueCell("Lab 206", date, DayName("mon"), "09:00-10:00"), wantErr: true},
		{name: "bad slot", cell: NewVenueCell("Lab 206", date, Monday, types.TimeSlot("9-10")), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cell.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewCellAvailability(t *testing.T) {
	date := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	cell := CatalogCell{VenueID: "Lab 206", VenueName: "Lab 206", Category: "lab", Capacity: 65, DayName: Monday, TimeSlot: "09:00-10:00"}

	free := NewCellAvailability(cell, date, nil)
	assert.True(t, free.IsFree())
	assert.Nil(t, free.Booking)

	booking := &Booking{Cell: cell.On(date), UserID: 7, BookedByName: "Asha", Purpose: "Club meeting"}
	booked := NewCellAvailability(cell, date, booking)
	require.NotNil(t, booked.Booking)
	assert.Equal(t, CellBooked, booked.Status)
	assert.Equal(t, int64(7), booked.Booking.BookedBy)
	assert.Equal(t, "Club meeting", booked.Booking.Purpose)
	assert.Equal(t, types.TimeSlot("09:00-10:00"), booked.Booking.TimeSlot)
}

func TestRequester_IsPrivileged(t *testing.T) {
	assert.False(t, Requester{UserID: 1, Role: RoleUser}.IsPrivileged())
	assert.False(t, Requester{UserID: 1}.IsPrivileged())
	assert.True(t, Requester{UserID: 1, Role: RoleAdmin}.IsPrivileged())
	assert.True(t, Requester{UserID: 1, Role: RoleSuperAdmin}.IsPrivileged())
}
