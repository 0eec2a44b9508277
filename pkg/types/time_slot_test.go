package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeSlot(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeSlot
		wantErr bool
	}{
		{name: "canonical", input: "09:00-10:00", want: "09:00-10:00"},
		{name: "single digit hour and spaces", input: " 9:00 - 10:30 ", want: "09:00-10:30"},
		{name: "afternoon", input: "14:15-15:05", want: "14:15-15:05"},
		{name: "no separator", input: "09:00", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "end before start", input: "10:00-09:00", wantErr: true},
		{name: "zero length", input: "10:00-10:00", wantErr: true},
		{name: "bad minutes", input: "09:7-10:00", wantErr: true},
		{name: "hour out of range", input: "24:00-25:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeSlot(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTimeSlot)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeSlot_Validate(t *testing.T) {
	assert.NoError(t, TimeSlot("09:00-10:00").Validate())
	assert.ErrorIs(t, TimeSlot("9:00-10:00").Validate(), ErrInvalidTimeSlot)
	assert.ErrorIs(t, TimeSlot("").Validate(), ErrInvalidTimeSlot)
}

func TestTimeSlot_Bounds(t *testing.T) {
	slot := TimeSlot("09:00-10:30")

	assert.Equal(t, TimeString("09:00"), slot.Start())
	assert.Equal(t, TimeString("10:30"), slot.End())
	assert.Equal(t, 90, slot.DurationMinutes())
	assert.Equal(t, 0, TimeSlot("garbage").DurationMinutes())
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:01"))
	assert.False(t, TimeString("09:00").IsBefore("09:00"))
	assert.False(t, TimeString("bad").IsBefore("09:00"))

	m, err := TimeString("09:45").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 585, m)
}
