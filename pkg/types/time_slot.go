package types

import (
	"fmt"
	"strings"
)

// TimeSlot is one enumerated bookable interval of a day in "HH:MM-HH:MM" form.
// It is compared as an opaque value: two slots are the same slot only when
// their canonical strings are equal.
type TimeSlot string

// ParseTimeSlot accepts "9:00-10:00", "09:00 - 10:00" and similar spellings and
// returns the canonical form. The start must be strictly before the end.
func ParseTimeSlot(s string) (TimeSlot, error) {
	startStr, endStr, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeSlot, s)
	}

	start, err := NewTimeStringFromString(startStr)
	if err != nil {
		return "", fmt.Errorf("%w: start of %q", ErrInvalidTimeSlot, s)
	}
	end, err := NewTimeStringFromString(endStr)
	if err != nil {
		return "", fmt.Errorf("%w: end of %q", ErrInvalidTimeSlot, s)
	}
	if !start.IsBefore(end) {
		return "", fmt.Errorf("%w: %q ends before it starts", ErrInvalidTimeSlot, s)
	}

	return TimeSlot(start.String() + "-" + end.String()), nil
}

func (s TimeSlot) String() string {
	return string(s)
}

// Validate checks that s is already in canonical form.
func (s TimeSlot) Validate() error {
	parsed, err := ParseTimeSlot(string(s))
	if err != nil {
		return err
	}
	if parsed != s {
		return fmt.Errorf("%w: %q is not canonical, expected %q", ErrInvalidTimeSlot, s, parsed)
	}
	return nil
}

// Start returns the beginning of the slot. Empty for invalid slots.
func (s TimeSlot) Start() TimeString {
	start, _, _ := strings.Cut(string(s), "-")
	return TimeString(start)
}

// End returns the end of the slot. Empty for invalid slots.
func (s TimeSlot) End() TimeString {
	_, end, _ := strings.Cut(string(s), "-")
	return TimeString(end)
}

// DurationMinutes returns the length of a valid slot, 0 otherwise.
func (s TimeSlot) DurationMinutes() int {
	start, errStart := s.Start().Minutes()
	end, errEnd := s.End().Minutes()
	if errStart != nil || errEnd != nil {
		return 0
	}
	return end - start
}
