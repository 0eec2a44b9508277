package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени (ожидается HH:MM)
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrInvalidTimeSlot возвращается при некорректном формате слота (ожидается HH:MM-HH:MM)
	ErrInvalidTimeSlot = errors.New("invalid time slot format")
)

// TimeString is a wall-clock time of day in "HH:MM" form.
type TimeString string

// NewTimeStringFromString parses "H:MM" or "HH:MM" and returns the canonical "HH:MM" form.
func NewTimeStringFromString(s string) (TimeString, error) {
	minutes, err := parseMinutes(strings.TrimSpace(s))
	if err != nil {
		return "", err
	}
	return fromMinutes(minutes), nil
}

func (t TimeString) String() string {
	return string(t)
}

// Validate checks the canonical "HH:MM" form.
func (t TimeString) Validate() error {
	if len(t) != 5 {
		return ErrInvalidTimeString
	}
	_, err := parseMinutes(string(t))
	return err
}

// Minutes returns minutes since midnight.
func (t TimeString) Minutes() (int, error) {
	return parseMinutes(string(t))
}

// IsBefore reports whether t is strictly earlier than other. Invalid values compare as false.
func (t TimeString) IsBefore(other TimeString) bool {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	return errA == nil && errB == nil && a < b
}

func parseMinutes(s string) (int, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 {
		return 0, ErrInvalidTimeString
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, ErrInvalidTimeString
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, ErrInvalidTimeString
	}
	return h*60 + m, nil
}

func fromMinutes(m int) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60))
}
