package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// ErrInvalidDayName is returned for day names outside monday..sunday.
var ErrInvalidDayName = errors.New("invalid day name")

// DayName is the lowercase English weekday a timetable row belongs to.
type DayName string

const (
	Monday    DayName = "monday"
	Tuesday   DayName = "tuesday"
	Wednesday DayName = "wednesday"
	Thursday  DayName = "thursday"
	Friday    DayName = "friday"
	Saturday  DayName = "saturday"
	Sunday    DayName = "sunday"
)

// Days lists day names in week order starting from Monday.
var Days = []DayName{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ParseDayName normalizes case and surrounding spaces.
func ParseDayName(s string) (DayName, error) {
	d := DayName(strings.ToLower(strings.TrimSpace(s)))
	if err := d.Validate(); err != nil {
		return "", err
	}
	return d, nil
}

// DayNameOf returns the day name of the date's weekday.
func DayNameOf(date time.Time) DayName {
	// time.Weekday starts at Sunday
	return Days[(int(date.Weekday())+6)%7]
}

func (d DayName) Validate() error {
	for _, day := range Days {
		if d == day {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidDayName, string(d))
}

func (d DayName) String() string {
	return string(d)
}

// Venue is a physical bookable space as seeded into the catalog.
type Venue struct {
	ID       string
	Name     string
	Category string // lab, complab, seminar, hall, room ...
	Capacity int
	Slots    []VenueSlot
}

// VenueSlot is one timetable entry of a venue: a time slot on a day name.
type VenueSlot struct {
	DayName  DayName
	TimeSlot types.TimeSlot
}

// HasSlot reports whether the venue defines the given day/slot cell.
func (v *Venue) HasSlot(day DayName, slot types.TimeSlot) bool {
	for _, s := range v.Slots {
		if s.DayName == day && s.TimeSlot == slot {
			return true
		}
	}
	return false
}

// CatalogCell is a bookable (venue, day, slot) triple with denormalized venue data.
// It has no date: the same catalog cell is bookable on every date.
type CatalogCell struct {
	VenueID   string
	VenueName string
	Category  string
	Capacity  int
	DayName   DayName
	TimeSlot  types.TimeSlot
}

// On binds the catalog cell to a calendar date.
func (c CatalogCell) On(date time.Time) VenueCell {
	return NewVenueCell(c.VenueID, date, c.DayName, c.TimeSlot)
}

// VenueCell is the smallest unit of contention: (venue, date, day, slot).
type VenueCell struct {
	VenueID  string
	Date     time.Time
	DayName  DayName
	TimeSlot types.TimeSlot
}

// NewVenueCell builds a cell with the date truncated to a UTC calendar day.
func NewVenueCell(venueID string, date time.Time, day DayName, slot types.TimeSlot) VenueCell {
	return VenueCell{
		VenueID:  venueID,
		Date:     NormalizeDate(date),
		DayName:  day,
		TimeSlot: slot,
	}
}

// Key is the canonical contention key. Two cells conflict iff their keys are equal.
func (c VenueCell) Key() string {
	return c.VenueID + "|" + NormalizeDate(c.Date).Format(DateFormat) + "|" + string(c.DayName) + "|" + string(c.TimeSlot)
}

func (c VenueCell) String() string {
	return fmt.Sprintf("venue=%q date=%s day=%s slot=%s",
		c.VenueID, NormalizeDate(c.Date).Format(DateFormat), c.DayName, c.TimeSlot)
}

// Validate checks identifiers only; catalog membership is checked by the engine.
func (c VenueCell) Validate() error {
	venueID := strings.TrimSpace(c.VenueID)
	if venueID == "" || venueID != c.VenueID {
		return errors.New("venue id must be non-empty and trimmed")
	}
	if len(venueID) > MaxVenueIDLength {
		return fmt.Errorf("venue id longer than %d bytes", MaxVenueIDLength)
	}
	if c.Date.IsZero() {
		return errors.New("date is required")
	}
	if err := c.DayName.Validate(); err != nil {
		return err
	}
	if err := c.TimeSlot.Validate(); err != nil {
		return err
	}
	return nil
}

// NormalizeDate drops the time of day keeping the calendar date as written.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
