package handlers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

var (
	// ErrInvalidDate дата не в формате YYYY-MM-DD
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

	// ErrInvalidDay день не из monday..sunday
	ErrInvalidDay = errors.New("invalid day name")

	// ErrInvalidTimeSlot слот не в формате HH:MM-HH:MM
	ErrInvalidTimeSlot = errors.New("invalid time slot, expected HH:MM-HH:MM")

	// ErrMissingVenue площадка не указана
	ErrMissingVenue = errors.New("venue is required")
)

// CellParams идентификаторы ячейки в виде строк из тела или query запроса
type CellParams struct {
	Venue    string
	Date     string
	Day      string
	TimeSlot string
}

// Cell разобранная ячейка
type Cell struct {
	VenueID  string
	Date     time.Time
	DayName  domain.DayName
	TimeSlot types.TimeSlot
}

// ParseDate разбирает дату YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	date, err := time.Parse(domain.DateFormat, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return date, nil
}

// ParseDay разбирает день расписания. Пустая строка - день недели даты
func ParseDay(s string, date time.Time) (domain.DayName, error) {
	if strings.TrimSpace(s) == "" {
		return domain.DayNameOf(date), nil
	}
	day, err := domain.ParseDayName(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDay, s)
	}
	return day, nil
}

// Parse разбирает и нормализует идентификаторы ячейки
func (p CellParams) Parse() (Cell, error) {
	venueID := strings.TrimSpace(p.Venue)
	if venueID == "" {
		return Cell{}, ErrMissingVenue
	}

	date, err := ParseDate(p.Date)
	if err != nil {
		return Cell{}, err
	}

	day, err := ParseDay(p.Day, date)
	if err != nil {
		return Cell{}, err
	}

	slot, err := types.ParseTimeSlot(p.TimeSlot)
	if err != nil {
		return Cell{}, fmt.Errorf("%w: %q", ErrInvalidTimeSlot, p.TimeSlot)
	}

	return Cell{
		VenueID:  venueID,
		Date:     date,
		DayName:  day,
		TimeSlot: slot,
	}, nil
}

// ParseErrorMessage сообщение пользователю для ошибки разбора параметров ячейки
func ParseErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrMissingVenue):
		return "не указана площадка"
	case errors.Is(err, ErrInvalidDate):
		return "некорректный формат даты, ожидается YYYY-MM-DD"
	case errors.Is(err, ErrInvalidDay):
		return "некорректный день недели, ожидается monday..sunday"
	case errors.Is(err, ErrInvalidTimeSlot):
		return "некорректный временной слот, ожидается HH:MM-HH:MM"
	default:
		return "некорректные параметры запроса"
	}
}
