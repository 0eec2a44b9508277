package venue

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// seedFile структура TOML-файла каталога
//
//	[[venues]]
//	id = "Lab 206"
//	name = "Lab 206"
//	category = "lab"
//	capacity = 65
//	  [[venues.slots]]
//	  day = "monday"
//	  times = ["09:00-10:00", "10:00-11:00"]
type seedFile struct {
	Venues []seedVenue `toml:"venues"`
}

type seedVenue struct {
	ID       string     `toml:"id"`
	Name     string     `toml:"name"`
	Category string     `toml:"category"`
	Capacity int        `toml:"capacity"`
	Slots    []seedSlot `toml:"slots"`
}

type seedSlot struct {
	Day   string   `toml:"day"`
	Times []string `toml:"times"`
}

// LoadFile читает каталог площадок из TOML-файла
func LoadFile(path string) ([]domain.Venue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file %s: %w", path, err)
	}
	return Parse(string(data))
}

// Parse разбирает и валидирует каталог. Слоты приводятся к каноническому виду "HH:MM-HH:MM",
// повторы внутри одной площадки отбрасываются, порядок из файла сохраняется.
func Parse(data string) ([]domain.Venue, error) {
	var file seedFile
	if _, err := toml.Decode(data, &file); err != nil {
		return nil, fmt.Errorf("%w: decode toml: %v", ErrInvalidCatalog, err)
	}

	venues := make([]domain.Venue, 0, len(file.Venues))
	seen := make(map[string]struct{}, len(file.Venues))

	for i, sv := range file.Venues {
		id := strings.TrimSpace(sv.ID)
		if id == "" {
			return nil, fmt.Errorf("%w: venues[%d]: id is required", ErrInvalidCatalog, i)
		}
		if len(id) > domain.MaxVenueIDLength {
			return nil, fmt.Errorf("%w: venue %q: id longer than %d bytes", ErrInvalidCatalog, id, domain.MaxVenueIDLength)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: duplicate venue %q", ErrInvalidCatalog, id)
		}
		seen[id] = struct{}{}

		if sv.Capacity < 0 {
			return nil, fmt.Errorf("%w: venue %q: negative capacity", ErrInvalidCatalog, id)
		}

		v := domain.Venue{
			ID:       id,
			Name:     strings.TrimSpace(sv.Name),
			Category: strings.TrimSpace(sv.Category),
			Capacity: sv.Capacity,
		}
		if v.Name == "" {
			v.Name = id
		}

		for _, slot := range sv.Slots {
			day, err := domain.ParseDayName(slot.Day)
			if err != nil {
				return nil, fmt.Errorf("%w: venue %q: %v", ErrInvalidCatalog, id, err)
			}
			for _, raw := range slot.Times {
				ts, err := types.ParseTimeSlot(raw)
				if err != nil {
					return nil, fmt.Errorf("%w: venue %q %s: %v", ErrInvalidCatalog, id, day, err)
				}
				if v.HasSlot(day, ts) {
					continue
				}
				v.Slots = append(v.Slots, domain.VenueSlot{DayName: day, TimeSlot: ts})
			}
		}

		venues = append(venues, v)
	}

	return venues, nil
}
