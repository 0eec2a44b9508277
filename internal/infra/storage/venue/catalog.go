package venue

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// Catalog каталог площадок в памяти, загружается один раз при старте (catalog.source = "file").
// После создания не изменяется, поэтому безопасен для конкурентного чтения.
type Catalog struct {
	venues []domain.Venue
	byID   map[string]int
}

// NewCatalog создает каталог из списка площадок. Порядок площадок и слотов сохраняется
func NewCatalog(venues []domain.Venue) (*Catalog, error) {
	c := &Catalog{
		venues: make([]domain.Venue, 0, len(venues)),
		byID:   make(map[string]int, len(venues)),
	}

	for _, v := range venues {
		if _, dup := c.byID[v.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate venue %q", ErrInvalidCatalog, v.ID)
		}
		for _, s := range v.Slots {
			if err := s.DayName.Validate(); err != nil {
				return nil, fmt.Errorf("%w: venue %q: %v", ErrInvalidCatalog, v.ID, err)
			}
			if err := s.TimeSlot.Validate(); err != nil {
				return nil, fmt.Errorf("%w: venue %q: %v", ErrInvalidCatalog, v.ID, err)
			}
		}
		c.byID[v.ID] = len(c.venues)
		c.venues = append(c.venues, cloneVenue(v))
	}

	return c, nil
}

// CellExists проверяет, что площадка определяет слот в этот день
func (c *Catalog) CellExists(_ context.Context, venueID string, day domain.DayName, slot types.TimeSlot) (bool, error) {
	idx, ok := c.byID[venueID]
	if !ok {
		return false, nil
	}
	return c.venues[idx].HasSlot(day, slot), nil
}

// ListCellsForDay возвращает все ячейки каталога для дня в порядке каталога
func (c *Catalog) ListCellsForDay(_ context.Context, day domain.DayName) ([]domain.CatalogCell, error) {
	cells := make([]domain.CatalogCell, 0)
	for _, v := range c.venues {
		for _, s := range v.Slots {
			if s.DayName != day {
				continue
			}
			cells = append(cells, domain.CatalogCell{
				VenueID:   v.ID,
				VenueName: v.Name,
				Category:  v.Category,
				Capacity:  v.Capacity,
				DayName:   s.DayName,
				TimeSlot:  s.TimeSlot,
			})
		}
	}
	return cells, nil
}

// ListVenues возвращает все площадки
func (c *Catalog) ListVenues(_ context.Context) ([]domain.Venue, error) {
	venues := make([]domain.Venue, 0, len(c.venues))
	for _, v := range c.venues {
		venues = append(venues, cloneVenue(v))
	}
	return venues, nil
}

// GetVenue возвращает площадку по ID
func (c *Catalog) GetVenue(_ context.Context, venueID string) (*domain.Venue, error) {
	idx, ok := c.byID[venueID]
	if !ok {
		return nil, ErrVenueNotFound
	}
	v := cloneVenue(c.venues[idx])
	return &v, nil
}

func cloneVenue(v domain.Venue) domain.Venue {
	v.Slots = append([]domain.VenueSlot(nil), v.Slots...)
	return v
}
