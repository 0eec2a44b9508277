package models

import "github.com/m04kA/SMC-VenueBookingService/internal/domain"

// SlotResponse слоты площадки в один день
type SlotResponse struct {
	Day   string   `json:"day"`
	Times []string `json:"times"`
}

// VenueResponse ответ с данными площадки
type VenueResponse struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Category string         `json:"category,omitempty"`
	Capacity int            `json:"capacity"`
	Slots    []SlotResponse `json:"slots"`
}

// VenueListResponse ответ со списком площадок
type VenueListResponse struct {
	Venues []VenueResponse `json:"venues"`
}

// FromDomainVenue конвертирует domain модель в DTO, группируя слоты по дням недели
func FromDomainVenue(v *domain.Venue) *VenueResponse {
	if v == nil {
		return nil
	}

	resp := &VenueResponse{
		ID:       v.ID,
		Name:     v.Name,
		Category: v.Category,
		Capacity: v.Capacity,
		Slots:    make([]SlotResponse, 0),
	}

	for _, day := range domain.Days {
		var times []string
		for _, s := range v.Slots {
			if s.DayName == day {
				times = append(times, s.TimeSlot.String())
			}
		}
		if len(times) > 0 {
			resp.Slots = append(resp.Slots, SlotResponse{Day: day.String(), Times: times})
		}
	}

	return resp
}

// FromDomainVenueList конвертирует список domain моделей в DTO
func FromDomainVenueList(venues []domain.Venue) *VenueListResponse {
	resp := &VenueListResponse{
		Venues: make([]VenueResponse, 0, len(venues)),
	}
	for i := range venues {
		resp.Venues = append(resp.Venues, *FromDomainVenue(&venues[i]))
	}
	return resp
}
