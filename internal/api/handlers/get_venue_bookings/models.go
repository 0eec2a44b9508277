package get_venue_bookings

import (
	"strings"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису. Дата опциональна
func ToServiceRequest(venueID string, dateStr string) (*models.GetBookingsRequest, error) {
	venueID = strings.TrimSpace(venueID)
	if venueID == "" {
		return nil, handlers.ErrMissingVenue
	}

	req := &models.GetBookingsRequest{VenueID: &venueID}

	if dateStr != "" {
		date, err := handlers.ParseDate(dateStr)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	return req, nil
}
