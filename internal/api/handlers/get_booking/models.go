package get_booking

import (
	"net/url"
	"strings"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/bookings/models"
)

// parseCellQuery запрос бронирования конкретной ячейки
func parseCellQuery(q url.Values) (*models.GetBookingRequest, error) {
	cell, err := handlers.CellParams{
		Venue:    q.Get("venue"),
		Date:     q.Get("date"),
		Day:      q.Get("day"),
		TimeSlot: q.Get("timeSlot"),
	}.Parse()
	if err != nil {
		return nil, err
	}

	return &models.GetBookingRequest{
		CellRequest: models.CellRequest{
			VenueID:  cell.VenueID,
			Date:     cell.Date,
			DayName:  cell.DayName,
			TimeSlot: cell.TimeSlot,
		},
	}, nil
}

// parseListQuery запрос списка бронирований на дату, опционально по площадке
func parseListQuery(q url.Values) (*models.GetBookingsRequest, error) {
	date, err := handlers.ParseDate(q.Get("date"))
	if err != nil {
		return nil, err
	}

	req := &models.GetBookingsRequest{Date: &date}
	if venue := strings.TrimSpace(q.Get("venue")); venue != "" {
		req.VenueID = &venue
	}
	return req, nil
}
