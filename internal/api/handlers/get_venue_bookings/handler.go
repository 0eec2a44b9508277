package get_venue_bookings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/bookings"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/bookings
// Query params: date (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueID := mux.Vars(r)["venueId"]

	serviceReq, err := ToServiceRequest(venueID, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /venues/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, handlers.ParseErrorMessage(err))
		return
	}

	result, err := h.service.GetBookings(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, bookings.ErrStoreUnavailable) {
			h.logger.Error("GET /venues/{id}/bookings - Store unavailable: venue=%q, error=%v", venueID, err)
			handlers.RespondServiceUnavailable(w)
			return
		}
		h.logger.Error("GET /venues/{id}/bookings - Failed to get bookings: venue=%q, error=%v", venueID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /venues/{id}/bookings - Bookings retrieved successfully: venue=%q, count=%d",
		venueID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
