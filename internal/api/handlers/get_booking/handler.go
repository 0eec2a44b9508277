package get_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/bookings"
)

const (
	msgNoActiveBooking = "в этой ячейке нет активного бронирования"
	msgInvalidCell     = "некорректные параметры ячейки"
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

// Handle GET /api/v1/bookings
// С параметром timeSlot возвращает бронирование ячейки, без него - список бронирований на дату
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if query.Get("timeSlot") == "" {
		h.handleList(w, r)
		return
	}

	req, err := parseCellQuery(query)
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid cell params: %v", err)
		handlers.RespondBadRequest(w, handlers.ParseErrorMessage(err))
		return
	}

	booking, err := h.service.GetByCell(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrNoActiveBooking):
			handlers.RespondNotFound(w, msgNoActiveBooking)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCell)

		case errors.Is(err, bookings.ErrStoreUnavailable):
			h.logger.Error("GET /bookings - Store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /bookings - Failed to get booking: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings - Booking retrieved successfully: booking_id=%s", booking.ID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	req, err := parseListQuery(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid list params: %v", err)
		handlers.RespondBadRequest(w, handlers.ParseErrorMessage(err))
		return
	}

	result, err := h.service.GetBookings(r.Context(), req)
	if err != nil {
		if errors.Is(err, bookings.ErrStoreUnavailable) {
			h.logger.Error("GET /bookings - Store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)
			return
		}
		h.logger.Error("GET /bookings - Failed to list bookings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings - Bookings retrieved successfully: count=%d", len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
