package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/bookings"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidCell        = "некорректные параметры ячейки"
	msgNoActiveBooking    = "в этой ячейке нет активного бронирования"
	msgNotOwner           = "отменить бронирование может только его автор или администратор"
	msgCancelled          = "бронирование отменено"
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

// Handle DELETE /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requester, ok := middleware.GetRequester(r.Context())
	if !ok {
		h.logger.Warn("DELETE /bookings - Missing requester")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CancelBookingRequest
	if r.ContentLength == 0 && r.URL.RawQuery != "" {
		req = fromQuery(r.URL.Query())
	} else if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("DELETE /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(requester)
	if err != nil {
		h.logger.Warn("DELETE /bookings - Failed to parse request: user_id=%d, error=%v", requester.UserID, err)
		handlers.RespondBadRequest(w, handlers.ParseErrorMessage(err))
		return
	}

	if err := h.service.Cancel(r.Context(), serviceReq); err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("DELETE /bookings - Invalid input: user_id=%d, error=%v", requester.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidCell)

		case errors.Is(err, bookings.ErrNoActiveBooking):
			h.logger.Warn("DELETE /bookings - No active booking: venue=%q, date=%s, slot=%s",
				req.Venue, req.Date, serviceReq.TimeSlot)
			handlers.RespondNotFound(w, msgNoActiveBooking)

		case errors.Is(err, bookings.ErrNotBookingOwner):
			h.logger.Warn("DELETE /bookings - Not booking owner: venue=%q, date=%s, slot=%s, user_id=%d",
				req.Venue, req.Date, serviceReq.TimeSlot, requester.UserID)
			handlers.RespondForbidden(w, msgNotOwner)

		case errors.Is(err, bookings.ErrStoreUnavailable):
			h.logger.Error("DELETE /bookings - Store unavailable: user_id=%d, error=%v", requester.UserID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("DELETE /bookings - Failed to cancel booking: user_id=%d, error=%v", requester.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /bookings - Booking cancelled successfully: venue=%q, date=%s, slot=%s, user_id=%d",
		req.Venue, req.Date, serviceReq.TimeSlot, requester.UserID)
	handlers.RespondJSON(w, http.StatusOK, CancelBookingResponse{Message: msgCancelled})
}
