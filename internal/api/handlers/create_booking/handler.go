package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-VenueBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidPurpose     = "цель бронирования должна содержать от 5 до 100 символов"
	msgInvalidInput       = "некорректные параметры бронирования"
	msgUnknownVenueCell   = "площадка не предоставляет этот слот в выбранный день"
	msgAlreadyBooked      = "слот уже забронирован"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requester, ok := middleware.GetRequester(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing requester")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(requester)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: user_id=%d, error=%v", requester.UserID, err)
		handlers.RespondBadRequest(w, handlers.ParseErrorMessage(err))
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidPurpose):
			h.logger.Warn("POST /bookings - Invalid purpose: user_id=%d, error=%v", requester.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidPurpose)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", requester.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrUnknownVenueCell):
			h.logger.Warn("POST /bookings - Unknown venue cell: venue=%q, day=%s, slot=%s",
				req.Venue, useCaseReq.DayName, useCaseReq.TimeSlot)
			handlers.RespondNotFound(w, msgUnknownVenueCell)

		case errors.Is(err, createBooking.ErrAlreadyBooked):
			h.logger.Warn("POST /bookings - Already booked: venue=%q, date=%s, slot=%s, user_id=%d",
				req.Venue, req.Date, useCaseReq.TimeSlot, requester.UserID)
			handlers.RespondConflict(w, msgAlreadyBooked)

		case errors.Is(err, createBooking.ErrStoreUnavailable):
			h.logger.Error("POST /bookings - Store unavailable: user_id=%d, error=%v", requester.UserID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, error=%v", requester.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, venue=%q, date=%s, slot=%s, user_id=%d",
		result.ID, result.VenueID, req.Date, result.TimeSlot, result.UserID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
