package get_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	getAvailability "github.com/m04kA/SMC-VenueBookingService/internal/usecase/get_availability"
)

const msgInvalidParams = "некорректные параметры запроса"

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability?date=YYYY-MM-DD[&day=monday][&venue=Lab 206]
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := ToUseCaseRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /availability - Invalid query params: %v", err)
		handlers.RespondBadRequest(w, handlers.ParseErrorMessage(err))
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, getAvailability.ErrStoreUnavailable):
			h.logger.Error("GET /availability - Store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /availability - Failed to get availability: date=%s, error=%v",
				r.URL.Query().Get("date"), err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Availability retrieved successfully: date=%s, day=%s, free=%d, booked=%d",
		r.URL.Query().Get("date"), result.DayName, result.Free, result.Booked)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
