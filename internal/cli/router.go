package cli

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/get_booking"
	getUserBookingsHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/get_user_bookings"
	getVenueBookingsHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/get_venue_bookings"
	getVenuesHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/get_venues"
	healthHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/health"
	"github.com/m04kA/SMC-VenueBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-VenueBookingService/internal/integrations/events"
	bookingsService "github.com/m04kA/SMC-VenueBookingService/internal/service/bookings"
	venuesService "github.com/m04kA/SMC-VenueBookingService/internal/service/venues"
	createBookingUC "github.com/m04kA/SMC-VenueBookingService/internal/usecase/create_booking"
	getAvailabilityUC "github.com/m04kA/SMC-VenueBookingService/internal/usecase/get_availability"
	"github.com/m04kA/SMC-VenueBookingService/pkg/logger"
	"github.com/m04kA/SMC-VenueBookingService/pkg/metrics"
)

// components зависимости HTTP слоя. Поля-указатели могут быть nil
type components struct {
	storageDriver string
	store         bookingStore
	catalog       venueCatalog
	resolver      middleware.UserResolver // nil - имя и роль из заголовков шлюза
	notifier      *events.Notifier
	metrics       *metrics.Metrics
	metricsPath   string
	checks        map[string]healthHandler.Pinger
}

// newRouter собирает сервисы, use cases и handlers и настраивает маршруты
func newRouter(c components, log *logger.Logger) *mux.Router {
	// Инициализируем сервисы
	var (
		createPublisher createBookingUC.EventPublisher
		cancelPublisher bookingsService.EventPublisher
		createOutcomes  createBookingUC.OutcomeRecorder
		cancelOutcomes  bookingsService.OutcomeRecorder
	)
	if c.notifier != nil {
		createPublisher = c.notifier
		cancelPublisher = c.notifier
	}
	if c.metrics != nil {
		createOutcomes = c.metrics
		cancelOutcomes = c.metrics
	}

	bookingSvc := bookingsService.NewService(c.store, cancelPublisher, cancelOutcomes, log)
	venueSvc := venuesService.NewService(c.catalog, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(c.store, c.catalog, createPublisher, createOutcomes, log)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(c.store, c.catalog, log)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getVenueBookings := getVenueBookingsHandler.NewHandler(bookingSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getVenues := getVenuesHandler.NewHandler(venueSvc, log)
	health := healthHandler.NewHandler(c.storageDriver, c.checks, log)

	r := mux.NewRouter()

	if c.metrics != nil {
		r.Use(middleware.MetricsMiddleware(c.metrics))
		r.Handle(c.metricsPath, promhttp.Handler()).Methods(http.MethodGet)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/venues", getVenues.Handle).Methods(http.MethodGet)
	api.HandleFunc("/venues/{venueId}", getVenues.HandleByID).Methods(http.MethodGet)
	api.HandleFunc("/venues/{venueId}/bookings", getVenueBookings.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)
	protected.Use(middleware.Identity(c.resolver, log))

	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", cancelBooking.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	return r
}
