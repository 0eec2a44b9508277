package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
)

const pingTimeout = 2 * time.Second

// Pinger зависимость, доступность которой проверяется (*dbmetrics.DB, redis client)
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Logger interface {
	Warn(format string, v ...interface{})
}

// Response HTTP response model
type Response struct {
	Status  string            `json:"status"` // ok | degraded
	Checks  map[string]string `json:"checks,omitempty"`
	Storage string            `json:"storage"`
}

type Handler struct {
	storage string
	checks  map[string]Pinger
	logger  Logger
}

// NewHandler checks - именованные зависимости, может быть пустым
func NewHandler(storage string, checks map[string]Pinger, logger Logger) *Handler {
	return &Handler{
		storage: storage,
		checks:  checks,
		logger:  logger,
	}
}

// Handle GET /health
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resp := Response{Status: "ok", Storage: h.storage}
	status := http.StatusOK

	if len(h.checks) > 0 {
		resp.Checks = make(map[string]string, len(h.checks))
	}

	for name, pinger := range h.checks {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		err := pinger.PingContext(ctx)
		cancel()

		if err != nil {
			h.logger.Warn("GET /health - %s is unavailable: %v", name, err)
			resp.Checks[name] = "unavailable"
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}

	handlers.RespondJSON(w, status, resp)
}
