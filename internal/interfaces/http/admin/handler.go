package admin

import (
	"log"
	"time"

	"github.com/go-chi/chi/v5"
	adminapp "github.com/sngm3741/vega-landing/internal/admin/application"
)

const requestTimeout = 5 * time.Second

// Handler wires admin HTTP endpoints to application services.
type Handler struct {
	logger          *log.Logger
	feedbackService adminapp.FeedbackService
	location        *time.Location
}

// Config provides dependencies for Handler.
type Config struct {
	Logger          *log.Logger
	FeedbackService adminapp.FeedbackService
	// Location is applied to timestamps in responses; UTC when nil.
	Location *time.Location
}

// NewHandler constructs an admin HTTP handler set.
func NewHandler(cfg Config) *Handler {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{
		logger:          logger,
		feedbackService: cfg.FeedbackService,
		location:        loc,
	}
}

// Register mounts admin routes onto router. Authentication is applied by the caller.
func (h *Handler) Register(r chi.Router) {
	r.Get("/me", h.meHandler())
	r.Get("/feedback", h.feedbackListHandler())
	r.Get("/feedback/stats", h.feedbackStatsHandler())
	r.Get("/feedback/{id}", h.feedbackDetailHandler())
}
