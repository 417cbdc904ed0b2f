package public

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	publicapp "github.com/sngm3741/vega-landing/internal/public/application"
)

// FailedNotificationStore records admin notifications that exhausted their retries.
type FailedNotificationStore interface {
	SaveAdminFailure(ctx context.Context, payload map[string]any, cause error, attempts int) error
}

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger               *log.Logger
	feedbackCommands     publicapp.FeedbackCommandService
	httpClient           *http.Client
	messengerEndpoint    string
	discordDestination   string
	slackDestination     string
	adminFeedbackBaseURL string
	failedNotifications  FailedNotificationStore
	retryDelay           time.Duration
	dispatch             func(func())
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger               *log.Logger
	FeedbackCommands     publicapp.FeedbackCommandService
	HTTPClient           *http.Client
	MessengerEndpoint    string
	DiscordDestination   string
	SlackDestination     string
	AdminFeedbackBaseURL string
	FailedNotifications  FailedNotificationStore
	// RetryDelay is the pause between Discord attempts; 200ms when zero.
	RetryDelay time.Duration
	// Dispatch runs admin notifications after the response is written.
	// Defaults to a new goroutine.
	Dispatch func(func())
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 3 * time.Second}
	}
	delay := cfg.RetryDelay
	if delay <= 0 {
		delay = 200 * time.Millisecond
	}
	dispatch := cfg.Dispatch
	if dispatch == nil {
		dispatch = func(fn func()) { go fn() }
	}
	return &Handler{
		logger:               cfg.Logger,
		feedbackCommands:     cfg.FeedbackCommands,
		httpClient:           client,
		messengerEndpoint:    cfg.MessengerEndpoint,
		discordDestination:   cfg.DiscordDestination,
		slackDestination:     cfg.SlackDestination,
		adminFeedbackBaseURL: cfg.AdminFeedbackBaseURL,
		failedNotifications:  cfg.FailedNotifications,
		retryDelay:           delay,
		dispatch:             dispatch,
	}
}

// Register mounts the collection endpoint for every method. The action comes
// from ?action= or, failing that, from the path; each action checks the
// method itself.
func (h *Handler) Register(r chi.Router) {
	actions := h.actionHandler()
	r.HandleFunc("/", actions)
	r.HandleFunc("/{action}", actions)
}

func (h *Handler) logf(format string, args ...any) {
	if h.logger != nil {
		h.logger.Printf(format, args...)
	}
}
