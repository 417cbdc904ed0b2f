package feedback

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Endpoint is the collection API. Override at link time with
// -ldflags "-X github.com/sngm3741/vega-landing/internal/web/feedback.Endpoint=...".
var Endpoint = "https://feedback.vega-ai.app/"

// Action is the query action the collection API routes on.
const Action = "feedback"

// DefaultHideDelay is how long the success message stays before the form
// collapses.
const DefaultHideDelay = 3000 * time.Millisecond

// Config holds Submitter dependencies. Zero fields take defaults.
type Config struct {
	Endpoint   string
	HTTPClient *http.Client
	Logger     *log.Logger
	HideDelay  time.Duration
	// After schedules fn after d. Defaults to time.AfterFunc.
	After func(d time.Duration, fn func())
}

// Submitter relays the feedback form to the collection API. It always shows
// the success message: delivery failures are only logged, and nothing is
// retried.
type Submitter struct {
	form      Form
	view      View
	panel     *Panel
	client    *http.Client
	logger    *log.Logger
	endpoint  string
	hideDelay time.Duration
	after     func(time.Duration, func())
}

// NewSubmitter wires a submitter to the form, its view and the panel that
// owns the slider and container.
func NewSubmitter(form Form, view View, panel *Panel, cfg Config) *Submitter {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		endpoint = Endpoint
	}
	client := cfg.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	hideDelay := cfg.HideDelay
	if hideDelay <= 0 {
		hideDelay = DefaultHideDelay
	}
	after := cfg.After
	if after == nil {
		after = func(d time.Duration, fn func()) { time.AfterFunc(d, fn) }
	}
	return &Submitter{
		form:      form,
		view:      view,
		panel:     panel,
		client:    client,
		logger:    logger,
		endpoint:  endpoint,
		hideDelay: hideDelay,
		after:     after,
	}
}

// Submit runs one submission: sending status, one POST, success status,
// form reset, then the delayed collapse. The success path runs whether the
// POST succeeded, returned an error status or never reached the server.
func (s *Submitter) Submit(ctx context.Context) {
	snapshot := s.form.Snapshot()
	s.view.ShowStatus(StatusSending)

	if err := s.send(ctx, snapshot); err != nil {
		s.logger.Printf("WARN: feedback submission failed: %v", err)
	}

	s.view.ShowStatus(StatusSuccess)
	s.form.Reset()
	s.panel.ResetDifficulty()

	s.after(s.hideDelay, func() {
		s.panel.Collapse()
		s.view.ClearStatus()
	})
}

func (s *Submitter) send(ctx context.Context, snapshot Snapshot) error {
	target, err := actionURL(s.endpoint)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(snapshot.Encode()))
	if err != nil {
		return fmt.Errorf("building feedback request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting feedback: %w", err)
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 1<<16))

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("feedback endpoint responded with status %d", res.StatusCode)
	}
	return nil
}

func actionURL(endpoint string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("parsing feedback endpoint %q: %w", endpoint, err)
	}
	q := u.Query()
	q.Set("action", Action)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
