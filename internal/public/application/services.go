package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sngm3741/vega-landing/internal/public/domain"
)

// ErrInvalidFeedback marks input the caller must fix; the HTTP layer maps it to 400.
var ErrInvalidFeedback = errors.New("invalid feedback")

// ValidationError carries the reason a submission was rejected. It matches
// ErrInvalidFeedback under errors.Is and prints only the reason.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return e.Err.Error() }

func (e *ValidationError) Unwrap() error { return e.Err }

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidFeedback }

// FeedbackRepository は Public コンテキストでフィードバックを保存するためのポート。
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *domain.Feedback) error
}

// FeedbackSink receives a copy of every stored feedback (spreadsheets and the like).
type FeedbackSink interface {
	AppendFeedback(ctx context.Context, feedback *domain.Feedback) error
}

// FeedbackCommandService handles the write use-case.
type FeedbackCommandService interface {
	Submit(ctx context.Context, cmd SubmitFeedbackCommand) (*domain.Feedback, error)
}

// SubmitFeedbackCommand captures anonymous input.
type SubmitFeedbackCommand struct {
	Helpfulness        string
	SetupDifficulty    int
	DocsQuality        string
	SetupIssues        []string
	AdditionalFeedback string
	Email              string
	Source             string
	UserAgent          string
}

// FeedbackServiceConfig wires the command service.
type FeedbackServiceConfig struct {
	Repository  FeedbackRepository
	Sinks       []FeedbackSink
	Logger      *log.Logger
	SinkTimeout time.Duration
	Now         func() time.Time
}

func NewFeedbackCommandService(cfg FeedbackServiceConfig) FeedbackCommandService {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	timeout := cfg.SinkTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	sinks := make([]FeedbackSink, 0, len(cfg.Sinks))
	for _, sink := range cfg.Sinks {
		if sink != nil {
			sinks = append(sinks, sink)
		}
	}
	return &feedbackCommandService{
		repo:        cfg.Repository,
		sinks:       sinks,
		logger:      cfg.Logger,
		sinkTimeout: timeout,
		now:         now,
	}
}

type feedbackCommandService struct {
	repo        FeedbackRepository
	sinks       []FeedbackSink
	logger      *log.Logger
	sinkTimeout time.Duration
	now         func() time.Time
}

// Submit stores the feedback and then copies it to every sink. A sink failure
// is logged and does not fail the submission.
func (s *feedbackCommandService) Submit(ctx context.Context, cmd SubmitFeedbackCommand) (*domain.Feedback, error) {
	feedback, err := domain.NewFeedback(domain.FeedbackInput{
		Helpfulness:        cmd.Helpfulness,
		SetupDifficulty:    cmd.SetupDifficulty,
		DocsQuality:        cmd.DocsQuality,
		SetupIssues:        cmd.SetupIssues,
		AdditionalFeedback: cmd.AdditionalFeedback,
		Email:              cmd.Email,
		Source:             cmd.Source,
		UserAgent:          cmd.UserAgent,
	}, s.now())
	if err != nil {
		return nil, &ValidationError{Err: err}
	}

	if err := s.repo.Create(ctx, feedback); err != nil {
		return nil, fmt.Errorf("store feedback: %w", err)
	}

	for _, sink := range s.sinks {
		sinkCtx, cancel := context.WithTimeout(ctx, s.sinkTimeout)
		err := sink.AppendFeedback(sinkCtx, feedback)
		cancel()
		if err != nil && s.logger != nil {
			s.logger.Printf("フィードバックの転記に失敗 (処理は継続): %v", err)
		}
	}

	return feedback, nil
}
