package application

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"
	"time"

	"github.com/sngm3741/vega-landing/internal/public/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	saved []*domain.Feedback
	err   error
}

func (r *memoryRepo) Create(_ context.Context, f *domain.Feedback) error {
	if r.err != nil {
		return r.err
	}
	f.ID = "65f000000000000000000001"
	r.saved = append(r.saved, f)
	return nil
}

type recordingSink struct {
	got []*domain.Feedback
	err error
}

func (s *recordingSink) AppendFeedback(ctx context.Context, f *domain.Feedback) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("sink called without deadline")
	}
	s.got = append(s.got, f)
	return s.err
}

func fixedNow() time.Time {
	return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
}

func TestSubmitStoresAndCopiesToSinks(t *testing.T) {
	repo := &memoryRepo{}
	sink := &recordingSink{}
	svc := NewFeedbackCommandService(FeedbackServiceConfig{
		Repository: repo,
		Sinks:      []FeedbackSink{sink, nil},
		Now:        fixedNow,
	})

	got, err := svc.Submit(context.Background(), SubmitFeedbackCommand{
		Helpfulness:     "very-helpful",
		SetupDifficulty: 7,
		SetupIssues:     []string{"docker"},
	})
	require.NoError(t, err)
	require.Len(t, repo.saved, 1)
	require.Len(t, sink.got, 1)
	assert.Equal(t, "65f000000000000000000001", got.ID)
	assert.Equal(t, got, sink.got[0])
	assert.Equal(t, fixedNow(), got.CreatedAt)
}

func TestSubmitSinkFailureIsLoggedOnly(t *testing.T) {
	var logs bytes.Buffer
	sink := &recordingSink{err: errors.New("quota exceeded")}
	svc := NewFeedbackCommandService(FeedbackServiceConfig{
		Repository: &memoryRepo{},
		Sinks:      []FeedbackSink{sink},
		Logger:     log.New(&logs, "", 0),
	})

	_, err := svc.Submit(context.Background(), SubmitFeedbackCommand{Helpfulness: "ok", SetupDifficulty: 5})
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "quota exceeded")
}

func TestSubmitRejectsInvalidInput(t *testing.T) {
	repo := &memoryRepo{}
	svc := NewFeedbackCommandService(FeedbackServiceConfig{Repository: repo})

	_, err := svc.Submit(context.Background(), SubmitFeedbackCommand{SetupDifficulty: 5})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFeedback)
	assert.ErrorIs(t, err, domain.ErrHelpfulnessRequired)
	assert.EqualError(t, err, "Helpfulness is required")
	assert.Empty(t, repo.saved)
}

func TestSubmitStorageFailure(t *testing.T) {
	sink := &recordingSink{}
	svc := NewFeedbackCommandService(FeedbackServiceConfig{
		Repository: &memoryRepo{err: errors.New("connection refused")},
		Sinks:      []FeedbackSink{sink},
	})

	_, err := svc.Submit(context.Background(), SubmitFeedbackCommand{Helpfulness: "ok"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidFeedback)
	assert.Empty(t, sink.got)
}
