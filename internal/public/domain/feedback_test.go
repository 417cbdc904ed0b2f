package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFeedback(t *testing.T) {
	now := time.Date(2026, 10, 1, 9, 30, 0, 0, time.FixedZone("JST", 9*60*60))

	tests := []struct {
		name    string
		input   FeedbackInput
		wantErr string
		check   func(t *testing.T, f *Feedback)
	}{
		{
			name:  "defaults source and keeps difficulty",
			input: FeedbackInput{Helpfulness: " very-helpful ", SetupDifficulty: 3},
			check: func(t *testing.T, f *Feedback) {
				assert.Equal(t, "very-helpful", f.Helpfulness)
				assert.Equal(t, 3, f.SetupDifficulty)
				assert.Equal(t, DefaultSource, f.Source)
				assert.Equal(t, now.UTC(), f.CreatedAt)
			},
		},
		{
			name:  "clamps difficulty",
			input: FeedbackInput{Helpfulness: "ok", SetupDifficulty: 42},
			check: func(t *testing.T, f *Feedback) {
				assert.Equal(t, MaxSetupDifficulty, f.SetupDifficulty)
			},
		},
		{
			name:  "zero difficulty becomes minimum",
			input: FeedbackInput{Helpfulness: "ok"},
			check: func(t *testing.T, f *Feedback) {
				assert.Equal(t, MinSetupDifficulty, f.SetupDifficulty)
			},
		},
		{
			name:  "keeps explicit source",
			input: FeedbackInput{Helpfulness: "ok", Source: "docs"},
			check: func(t *testing.T, f *Feedback) {
				assert.Equal(t, "docs", f.Source)
			},
		},
		{
			name:  "normalises email",
			input: FeedbackInput{Helpfulness: "ok", Email: " Ada <ada@example.com> "},
			check: func(t *testing.T, f *Feedback) {
				assert.Equal(t, "ada@example.com", f.Email)
			},
		},
		{
			name:  "dedupes setup issues",
			input: FeedbackInput{Helpfulness: "ok", SetupIssues: []string{"docker", " ", "docker", "api-keys "}},
			check: func(t *testing.T, f *Feedback) {
				assert.Equal(t, []string{"docker", "api-keys"}, f.SetupIssues)
				assert.Equal(t, "docker, api-keys", f.JoinedSetupIssues())
			},
		},
		{
			name:    "requires helpfulness",
			input:   FeedbackInput{Helpfulness: "   ", SetupDifficulty: 4},
			wantErr: "Helpfulness is required",
		},
		{
			name:    "rejects bad email",
			input:   FeedbackInput{Helpfulness: "ok", Email: "not-an-email"},
			wantErr: "email is not a valid address",
		},
		{
			name:    "rejects long feedback",
			input:   FeedbackInput{Helpfulness: "ok", AdditionalFeedback: strings.Repeat("あ", 4001)},
			wantErr: "additionalFeedback must be at most 4000 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFeedback(tt.input, now)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			tt.check(t, f)
		})
	}
}

func TestSplitSetupIssues(t *testing.T) {
	assert.Nil(t, SplitSetupIssues(" "))
	issues, err := NormalizeSetupIssues(SplitSetupIssues("docker, ports,docker"))
	require.NoError(t, err)
	assert.Equal(t, []string{"docker", "ports"}, issues)
}
