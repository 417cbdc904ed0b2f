package domain

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// DefaultSource tags feedback that arrives without a source.
	DefaultSource = "landing-page"

	MinSetupDifficulty     = 1
	MaxSetupDifficulty     = 10
	DefaultSetupDifficulty = 5

	maxFieldRunes    = 200
	maxFeedbackRunes = 4000
	maxEmailLength   = 254
	maxSetupIssues   = 20
)

// ErrHelpfulnessRequired is returned when the only mandatory answer is missing.
var ErrHelpfulnessRequired = errors.New("Helpfulness is required")

// Feedback is one landing page survey answer.
type Feedback struct {
	ID                 string
	Helpfulness        string
	SetupDifficulty    int
	DocsQuality        string
	SetupIssues        []string
	AdditionalFeedback string
	Email              string
	Source             string
	UserAgent          string
	CreatedAt          time.Time
}

// FeedbackInput is the unvalidated form of Feedback.
type FeedbackInput struct {
	Helpfulness        string
	SetupDifficulty    int
	DocsQuality        string
	SetupIssues        []string
	AdditionalFeedback string
	Email              string
	Source             string
	UserAgent          string
}

// NewFeedback validates and normalises input. Only helpfulness is required;
// an out-of-range difficulty is clamped rather than rejected.
func NewFeedback(input FeedbackInput, now time.Time) (*Feedback, error) {
	helpfulness := strings.TrimSpace(input.Helpfulness)
	if helpfulness == "" {
		return nil, ErrHelpfulnessRequired
	}
	if utf8.RuneCountInString(helpfulness) > maxFieldRunes {
		return nil, fmt.Errorf("helpfulness must be at most %d characters", maxFieldRunes)
	}

	docsQuality := strings.TrimSpace(input.DocsQuality)
	if utf8.RuneCountInString(docsQuality) > maxFieldRunes {
		return nil, fmt.Errorf("docsQuality must be at most %d characters", maxFieldRunes)
	}

	comment := strings.TrimSpace(input.AdditionalFeedback)
	if utf8.RuneCountInString(comment) > maxFeedbackRunes {
		return nil, fmt.Errorf("additionalFeedback must be at most %d characters", maxFeedbackRunes)
	}

	email, err := NormalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}

	issues, err := NormalizeSetupIssues(input.SetupIssues)
	if err != nil {
		return nil, err
	}

	source := strings.TrimSpace(input.Source)
	if source == "" {
		source = DefaultSource
	}

	return &Feedback{
		Helpfulness:        helpfulness,
		SetupDifficulty:    ClampSetupDifficulty(input.SetupDifficulty),
		DocsQuality:        docsQuality,
		SetupIssues:        issues,
		AdditionalFeedback: comment,
		Email:              email,
		Source:             source,
		UserAgent:          strings.TrimSpace(input.UserAgent),
		CreatedAt:          now.UTC(),
	}, nil
}

// ClampSetupDifficulty keeps a difficulty inside the slider range.
func ClampSetupDifficulty(value int) int {
	if value < MinSetupDifficulty {
		return MinSetupDifficulty
	}
	if value > MaxSetupDifficulty {
		return MaxSetupDifficulty
	}
	return value
}

// NormalizeEmail trims an optional address and rejects malformed ones.
func NormalizeEmail(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}
	if len(trimmed) > maxEmailLength {
		return "", fmt.Errorf("email must be at most %d characters", maxEmailLength)
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil {
		return "", errors.New("email is not a valid address")
	}
	return addr.Address, nil
}

// NormalizeSetupIssues drops blanks and duplicates, keeping first-seen order.
func NormalizeSetupIssues(values []string) ([]string, error) {
	result := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, raw := range values {
		issue := strings.TrimSpace(raw)
		if issue == "" {
			continue
		}
		if _, ok := seen[issue]; ok {
			continue
		}
		if utf8.RuneCountInString(issue) > maxFieldRunes {
			return nil, fmt.Errorf("setup issue must be at most %d characters", maxFieldRunes)
		}
		seen[issue] = struct{}{}
		result = append(result, issue)
	}
	if len(result) > maxSetupIssues {
		return nil, fmt.Errorf("at most %d setup issues can be selected", maxSetupIssues)
	}
	return result, nil
}

// SplitSetupIssues turns the comma separated JSON form ("a, b") into a list.
func SplitSetupIssues(joined string) []string {
	if strings.TrimSpace(joined) == "" {
		return nil
	}
	return strings.Split(joined, ",")
}

// JoinedSetupIssues is the single-cell form used by spreadsheets and chat.
func (f Feedback) JoinedSetupIssues() string {
	return strings.Join(f.SetupIssues, ", ")
}
