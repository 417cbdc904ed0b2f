package domain

import "time"

// Feedback is the admin view of a stored feedback record.
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

// FeedbackStats aggregates every stored feedback.
type FeedbackStats struct {
	Total             int
	AverageDifficulty *float64
	ByHelpfulness     []ValueCount
	ByDocsQuality     []ValueCount
	SetupIssues       []ValueCount
	LastReceivedAt    *time.Time
}

// ValueCount is one bucket of a categorical answer.
type ValueCount struct {
	Value string
	Count int
}
