package admin

import (
	"math"
	"time"

	admindomain "github.com/sngm3741/vega-landing/internal/admin/domain"
)

type feedbackResponse struct {
	ID                 string    `json:"id"`
	Helpfulness        string    `json:"helpfulness"`
	SetupDifficulty    int       `json:"setupDifficulty"`
	DocsQuality        string    `json:"docsQuality,omitempty"`
	SetupIssues        []string  `json:"setupIssues"`
	AdditionalFeedback string    `json:"additionalFeedback,omitempty"`
	Email              string    `json:"email,omitempty"`
	Source             string    `json:"source"`
	UserAgent          string    `json:"userAgent,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}

type feedbackListResponse struct {
	Items []feedbackResponse `json:"items"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

type valueCountResponse struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

type feedbackStatsResponse struct {
	Total             int                  `json:"total"`
	AverageDifficulty *float64             `json:"averageDifficulty"`
	ByHelpfulness     []valueCountResponse `json:"byHelpfulness"`
	ByDocsQuality     []valueCountResponse `json:"byDocsQuality"`
	SetupIssues       []valueCountResponse `json:"setupIssues"`
	LastReceivedAt    *time.Time           `json:"lastReceivedAt"`
}

func (h *Handler) feedbackToResponse(f admindomain.Feedback) feedbackResponse {
	issues := f.SetupIssues
	if issues == nil {
		issues = []string{}
	}
	return feedbackResponse{
		ID:                 f.ID,
		Helpfulness:        f.Helpfulness,
		SetupDifficulty:    f.SetupDifficulty,
		DocsQuality:        f.DocsQuality,
		SetupIssues:        issues,
		AdditionalFeedback: f.AdditionalFeedback,
		Email:              f.Email,
		Source:             f.Source,
		UserAgent:          f.UserAgent,
		CreatedAt:          f.CreatedAt.In(h.location),
	}
}

func (h *Handler) statsToResponse(s admindomain.FeedbackStats) feedbackStatsResponse {
	resp := feedbackStatsResponse{
		Total:         s.Total,
		ByHelpfulness: toValueCountResponses(s.ByHelpfulness),
		ByDocsQuality: toValueCountResponses(s.ByDocsQuality),
		SetupIssues:   toValueCountResponses(s.SetupIssues),
	}
	if s.AverageDifficulty != nil {
		rounded := math.Round(*s.AverageDifficulty*100) / 100
		resp.AverageDifficulty = &rounded
	}
	if s.LastReceivedAt != nil {
		local := s.LastReceivedAt.In(h.location)
		resp.LastReceivedAt = &local
	}
	return resp
}

func toValueCountResponses(in []admindomain.ValueCount) []valueCountResponse {
	out := make([]valueCountResponse, 0, len(in))
	for _, item := range in {
		out = append(out, valueCountResponse{Value: item.Value, Count: item.Count})
	}
	return out
}
