package application

import (
	"context"
	"errors"
	"strings"

	admindomain "github.com/sngm3741/vega-landing/internal/admin/domain"
)

// ErrFeedbackNotFound is returned for unknown or malformed ids.
var ErrFeedbackNotFound = errors.New("feedback not found")

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
	// MaxPage keeps (Page-1)*Limit far from int overflow.
	MaxPage          = 100000
)

// FeedbackRepository exposes admin reads on feedback.
type FeedbackRepository interface {
	Find(ctx context.Context, filter FeedbackFilter, paging Paging) ([]admindomain.Feedback, int64, error)
	FindByID(ctx context.Context, id string) (*admindomain.Feedback, error)
	Stats(ctx context.Context) (*admindomain.FeedbackStats, error)
}

// FeedbackFilter expresses admin search criteria.
type FeedbackFilter struct {
	Helpfulness string
	Source      string
}

// Paging controls pagination.
type Paging struct {
	Page  int
	Limit int
}

// Normalize clamps paging to sane bounds.
func (p Paging) Normalize() Paging {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

// FeedbackPage is one page of results plus the total match count.
type FeedbackPage struct {
	Items []admindomain.Feedback
	Total int64
	Page  int
	Limit int
}

// FeedbackService describes admin feedback use-cases.
type FeedbackService interface {
	List(ctx context.Context, filter FeedbackFilter, paging Paging) (*FeedbackPage, error)
	Detail(ctx context.Context, id string) (*admindomain.Feedback, error)
	Stats(ctx context.Context) (*admindomain.FeedbackStats, error)
}

type feedbackService struct {
	repo FeedbackRepository
}

func NewFeedbackService(repo FeedbackRepository) FeedbackService {
	return &feedbackService{repo: repo}
}

func (s *feedbackService) List(ctx context.Context, filter FeedbackFilter, paging Paging) (*FeedbackPage, error) {
	paging = paging.Normalize()
	filter.Helpfulness = strings.TrimSpace(filter.Helpfulness)
	filter.Source = strings.TrimSpace(filter.Source)

	items, total, err := s.repo.Find(ctx, filter, paging)
	if err != nil {
		return nil, err
	}
	return &FeedbackPage{Items: items, Total: total, Page: paging.Page, Limit: paging.Limit}, nil
}

func (s *feedbackService) Detail(ctx context.Context, id string) (*admindomain.Feedback, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrFeedbackNotFound
	}
	return s.repo.FindByID(ctx, id)
}

func (s *feedbackService) Stats(ctx context.Context) (*admindomain.FeedbackStats, error) {
	return s.repo.Stats(ctx)
}
