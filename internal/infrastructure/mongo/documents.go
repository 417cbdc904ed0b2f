package mongo

import (
	"time"

	admindomain "github.com/sngm3741/vega-landing/internal/admin/domain"
	"github.com/sngm3741/vega-landing/internal/public/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FeedbackDocument は MongoDB 上でのフィードバックスキーマ。
type FeedbackDocument struct {
	ID                 primitive.ObjectID `bson:"_id"`
	Helpfulness        string             `bson:"helpfulness"`
	SetupDifficulty    int                `bson:"setupDifficulty"`
	DocsQuality        string             `bson:"docsQuality,omitempty"`
	SetupIssues        []string           `bson:"setupIssues,omitempty"`
	AdditionalFeedback string             `bson:"additionalFeedback,omitempty"`
	Email              string             `bson:"email,omitempty"`
	Source             string             `bson:"source"`
	UserAgent          string             `bson:"userAgent,omitempty"`
	CreatedAt          time.Time          `bson:"createdAt"`
}

// FailedNotificationDocument は再送しきれなかった管理者通知を保持する。
type FailedNotificationDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Target      string             `bson:"target"`
	Payload     map[string]any     `bson:"payload"`
	Error       string             `bson:"error"`
	Attempts    int                `bson:"attempts"`
	Status      string             `bson:"status"`
	CreatedAt   time.Time          `bson:"createdAt"`
	LastTriedAt time.Time          `bson:"lastTriedAt"`
}

func newFeedbackDocument(f *domain.Feedback) FeedbackDocument {
	return FeedbackDocument{
		ID:                 primitive.NewObjectID(),
		Helpfulness:        f.Helpfulness,
		SetupDifficulty:    f.SetupDifficulty,
		DocsQuality:        f.DocsQuality,
		SetupIssues:        append([]string(nil), f.SetupIssues...),
		AdditionalFeedback: f.AdditionalFeedback,
		Email:              f.Email,
		Source:             f.Source,
		UserAgent:          f.UserAgent,
		CreatedAt:          f.CreatedAt.UTC(),
	}
}

func mapAdminFeedbackDocument(doc FeedbackDocument) admindomain.Feedback {
	issues := doc.SetupIssues
	if issues == nil {
		issues = []string{}
	}
	return admindomain.Feedback{
		ID:                 doc.ID.Hex(),
		Helpfulness:        doc.Helpfulness,
		SetupDifficulty:    doc.SetupDifficulty,
		DocsQuality:        doc.DocsQuality,
		SetupIssues:        issues,
		AdditionalFeedback: doc.AdditionalFeedback,
		Email:              doc.Email,
		Source:             doc.Source,
		UserAgent:          doc.UserAgent,
		CreatedAt:          doc.CreatedAt,
	}
}
