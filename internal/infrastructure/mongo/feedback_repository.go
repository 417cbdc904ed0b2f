package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/sngm3741/vega-landing/internal/public/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FeedbackRepository はパブリック向けにフィードバックを保存するリポジトリ。
type FeedbackRepository struct {
	feedback *mongo.Collection
}

// NewFeedbackRepository はフィードバックコレクションを束縛したリポジトリを構築する。
func NewFeedbackRepository(db *mongo.Database, collection string) *FeedbackRepository {
	return &FeedbackRepository{feedback: db.Collection(collection)}
}

// Create はドメインのフィードバックを保存し、採番した ID を書き戻す。
func (r *FeedbackRepository) Create(ctx context.Context, feedback *domain.Feedback) error {
	if feedback == nil {
		return errors.New("feedback payload is nil")
	}
	doc := newFeedbackDocument(feedback)
	if _, err := r.feedback.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	feedback.ID = doc.ID.Hex()
	return nil
}

// EnsureIndexes は一覧表示と集計で使うインデックスを用意する。
func (r *FeedbackRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.feedback.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}, Options: options.Index().SetName("createdAt_desc")},
		{Keys: bson.D{{Key: "helpfulness", Value: 1}, {Key: "createdAt", Value: -1}}, Options: options.Index().SetName("helpfulness_createdAt")},
	})
	if err != nil {
		return fmt.Errorf("create feedback indexes: %w", err)
	}
	return nil
}
