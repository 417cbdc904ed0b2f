package mongo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	adminapp "github.com/sngm3741/vega-landing/internal/admin/application"
	admindomain "github.com/sngm3741/vega-landing/internal/admin/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AdminFeedbackRepository は管理画面向けにフィードバックを参照・集計するリポジトリ。
type AdminFeedbackRepository struct {
	feedback *mongo.Collection
}

// NewAdminFeedbackRepository はフィードバックコレクションを束縛したリポジトリを生成する。
func NewAdminFeedbackRepository(db *mongo.Database, collection string) *AdminFeedbackRepository {
	return &AdminFeedbackRepository{feedback: db.Collection(collection)}
}

// Find は新しい順に 1 ページ分を返し、条件に一致する総件数も併せて返す。
func (r *AdminFeedbackRepository) Find(ctx context.Context, filter adminapp.FeedbackFilter, paging adminapp.Paging) ([]admindomain.Feedback, int64, error) {
	mongoFilter := buildAdminFeedbackFilter(filter)

	total, err := r.feedback.CountDocuments(ctx, mongoFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("count feedback: %w", err)
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if paging.Limit > 0 {
		findOpts.SetLimit(int64(paging.Limit))
		if skip := pagingSkip(paging); skip > 0 {
			findOpts.SetSkip(skip)
		}
	}

	cursor, err := r.feedback.Find(ctx, mongoFilter, findOpts)
	if err != nil {
		return nil, 0, fmt.Errorf("find feedback: %w", err)
	}
	defer cursor.Close(ctx)

	items := make([]admindomain.Feedback, 0)
	for cursor.Next(ctx) {
		var doc FeedbackDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, err
		}
		items = append(items, mapAdminFeedbackDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func buildAdminFeedbackFilter(filter adminapp.FeedbackFilter) bson.M {
	mongoFilter := bson.M{}
	if v := strings.TrimSpace(filter.Helpfulness); v != "" {
		mongoFilter["helpfulness"] = v
	}
	if v := strings.TrimSpace(filter.Source); v != "" {
		mongoFilter["source"] = v
	}
	return mongoFilter
}

// FindByID は ID 不正・未登録のどちらも ErrFeedbackNotFound として返す。
func (r *AdminFeedbackRepository) FindByID(ctx context.Context, id string) (*admindomain.Feedback, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, adminapp.ErrFeedbackNotFound
	}
	var doc FeedbackDocument
	if err := r.feedback.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, adminapp.ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("find feedback %s: %w", id, err)
	}
	feedback := mapAdminFeedbackDocument(doc)
	return &feedback, nil
}

// Stats は件数・平均難易度・回答分布を $facet でまとめて集計する。
func (r *AdminFeedbackRepository) Stats(ctx context.Context) (*admindomain.FeedbackStats, error) {
	countBy := func(field string) bson.A {
		return bson.A{
			bson.M{"$match": bson.M{field: bson.M{"$nin": bson.A{nil, ""}}}},
			bson.M{"$group": bson.M{"_id": "$" + field, "count": bson.M{"$sum": 1}}},
			bson.M{"$sort": bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}},
		}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$facet", Value: bson.M{
			"summary": bson.A{
				bson.M{"$group": bson.M{
					"_id":            nil,
					"total":          bson.M{"$sum": 1},
					"avgDifficulty":  bson.M{"$avg": "$setupDifficulty"},
					"lastReceivedAt": bson.M{"$max": "$createdAt"},
				}},
			},
			"helpfulness": countBy("helpfulness"),
			"docsQuality": countBy("docsQuality"),
			"setupIssues": append(bson.A{bson.M{"$unwind": "$setupIssues"}}, countBy("setupIssues")...),
		}}},
	}

	cursor, err := r.feedback.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate feedback stats: %w", err)
	}
	defer cursor.Close(ctx)

	stats := newEmptyStats()
	if cursor.Next(ctx) {
		var agg feedbackStatsAggregate
		if err := cursor.Decode(&agg); err != nil {
			return nil, err
		}
		agg.applyTo(stats)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}

func newEmptyStats() *admindomain.FeedbackStats {
	return &admindomain.FeedbackStats{
		ByHelpfulness: []admindomain.ValueCount{},
		ByDocsQuality: []admindomain.ValueCount{},
		SetupIssues:   []admindomain.ValueCount{},
	}
}

type valueCountAggregate struct {
	Value string `bson:"_id"`
	Count int    `bson:"count"`
}

type feedbackStatsSummary struct {
	Total          int        `bson:"total"`
	AvgDifficulty  *float64   `bson:"avgDifficulty"`
	LastReceivedAt *time.Time `bson:"lastReceivedAt"`
}

type feedbackStatsAggregate struct {
	Summary     []feedbackStatsSummary `bson:"summary"`
	Helpfulness []valueCountAggregate   `bson:"helpfulness"`
	DocsQuality []valueCountAggregate   `bson:"docsQuality"`
	SetupIssues []valueCountAggregate   `bson:"setupIssues"`
}

func (a feedbackStatsAggregate) applyTo(stats *admindomain.FeedbackStats) {
	if len(a.Summary) > 0 {
		stats.Total = a.Summary[0].Total
		stats.AverageDifficulty = a.Summary[0].AvgDifficulty
		stats.LastReceivedAt = a.Summary[0].LastReceivedAt
	}
	stats.ByHelpfulness = toValueCounts(a.Helpfulness)
	stats.ByDocsQuality = toValueCounts(a.DocsQuality)
	stats.SetupIssues = toValueCounts(a.SetupIssues)
}

func toValueCounts(in []valueCountAggregate) []admindomain.ValueCount {
	out := make([]admindomain.ValueCount, 0, len(in))
	for _, item := range in {
		out = append(out, admindomain.ValueCount{Value: item.Value, Count: item.Count})
	}
	return out
}

// pagingSkip は int64 で計算し、オーバーフローする場合は上限に張り付ける。
func pagingSkip(paging adminapp.Paging) int64 {
	if paging.Page <= 1 || paging.Limit <= 0 {
		return 0
	}
	pages := int64(paging.Page - 1)
	limit := int64(paging.Limit)
	if pages > math.MaxInt64/limit {
		return math.MaxInt64
	}
	return pages * limit
}
