package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	notificationTargetAdmin   = "admin_notification"
	notificationStatusPending = "pending"
)

// FailedNotificationRepository は送信に失敗した通知を failed_notifications に残す。
type FailedNotificationRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

func NewFailedNotificationRepository(db *mongo.Database, collectionName string) *FailedNotificationRepository {
	return &FailedNotificationRepository{collection: db.Collection(collectionName), now: time.Now}
}

// SaveAdminFailure は管理者通知の失敗を pending 状態で記録する。
func (r *FailedNotificationRepository) SaveAdminFailure(ctx context.Context, payload map[string]any, cause error, attempts int) error {
	doc := newFailedNotificationDocument(payload, cause, attempts, r.now().UTC())
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert failed notification: %w", err)
	}
	return nil
}

func newFailedNotificationDocument(payload map[string]any, cause error, attempts int, now time.Time) FailedNotificationDocument {
	message := ""
	if cause != nil {
		message = cause.Error()
	}
	return FailedNotificationDocument{
		Target:      notificationTargetAdmin,
		Payload:     payload,
		Error:       message,
		Attempts:    attempts,
		Status:      notificationStatusPending,
		CreatedAt:   now,
		LastTriedAt: now,
	}
}
