package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"skyquest/internal/model"
)

// ActivityRepo appends to the activity log. Write-only from the engine's
// perspective.
type ActivityRepo interface {
	Append(ctx context.Context, userID string, action model.ActivityAction, details map[string]any) error
}

type activityRepo struct {
	collection *mongo.Collection
}

// NewActivityRepo creates a new activity log repository.
func NewActivityRepo(db *mongo.Database) ActivityRepo {
	return &activityRepo{
		collection: db.Collection("activity"),
	}
}

func (r *activityRepo) Append(ctx context.Context, userID string, action model.ActivityAction, details map[string]any) error {
	record := &model.ActivityRecord{
		ID:        primitive.NewObjectID().Hex(),
		UserID:    userID,
		Action:    action,
		Details:   details,
		CreatedAt: time.Now(),
	}
	_, err := r.collection.InsertOne(ctx, record)
	return err
}
