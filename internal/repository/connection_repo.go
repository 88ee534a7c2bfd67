package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"skyquest/internal/model"
)

// ConnectionRepo keeps the audit trail of WebSocket connections.
type ConnectionRepo interface {
	RecordOpen(ctx context.Context, userID, connectionID string) error
	RecordClose(ctx context.Context, connectionID string) error
}

type connectionRepo struct {
	collection *mongo.Collection
}

// NewConnectionRepo creates a new connection audit repository.
func NewConnectionRepo(db *mongo.Database) ConnectionRepo {
	return &connectionRepo{
		collection: db.Collection("connections"),
	}
}

func (r *connectionRepo) RecordOpen(ctx context.Context, userID, connectionID string) error {
	record := &model.ConnectionRecord{
		ID:           primitive.NewObjectID().Hex(),
		UserID:       userID,
		ConnectionID: connectionID,
		ConnectedAt:  time.Now(),
	}
	_, err := r.collection.InsertOne(ctx, record)
	return err
}

func (r *connectionRepo) RecordClose(ctx context.Context, connectionID string) error {
	now := time.Now()
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"connectionId": connectionID},
		bson.M{"$set": bson.M{"disconnectedAt": now}},
	)
	return err
}
