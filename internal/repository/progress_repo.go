package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"skyquest/internal/model"
)

// ProgressRepo is the narrow read/replace contract the game engine depends
// on. The store offers no compare-and-swap; callers serialize their own
// read-modify-write cycles per user.
type ProgressRepo interface {
	GetByUserID(ctx context.Context, userID string) (*model.PlayerProgress, error)
	Create(ctx context.Context, progress *model.PlayerProgress) error
	Replace(ctx context.Context, progress *model.PlayerProgress) error
}

type progressRepo struct {
	collection *mongo.Collection
}

// NewProgressRepo creates a new player progress repository.
func NewProgressRepo(db *mongo.Database) ProgressRepo {
	return &progressRepo{
		collection: db.Collection("progress"),
	}
}

func (r *progressRepo) GetByUserID(ctx context.Context, userID string) (*model.PlayerProgress, error) {
	var progress model.PlayerProgress
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&progress)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil // No profile provisioned
		}
		return nil, err
	}

	// A document that decodes but fails shape validation is a data-integrity
	// problem, not input the gameplay rules should try to interpret.
	if err := progress.Validate(); err != nil {
		return nil, fmt.Errorf("malformed progress document: %w", err)
	}
	return &progress, nil
}

func (r *progressRepo) Create(ctx context.Context, progress *model.PlayerProgress) error {
	if progress.CreatedAt.IsZero() {
		progress.CreatedAt = time.Now()
	}
	progress.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, progress)
	return err
}

func (r *progressRepo) Replace(ctx context.Context, progress *model.PlayerProgress) error {
	progress.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"userId": progress.UserID}, progress)
	return err
}
