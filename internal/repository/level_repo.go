package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"skyquest/internal/model"
)

// LevelRepo is the read-only lookup of per-level constraints. Rows are seeded
// out of band and immutable afterwards.
type LevelRepo interface {
	GetByLevelID(ctx context.Context, levelID int) (*model.LevelConstraint, error)
	Insert(ctx context.Context, constraint *model.LevelConstraint) error
	List(ctx context.Context) ([]*model.LevelConstraint, error)
}

type levelRepo struct {
	collection *mongo.Collection
}

// NewLevelRepo creates a new level constraint repository.
func NewLevelRepo(db *mongo.Database) LevelRepo {
	return &levelRepo{
		collection: db.Collection("levels"),
	}
}

func (r *levelRepo) GetByLevelID(ctx context.Context, levelID int) (*model.LevelConstraint, error) {
	var constraint model.LevelConstraint
	err := r.collection.FindOne(ctx, bson.M{"levelId": levelID}).Decode(&constraint)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil // Level not configured
		}
		return nil, err
	}
	return &constraint, nil
}

func (r *levelRepo) Insert(ctx context.Context, constraint *model.LevelConstraint) error {
	_, err := r.collection.InsertOne(ctx, constraint)
	return err
}

func (r *levelRepo) List(ctx context.Context) ([]*model.LevelConstraint, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var constraints []*model.LevelConstraint
	if err = cursor.All(ctx, &constraints); err != nil {
		return nil, err
	}
	return constraints, nil
}
