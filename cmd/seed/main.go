package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"skyquest/internal/config"
	"skyquest/internal/model"
	"skyquest/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logrus.Fatalf("failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	levelRepo := repository.NewLevelRepo(client.Database(cfg.MongoDatabase))

	levels := []*model.LevelConstraint{
		{LevelID: 1, Name: "Garden Adventure", MaxPrimary: 30, MaxSecondary: 20, TotalElements: 50, Difficulty: model.DifficultyEasy},
		{LevelID: 2, Name: "Forest Quest", MaxPrimary: 35, MaxSecondary: 25, TotalElements: 60, Difficulty: model.DifficultyMedium},
		{LevelID: 3, Name: "Mountain Challenge", MaxPrimary: 40, MaxSecondary: 30, TotalElements: 70, Difficulty: model.DifficultyHard},
		{LevelID: 4, Name: "Sky Journey", MaxPrimary: 30, MaxSecondary: 25, TotalElements: 55, Difficulty: model.DifficultyMedium},
		{LevelID: 5, Name: "Ocean Mystery", MaxPrimary: 35, MaxSecondary: 30, TotalElements: 65, Difficulty: model.DifficultyHard},
	}

	for _, level := range levels {
		existing, err := levelRepo.GetByLevelID(ctx, level.LevelID)
		if err != nil {
			logrus.Fatalf("failed to check level %d: %v", level.LevelID, err)
		}
		if existing != nil {
			logrus.Infof("level %d (%s) already seeded, skipping", level.LevelID, level.Name)
			continue
		}
		if err := levelRepo.Insert(ctx, level); err != nil {
			logrus.Fatalf("failed to seed level %d: %v", level.LevelID, err)
		}
		logrus.Infof("created level %d: %s", level.LevelID, level.Name)
	}

	logrus.Info("seeding completed")
}
