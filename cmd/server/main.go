package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"skyquest/internal/cache"
	"skyquest/internal/config"
	"skyquest/internal/repository"
	"skyquest/internal/service"
	"skyquest/internal/transport/rest"
	"skyquest/internal/transport/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})

	ctx := context.Background()

	// MongoDB connection, retried with backoff while the store comes up
	var mongoClient *mongo.Client
	err = backoff.Retry(func() error {
		var dialErr error
		mongoClient, dialErr = mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if dialErr != nil {
			return dialErr
		}
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return mongoClient.Ping(pingCtx, nil)
	}, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5))
	if err != nil {
		logrus.Fatalf("failed to connect to MongoDB: %v", err)
	}
	defer mongoClient.Disconnect(ctx)
	logrus.Info("connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDatabase)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer rdb.Close()

	err = backoff.Retry(func() error {
		return rdb.Ping(ctx).Err()
	}, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5))
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}
	logrus.Info("connected to Redis")

	// Repositories
	levelRepo := repository.NewLevelRepo(db)
	progressRepo := repository.NewProgressRepo(db)
	activityRepo := repository.NewActivityRepo(db)
	connectionRepo := repository.NewConnectionRepo(db)

	// Caches
	levelCache := cache.NewLevelCache(rdb)
	leaderboard := cache.NewLeaderboardCache(rdb)

	// Connection registry
	wsHub := ws.NewHub()

	// Services
	authSvc := service.NewAuthService(cfg.JWTSecret, cfg.TokenTTL)
	gameSvc := service.NewGameService(levelRepo, progressRepo, activityRepo, levelCache, leaderboard)
	gameSvc.SetBroadcaster(wsHub)

	router := rest.NewRouter(&rest.Container{
		AuthService:    authSvc,
		GameService:    gameSvc,
		ConnectionRepo: connectionRepo,
		WSHub:          wsHub,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: router,
	}

	go func() {
		logrus.Infof("server starting on :%d", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("ListenAndServe: %v", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Fatalf("server forced to shutdown: %v", err)
	}

	logrus.Info("server exited")
}
