package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"skyquest/internal/metrics"
	"skyquest/internal/repository"
	"skyquest/internal/service"
	"skyquest/internal/transport/rest/handler"
	"skyquest/internal/transport/rest/middleware"
	"skyquest/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService    *service.AuthService
	GameService    *service.GameService
	ConnectionRepo repository.ConnectionRepo
	WSHub          *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	gameHandler := handler.NewGameHandler(c.GameService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService, c.GameService, c.ConnectionRepo)
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// WebSocket route (public with token in query param)
	v1.HandleFunc("/ws/game", wsHandler.GameWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Prometheus metrics
	r.Handle("/metrics", metrics.Handler()).Methods("GET")

	// Game routes (require player auth)
	gameRoutes := v1.NewRoute().Subrouter()
	gameRoutes.Use(authMW.RequirePlayer)

	gameRoutes.HandleFunc("/game/levels/{levelId}", gameHandler.GetLevel).Methods("GET", "OPTIONS")
	gameRoutes.HandleFunc("/game/progress", gameHandler.GetProgress).Methods("GET", "OPTIONS")
	gameRoutes.HandleFunc("/game/leaderboard", gameHandler.Leaderboard).Methods("GET", "OPTIONS")
	gameRoutes.HandleFunc("/game/item-collect", gameHandler.CollectItem).Methods("PATCH", "OPTIONS")
	gameRoutes.HandleFunc("/game/level-complete", gameHandler.CompleteLevel).Methods("PATCH", "OPTIONS")
	gameRoutes.HandleFunc("/game/sync", gameHandler.SyncState).Methods("PATCH", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
