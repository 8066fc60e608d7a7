package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"court-queue-backend/internal/config"
	"court-queue-backend/internal/db"
	"court-queue-backend/internal/handlers"
	"court-queue-backend/internal/middleware"
	"court-queue-backend/internal/repository"
	"court-queue-backend/internal/scheduler"
	"court-queue-backend/internal/services"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func Run() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Log.Level)

	loc, err := cfg.Reservation.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load timezone")
	}

	// Connect to database and apply migrations
	pool, err := db.Connect(context.Background(), cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()
	log.Info().Msg("Database connection established")

	// Initialize repositories
	courtRepo := repository.NewCourtRepository(pool)
	reservationRepo := repository.NewReservationRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	queueRepo := repository.NewQueueRepository(pool)

	// Seed court slots
	if err := courtRepo.EnsureSlots(context.Background(), cfg.Reservation.CourtCount); err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure court slots")
	}
	log.Info().Int("courts", cfg.Reservation.CourtCount).Msg("Court slots ready")

	// Initialize services
	wsHub := services.NewWSHub()
	userService := services.NewUserService(userRepo, loc)
	courtService := services.NewCourtService(
		courtRepo, reservationRepo, userRepo, wsHub, cfg.Reservation.Duration(), loc)
	queueService := services.NewQueueService(queueRepo)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService)
	courtHandler := handlers.NewCourtHandler(courtService)
	queueHandler := handlers.NewQueueHandler(courtService, queueService)
	adminHandler := handlers.NewAdminHandler(courtService)
	wsHandler := handlers.NewWebSocketHandler(wsHub, courtService)

	// Start periodic expiry sweep
	sweep, err := scheduler.New(cfg.Sweep.Interval(), courtService, userService)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create scheduler")
	}
	sweep.Start()

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(corsMiddleware)

	adminGate := middleware.AdminAuth(middleware.StaticCredential(cfg.Admin.Password))

	// Routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/register", userHandler.Register)
		r.Get("/courts", courtHandler.ListCourts)
		r.Post("/reserve", courtHandler.Reserve)
		r.Post("/merge", courtHandler.Merge)
		r.Delete("/reservations/{id}", courtHandler.Cancel)
		r.Post("/validate-users", courtHandler.ValidatePlayers)
		r.Get("/queue", queueHandler.ListQueue)
		r.Post("/queue/join", queueHandler.Join)
		r.Get("/queue/waiting", queueHandler.Waiting)
		r.Get("/active-users", courtHandler.ActiveUsers)

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(adminGate)
			r.Get("/admin/courts", adminHandler.ListAllCourts)
			r.Post("/admin/reset-court", adminHandler.ResetCourt)
			r.Post("/admin/toggle-visibility", adminHandler.ToggleVisibility)
			r.Get("/admin/users", adminHandler.Users)
		})
	})

	// WebSocket route
	r.Get("/ws", wsHandler.HandleWebSocket)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := sweep.Stop(); err != nil {
		log.Error().Err(err).Msg("Failed to stop scheduler")
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// setupLogger configures zerolog logger
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+middleware.AdminHeader)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
