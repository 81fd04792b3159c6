package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/volley-coach/config"
	"github.com/Dosada05/volley-coach/db"
	"github.com/Dosada05/volley-coach/handlers"
	"github.com/Dosada05/volley-coach/live"
	"github.com/Dosada05/volley-coach/repositories"
	"github.com/Dosada05/volley-coach/routes"
	"github.com/Dosada05/volley-coach/services"
	"github.com/Dosada05/volley-coach/storage"
	"github.com/go-chi/chi/v5"
)

func main() {
	// Configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("db_driver", cfg.DBDriver),
		slog.Bool("strict_scoring", cfg.StrictScoring),
	)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Document store
	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open document store", slog.Any("error", err))
		os.Exit(1)
	}
	defer closeStore()

	// File uploader (Cloudflare R2)
	var uploader storage.FileUploader
	if cfg.UploadsEnabled() {
		uploader, err = storage.NewCloudflareR2Uploader(ctx, cfg.R2, logger)
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Warn("R2 is not configured, logo uploads are disabled")
	}

	// WebSocket hub
	wsHub := live.NewHub(logger)
	go wsHub.Run(ctx)
	logger.Info("WebSocket Hub started")

	// Repositories
	matchRepo := repositories.NewMatchRepository(store)
	teamRepo := repositories.NewTeamRepository(store)
	playerRepo := repositories.NewPlayerRepository(store)
	tournamentRepo := repositories.NewTournamentRepository(store)

	// Services
	matchService := services.NewMatchService(matchRepo, teamRepo, tournamentRepo, wsHub, logger,
		services.WithStrictScoring(cfg.StrictScoring),
	)
	historyService := services.NewHistoryService(matchRepo, teamRepo, playerRepo)
	teamService := services.NewTeamService(teamRepo, uploader, logger)
	playerService := services.NewPlayerService(playerRepo, teamRepo)
	tournamentService := services.NewTournamentService(tournamentRepo)
	ownerDataService := services.NewOwnerDataService(playerRepo, teamRepo, tournamentRepo, matchRepo, uploader, logger)

	// Router
	router := chi.NewRouter()
	routes.SetupRoutes(router, routes.Handlers{
		Match:      handlers.NewMatchHandler(matchService),
		History:    handlers.NewHistoryHandler(historyService),
		Team:       handlers.NewTeamHandler(teamService, playerService),
		Player:     handlers.NewPlayerHandler(playerService),
		Tournament: handlers.NewTournamentHandler(tournamentService),
		Account:    handlers.NewAccountHandler(ownerDataService),
		WebSocket:  handlers.NewWebSocketHandler(wsHub, matchService, cfg.AllowedOrigins),
	}, routes.Options{
		JWTSecret:      []byte(cfg.JWTSecretKey),
		AllowedOrigins: cfg.AllowedOrigins,
	})
	logger.Info("Routes configured")

	// HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Wait for a shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			stop()
			closeStore()
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		// Websocket connections are hijacked, Shutdown does not wait for them.
		stop()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
		} else {
			logger.Info("server shutdown complete")
		}
	}
	logger.Info("application exited")
}

// openStore picks the document store backend named by DB_DRIVER and makes sure its schema exists.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repositories.DocumentStore, func(), error) {
	var (
		conn   *sql.DB
		err    error
		driver string
	)

	switch cfg.DBDriver {
	case config.DriverMemory:
		logger.Warn("using in-memory store, data is lost on restart")
		return repositories.NewMemoryDocumentStore(), func() {}, nil
	case config.DriverPostgres:
		driver = db.DriverPostgres
		conn, err = db.Connect(cfg.DatabaseURL, 5*time.Second)
	default:
		driver = db.DriverSQLite
		conn, err = db.OpenSQLite(cfg.SQLitePath, 5*time.Second)
	}
	if err != nil {
		return nil, nil, err
	}

	if err := db.EnsureSchema(ctx, conn, driver); err != nil {
		conn.Close()
		return nil, nil, err
	}
	logger.Info("database connection established", slog.String("driver", driver))

	closed := false
	closeFn := func() {
		if closed {
			return
		}
		closed = true
		if err := conn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}

	if driver == db.DriverPostgres {
		return repositories.NewPostgresDocumentStore(conn), closeFn, nil
	}
	return repositories.NewSQLiteDocumentStore(conn), closeFn, nil
}
