package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/ecopathway/ecocoach/internal/coach"
	"github.com/ecopathway/ecocoach/internal/config"
	"github.com/ecopathway/ecocoach/internal/db"
	"github.com/ecopathway/ecocoach/internal/llm"
	"github.com/ecopathway/ecocoach/internal/repository"
	"github.com/ecopathway/ecocoach/internal/service"
)

type App struct {
	Cfg            *config.Config
	DB             *sqlx.DB
	CoachService   *service.CoachService
	TrackerService *service.TrackerService
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	profileRepository := repository.NewProfileRepository(database)
	habitRepository := repository.NewHabitRepository(database)

	// Text generation is optional; without a key the coach uses canned lines.
	var generator service.Generator
	if cfg.GeminiAPIKey != "" {
		gemini, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize text generation: %v", err)
		}
		generator = gemini
	} else {
		slog.Info("GEMINI_API_KEY not set, text generation disabled")
	}

	// Services
	trackerService := service.NewTrackerService(habitRepository)
	engine := coach.NewEngine(cfg.TargetDays, cfg.TrackingWindowDays)
	coachService := service.NewCoachService(profileRepository, trackerService, engine, generator)

	return &App{
		Cfg:            cfg,
		DB:             database,
		CoachService:   coachService,
		TrackerService: trackerService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
