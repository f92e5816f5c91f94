package routes

import (
	"net/http"

	"github.com/ecopathway/ecocoach/internal/app"
	"github.com/ecopathway/ecocoach/internal/handler"
	"github.com/ecopathway/ecocoach/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	coach := handler.NewCoachHandler(app.CoachService)
	health := handler.NewHealthHandler()

	rateLimiter := middleware.RateLimitSubmit(app.Cfg.RateLimitSubmit, app.Cfg.RateLimitWindow)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", health.Health)
	mux.HandleFunc("POST /submit", rateLimiter(coach.Submit))
	mux.HandleFunc("GET /progress/{userId}", coach.Progress)

	return middleware.Chain(mux,
		middleware.RequestLogging,
	)
}
