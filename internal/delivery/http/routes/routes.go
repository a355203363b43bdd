package routes

import (
	"scholar-sync/internal/delivery/http/handler"
	"scholar-sync/internal/delivery/http/middleware"
	"scholar-sync/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Registry wires handlers onto the fiber app. Construction of usecases and
// repositories happens in the app container; routes only arrange them.
type Registry struct {
	Health      *handler.HealthHandler
	Auth        *handler.AuthHandler
	Match       *handler.MatchHandler
	Eligibility *handler.EligibilityHandler
	Pipeline    *handler.PipelineHandler
	WS          *ws.Handler

	AuthMw *middleware.AuthMiddleware
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	if r.Health != nil {
		r.Health.RegisterRoutes(app)
	}

	api := app.Group("/api")
	v1 := api.Group("/v1")

	if r.Auth != nil {
		r.Auth.RegisterRoutes(v1.Group("/auth"))
	}

	protected := v1
	if r.AuthMw != nil {
		protected = v1.Group("", r.AuthMw.Middleware())
	}

	if r.Match != nil {
		r.Match.RegisterRoutes(protected)
	}
	if r.Eligibility != nil {
		r.Eligibility.RegisterRoutes(protected)
	}
	if r.Pipeline != nil {
		r.Pipeline.RegisterRoutes(protected)
	}

	if r.WS != nil {
		app.Get("/ws/matches", r.WS.HandleMatchesWS)
	}
}
