package handler

import (
	"context"
	"time"

	"scholar-sync/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    pinger
	redis pinger
}

func NewHealthHandler(db, redis pinger) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	data := map[string]any{
		"database": h.ping(c.Context(), h.db),
		"redis":    h.ping(c.Context(), h.redis),
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *HealthHandler) ping(ctx context.Context, p pinger) bool {
	if p == nil {
		return false
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return p.Ping(pingCtx) == nil
}
