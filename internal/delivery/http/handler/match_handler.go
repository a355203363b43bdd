package handler

import (
	"errors"
	"strconv"

	"scholar-sync/internal/delivery/http/middleware"
	"scholar-sync/internal/pkg/response"
	"scholar-sync/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MatchHandler struct {
	uc usecase.MatchListUsecase
}

func NewMatchHandler(uc usecase.MatchListUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/matches", h.ListMatches)
}

// ListMatches returns the authenticated student's matches ordered by score.
func (h *MatchHandler) ListMatches(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	limit := queryInt(c, "limit", 50)
	offset := queryInt(c, "offset", 0)

	data, err := h.uc.ListForStudent(c.Context(), userID, limit, offset)
	if err != nil {
		if errors.Is(err, usecase.ErrStudentNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Student not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func queryInt(c fiber.Ctx, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
