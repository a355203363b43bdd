package handler

import (
	"errors"

	"scholar-sync/internal/delivery/http/middleware"
	"scholar-sync/internal/pkg/response"
	"scholar-sync/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type EligibilityHandler struct {
	uc usecase.EligibilityUsecase
}

func NewEligibilityHandler(uc usecase.EligibilityUsecase) *EligibilityHandler {
	return &EligibilityHandler{uc: uc}
}

func (h *EligibilityHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/scholarships")
	grp.Get("/:scholarship_id/eligibility", h.CheckEligibility)
}

// CheckEligibility previews the hard filters for the authenticated student
// against one scholarship, listing every failed criterion.
func (h *EligibilityHandler) CheckEligibility(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	scholarshipID, err := uuid.Parse(c.Params("scholarship_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	data, err := h.uc.Check(c.Context(), userID, scholarshipID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrStudentNotFound):
			return middleware.NewAppError(fiber.StatusNotFound, "Student not found", nil, err)
		case errors.Is(err, usecase.ErrScholarshipNotFound):
			return middleware.NewAppError(fiber.StatusNotFound, "Scholarship not found", nil, err)
		default:
			return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
		}
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}
