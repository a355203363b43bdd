package handler

import (
	"scholar-sync/internal/delivery/http/middleware"
	"scholar-sync/internal/pkg/response"
	"scholar-sync/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type PipelineHandler struct {
	status  usecase.PipelineStatusUsecase
	trigger usecase.PipelineTriggerUsecase
}

func NewPipelineHandler(status usecase.PipelineStatusUsecase, trigger usecase.PipelineTriggerUsecase) *PipelineHandler {
	return &PipelineHandler{status: status, trigger: trigger}
}

func (h *PipelineHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/pipeline")
	grp.Get("/status", h.GetStatus)
	grp.Post("/trigger", h.Trigger)
}

func (h *PipelineHandler) GetStatus(c fiber.Ctx) error {
	data, err := h.status.GetStatus(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *PipelineHandler) Trigger(c fiber.Ctx) error {
	if h.trigger == nil {
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Pipeline not running", nil, nil)
	}
	if err := h.trigger.Trigger(c.Context()); err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusAccepted, "pipeline run queued", nil)
}
