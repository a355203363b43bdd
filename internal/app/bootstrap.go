package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"scholar-sync/internal/delivery/http/handler"
	"scholar-sync/internal/delivery/http/middleware"
	"scholar-sync/internal/delivery/http/routes"
	"scholar-sync/internal/pipeline"
	"scholar-sync/internal/pkg/jwt"
	"scholar-sync/internal/repository"
	"scholar-sync/internal/usecase"
	"scholar-sync/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Hub       *ws.Hub
	Scheduler *pipeline.Scheduler
	Pipeline  *pipeline.MatchingPipeline
}

// Bootstrap wires repositories, usecases, the matching pipeline and the
// HTTP surface into one runnable app. The caller owns the container's
// lifetime and starts the hub and scheduler goroutines.
func Bootstrap(c *Container) (*App, error) {
	if c == nil || c.DB == nil {
		return nil, fmt.Errorf("nil container")
	}
	cfg := c.Config

	userRepo := repository.NewPostgresUserRepository(c.DB)
	studentRepo := repository.NewPostgresStudentRepository(c.DB)
	scholarshipRepo := repository.NewPostgresScholarshipRepository(c.DB)
	matchRepo := repository.NewPostgresMatchRepository(c.DB)
	notificationRepo := repository.NewPostgresNotificationRepository(c.DB)
	runRepo := repository.NewPostgresPipelineRunRepository(c.DB)

	hub := ws.NewHub(log.Default())
	ws.SetDefaultHub(hub)

	matchingPipeline := pipeline.NewMatchingPipeline(
		studentRepo, scholarshipRepo, matchRepo, notificationRepo, runRepo,
		nil, ws.NewMatchNotifier(hub), cfg.Pipeline,
	)
	matchingPipeline.SetAfterRun(func(s pipeline.RunSummary) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.Redis.InvalidateMatchCaches(ctx); err != nil {
			log.Printf("pipeline=matching cache=invalidate status=error err=%v", err)
		}
		ws.NotifyPipelineCompleted(s.StudentsProcessed, s.MatchesCreated, s.MatchesUpdated)
	})
	scheduler := pipeline.NewScheduler(matchingPipeline, cfg.Pipeline.ScheduleHourUTC)

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc)
	matchListUC := usecase.NewMatchListUsecase(matchRepo, studentRepo, c.Redis, log.Default())
	eligibilityUC := usecase.NewEligibilityUsecase(studentRepo, scholarshipRepo)
	statusUC := usecase.NewPipelineStatusUsecase(runRepo, scholarshipRepo, matchRepo, notificationRepo, c.Redis, log.Default())
	triggerUC := usecase.NewPipelineTriggerUsecase(scheduler)

	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})
	f.Use(middleware.NewErrorMiddleware().Middleware())
	f.Use(middleware.NewAccessLogMiddleware(log.Default()).Middleware())

	registry := &routes.Registry{
		Health:      handler.NewHealthHandler(c.DB, c.Redis),
		Auth:        handler.NewAuthHandler(authUC),
		Match:       handler.NewMatchHandler(matchListUC),
		Eligibility: handler.NewEligibilityHandler(eligibilityUC),
		Pipeline:    handler.NewPipelineHandler(statusUC, triggerUC),
		WS:          ws.NewHandler(hub, log.Default()),
		AuthMw:      middleware.NewAuthMiddleware(jwtSvc),
	}
	registry.Register(f)

	return &App{
		Fiber:     f,
		Hub:       hub,
		Scheduler: scheduler,
		Pipeline:  matchingPipeline,
	}, nil
}

// Start launches the hub and the daily scheduler. It returns immediately;
// cancel the context to stop both.
func (a *App) Start(ctx context.Context) {
	if a == nil {
		return
	}
	if a.Hub != nil {
		go a.Hub.Run()
	}
	if a.Scheduler != nil {
		go a.Scheduler.Start(ctx)
	}
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
