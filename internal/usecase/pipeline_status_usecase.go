package usecase

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"scholar-sync/internal/delivery/http/dto"
	"scholar-sync/internal/infrastructure/cache"
	"scholar-sync/internal/repository"

	"github.com/jackc/pgx/v5"
)

const pipelineStatusCacheKey = "pipeline:status"

type PipelineStatusUsecase interface {
	GetStatus(ctx context.Context) (dto.PipelineStatusResponseData, error)
}

type PipelineStatus struct {
	runs          repository.PipelineRunRepository
	scholarships  repository.ScholarshipRepository
	matches       repository.MatchRepository
	notifications repository.NotificationRepository
	cache         *cache.Redis
	log           *log.Logger
}

func NewPipelineStatusUsecase(
	runs repository.PipelineRunRepository,
	scholarships repository.ScholarshipRepository,
	matches repository.MatchRepository,
	notifications repository.NotificationRepository,
	redis *cache.Redis,
	logger *log.Logger,
) *PipelineStatus {
	if logger == nil {
		logger = log.Default()
	}
	return &PipelineStatus{
		runs:          runs,
		scholarships:  scholarships,
		matches:       matches,
		notifications: notifications,
		cache:         redis,
		log:           logger,
	}
}

func (u *PipelineStatus) GetStatus(ctx context.Context) (dto.PipelineStatusResponseData, error) {
	var cached dto.PipelineStatusResponseData
	if hit, err := u.cache.GetJSON(ctx, pipelineStatusCacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	var (
		lastRun repository.PipelineRunRecord
		errRun  error

		scholarships  int
		matches       int
		notifications int

		errScholarships  error
		errMatches       error
		errNotifications error
	)

	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		lastRun, errRun = u.runs.GetLatest(ctx)
		if errRun != nil && !errors.Is(errRun, pgx.ErrNoRows) {
			u.log.Printf("pipeline_status metric=last_run status=error err=%v", errRun)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		scholarships, errScholarships = u.scholarships.CountScholarships(ctx)
		if errScholarships != nil {
			u.log.Printf("pipeline_status metric=scholarships status=error err=%v", errScholarships)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		matches, errMatches = u.matches.CountMatches(ctx)
		if errMatches != nil {
			u.log.Printf("pipeline_status metric=matches status=error err=%v", errMatches)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		notifications, errNotifications = u.notifications.CountNotifications(ctx)
		if errNotifications != nil {
			u.log.Printf("pipeline_status metric=notifications status=error err=%v", errNotifications)
		}
	}()

	wg.Wait()

	data := dto.PipelineStatusResponseData{
		Totals: dto.PipelineTotalsResponse{
			Scholarships:  scholarships,
			Matches:       matches,
			Notifications: notifications,
		},
		LastUpdated: time.Now().UTC(),
	}
	if errRun == nil {
		data.LastRun = &dto.PipelineRunResponse{
			ID:                    lastRun.ID.String(),
			StartedAt:             lastRun.StartedAt,
			FinishedAt:            lastRun.FinishedAt,
			Status:                lastRun.Status,
			StudentsProcessed:     lastRun.StudentsProcessed,
			ScholarshipsEvaluated: lastRun.ScholarshipsEvaluated,
			MatchesCreated:        lastRun.MatchesCreated,
			MatchesUpdated:        lastRun.MatchesUpdated,
			PairsFailed:           lastRun.PairsFailed,
			NotificationsSent:     lastRun.NotificationsSent,
			NotificationsFailed:   lastRun.NotificationsFailed,
		}
	}

	if err := u.cache.SetJSON(ctx, pipelineStatusCacheKey, data, 30*time.Second); err != nil {
		u.log.Printf("pipeline_status cache=set status=error err=%v", err)
	}

	return data, nil
}
