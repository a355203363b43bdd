package repository

import (
	"context"
	"time"

	"scholar-sync/internal/database"

	"github.com/google/uuid"
)

type PipelineRunRecord struct {
	ID                    uuid.UUID
	StartedAt             time.Time
	FinishedAt            *time.Time
	Status                string
	StudentsProcessed     int
	ScholarshipsEvaluated int
	MatchesCreated        int
	MatchesUpdated        int
	PairsFailed           int
	NotificationsSent     int
	NotificationsFailed   int
}

type PipelineRunRepository interface {
	Create(ctx context.Context, startedAt time.Time) (uuid.UUID, error)
	Finish(ctx context.Context, rec PipelineRunRecord) error
	GetLatest(ctx context.Context) (PipelineRunRecord, error)
}

type PostgresPipelineRunRepository struct {
	db database.DB
}

func NewPostgresPipelineRunRepository(db database.DB) *PostgresPipelineRunRepository {
	return &PostgresPipelineRunRepository{db: db}
}

func (r *PostgresPipelineRunRepository) Create(ctx context.Context, startedAt time.Time) (uuid.UUID, error) {
	id := uuid.New()
	_, err := r.db.Exec(ctx,
		`INSERT INTO pipeline_runs (id, started_at, status) VALUES ($1, $2, 'running')`,
		id, startedAt.UTC(),
	)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (r *PostgresPipelineRunRepository) Finish(ctx context.Context, rec PipelineRunRecord) error {
	if rec.ID == uuid.Nil {
		return nil
	}
	finished := time.Now().UTC()
	if rec.FinishedAt != nil {
		finished = rec.FinishedAt.UTC()
	}
	_, err := r.db.Exec(ctx,
		`UPDATE pipeline_runs SET
			finished_at = $2,
			status = $3,
			students_processed = $4,
			scholarships_evaluated = $5,
			matches_created = $6,
			matches_updated = $7,
			pairs_failed = $8,
			notifications_sent = $9,
			notifications_failed = $10
		 WHERE id = $1`,
		rec.ID, finished, rec.Status,
		rec.StudentsProcessed, rec.ScholarshipsEvaluated,
		rec.MatchesCreated, rec.MatchesUpdated, rec.PairsFailed,
		rec.NotificationsSent, rec.NotificationsFailed,
	)
	return err
}

func (r *PostgresPipelineRunRepository) GetLatest(ctx context.Context) (PipelineRunRecord, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, started_at, finished_at, status,
			students_processed, scholarships_evaluated,
			matches_created, matches_updated, pairs_failed,
			notifications_sent, notifications_failed
		 FROM pipeline_runs
		 ORDER BY started_at DESC
		 LIMIT 1`,
	)

	var rec PipelineRunRecord
	err := row.Scan(
		&rec.ID, &rec.StartedAt, &rec.FinishedAt, &rec.Status,
		&rec.StudentsProcessed, &rec.ScholarshipsEvaluated,
		&rec.MatchesCreated, &rec.MatchesUpdated, &rec.PairsFailed,
		&rec.NotificationsSent, &rec.NotificationsFailed,
	)
	if err != nil {
		return PipelineRunRecord{}, err
	}
	return rec, nil
}
