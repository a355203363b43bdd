package repository

import (
	"context"

	"scholar-sync/internal/database"

	"github.com/google/uuid"
)

type NotificationRecord struct {
	StudentID     uuid.UUID
	ScholarshipID uuid.UUID
	Tier          string
	OverallScore  int
}

type NotificationRepository interface {
	// RecordIfNew inserts the notification record and reports whether it was
	// new. A pair that was already notified returns false, which is what
	// keeps notification delivery at exactly once per qualifying transition
	// across runs and step retries.
	RecordIfNew(ctx context.Context, n NotificationRecord) (bool, error)
	CountNotifications(ctx context.Context) (int, error)
}

type PostgresNotificationRepository struct {
	db database.DB
}

func NewPostgresNotificationRepository(db database.DB) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

func (r *PostgresNotificationRepository) RecordIfNew(ctx context.Context, n NotificationRecord) (bool, error) {
	if n.StudentID == uuid.Nil || n.ScholarshipID == uuid.Nil {
		return false, nil
	}

	affected, err := r.db.Exec(ctx,
		`INSERT INTO match_notifications (id, student_id, scholarship_id, tier, overall_score)
		 VALUES ($1,$2,$3,$4,$5)
		 ON CONFLICT (student_id, scholarship_id) DO NOTHING`,
		uuid.New(), n.StudentID, n.ScholarshipID, n.Tier, n.OverallScore,
	)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *PostgresNotificationRepository) CountNotifications(ctx context.Context) (int, error) {
	row := r.db.QueryRow(ctx, `SELECT COUNT(1) FROM match_notifications`)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
