package repository

import (
	"context"
	"errors"
	"time"

	"scholar-sync/internal/database"
	"scholar-sync/internal/domain/match"
	"scholar-sync/internal/domain/scoring"

	"github.com/google/uuid"
)

var errInvalidMatchKey = errors.New("match upsert requires student and scholarship ids")

type MatchUpsert struct {
	StudentID     uuid.UUID
	ScholarshipID uuid.UUID
	Score         scoring.Score
	CalculatedAt  time.Time
}

// MatchUpsertOutcome tells the pipeline whether the upsert created the row
// and what tier the pair held before, so it can detect the newly-qualifying
// transition that triggers a notification.
type MatchUpsertOutcome struct {
	Created      bool
	PreviousTier string
}

// StudentMatchDetail is a match row joined with the scholarship fields the
// list endpoint renders.
type StudentMatchDetail struct {
	match.ScholarshipMatch

	ScholarshipName string
	AmountCents     *int64
	Deadline        *time.Time
}

type MatchRepository interface {
	Upsert(ctx context.Context, m MatchUpsert) (MatchUpsertOutcome, error)
	ListDetailedByStudent(ctx context.Context, studentID uuid.UUID, limit, offset int) ([]StudentMatchDetail, error)
	CountByStudent(ctx context.Context, studentID uuid.UUID) (int, error)
	CountMatches(ctx context.Context) (int, error)
}

type PostgresMatchRepository struct {
	db database.DB
}

func NewPostgresMatchRepository(db database.DB) *PostgresMatchRepository {
	return &PostgresMatchRepository{db: db}
}

func (r *PostgresMatchRepository) Upsert(ctx context.Context, m MatchUpsert) (MatchUpsertOutcome, error) {
	if m.StudentID == uuid.Nil || m.ScholarshipID == uuid.Nil {
		return MatchUpsertOutcome{}, errInvalidMatchKey
	}
	if m.CalculatedAt.IsZero() {
		m.CalculatedAt = time.Now().UTC()
	}

	// Read the prior tier first; concurrent runs resolve last-writer-wins,
	// so a stale read here only risks a repeat notification attempt, which
	// the notification log deduplicates.
	var prevTier string
	prevRow := r.db.QueryRow(ctx,
		`SELECT tier FROM scholarship_matches WHERE student_id = $1 AND scholarship_id = $2`,
		m.StudentID, m.ScholarshipID,
	)
	if err := prevRow.Scan(&prevTier); err != nil {
		prevTier = ""
	}

	// xmax = 0 only on freshly inserted rows.
	row := r.db.QueryRow(ctx,
		`INSERT INTO scholarship_matches
			(id, student_id, scholarship_id,
			 overall_score, academic_score, demographic_score, major_field_score,
			 experience_score, financial_score, special_score,
			 success_probability, competition_level, strategic_value, tier, calculated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		 ON CONFLICT (student_id, scholarship_id) DO UPDATE SET
			overall_score = EXCLUDED.overall_score,
			academic_score = EXCLUDED.academic_score,
			demographic_score = EXCLUDED.demographic_score,
			major_field_score = EXCLUDED.major_field_score,
			experience_score = EXCLUDED.experience_score,
			financial_score = EXCLUDED.financial_score,
			special_score = EXCLUDED.special_score,
			success_probability = EXCLUDED.success_probability,
			competition_level = EXCLUDED.competition_level,
			strategic_value = EXCLUDED.strategic_value,
			tier = EXCLUDED.tier,
			calculated_at = EXCLUDED.calculated_at
		 RETURNING (xmax = 0)`,
		uuid.New(), m.StudentID, m.ScholarshipID,
		m.Score.Overall, m.Score.Dimensions.Academic, m.Score.Dimensions.Demographic,
		m.Score.Dimensions.MajorField, m.Score.Dimensions.Experience,
		m.Score.Dimensions.Financial, m.Score.Dimensions.Special,
		m.Score.SuccessProbability, m.Score.CompetitionLevel, m.Score.StrategicValue,
		m.Score.Tier, m.CalculatedAt,
	)

	out := MatchUpsertOutcome{PreviousTier: prevTier}
	if err := row.Scan(&out.Created); err != nil {
		return MatchUpsertOutcome{}, err
	}
	return out, nil
}

func (r *PostgresMatchRepository) ListDetailedByStudent(ctx context.Context, studentID uuid.UUID, limit, offset int) ([]StudentMatchDetail, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT m.id, m.student_id, m.scholarship_id,
			m.overall_score, m.academic_score, m.demographic_score, m.major_field_score,
			m.experience_score, m.financial_score, m.special_score,
			m.success_probability, m.competition_level, m.strategic_value, m.tier, m.calculated_at,
			s.name, s.amount_cents, s.deadline
		 FROM scholarship_matches m
		 JOIN scholarships s ON s.id = m.scholarship_id
		 WHERE m.student_id = $1
		 ORDER BY m.overall_score DESC, m.calculated_at DESC
		 LIMIT $2 OFFSET $3`,
		studentID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]StudentMatchDetail, 0, limit)
	for rows.Next() {
		var d StudentMatchDetail
		err := rows.Scan(
			&d.ID, &d.StudentID, &d.ScholarshipID,
			&d.OverallScore, &d.AcademicScore, &d.DemographicScore, &d.MajorFieldScore,
			&d.ExperienceScore, &d.FinancialScore, &d.SpecialScore,
			&d.SuccessProbability, &d.CompetitionLevel, &d.StrategicValue, &d.Tier, &d.CalculatedAt,
			&d.ScholarshipName, &d.AmountCents, &d.Deadline,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresMatchRepository) CountByStudent(ctx context.Context, studentID uuid.UUID) (int, error) {
	row := r.db.QueryRow(ctx, `SELECT COUNT(1) FROM scholarship_matches WHERE student_id = $1`, studentID)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PostgresMatchRepository) CountMatches(ctx context.Context) (int, error) {
	row := r.db.QueryRow(ctx, `SELECT COUNT(1) FROM scholarship_matches`)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
