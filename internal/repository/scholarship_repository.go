package repository

import (
	"context"
	"encoding/json"
	"time"

	"scholar-sync/internal/database"
	"scholar-sync/internal/domain/scholarship"

	"github.com/google/uuid"
)

type ScholarshipUpsert struct {
	SourceID    uuid.UUID
	ExternalID  string
	Name        string
	Provider    *string
	AmountCents *int64
	Description *string
	URL         *string
	Deadline    *time.Time
	Criteria    *scholarship.EligibilityCriteria
}

type ScholarshipRepository interface {
	// ListMatchable returns verified scholarships with a future (or absent)
	// deadline that were created or updated within the lookback window.
	ListMatchable(ctx context.Context, updatedSince time.Time) ([]scholarship.Scholarship, error)
	GetByID(ctx context.Context, id uuid.UUID) (scholarship.Scholarship, error)
	UpsertScholarships(ctx context.Context, items []ScholarshipUpsert) error
	CountScholarships(ctx context.Context) (int, error)
}

type PostgresScholarshipRepository struct {
	db database.DB
}

func NewPostgresScholarshipRepository(db database.DB) *PostgresScholarshipRepository {
	return &PostgresScholarshipRepository{db: db}
}

const scholarshipColumns = `
	id, source_id, external_id, name, provider, amount_cents, description, url,
	deadline, verified, eligibility_criteria, created_at, updated_at`

func (r *PostgresScholarshipRepository) ListMatchable(ctx context.Context, updatedSince time.Time) ([]scholarship.Scholarship, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+scholarshipColumns+`
		 FROM scholarships
		 WHERE verified = TRUE
		   AND (deadline IS NULL OR deadline > now())
		   AND updated_at >= $1
		 ORDER BY created_at ASC`,
		updatedSince,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]scholarship.Scholarship, 0)
	for rows.Next() {
		sch, err := scanScholarship(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sch)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresScholarshipRepository) GetByID(ctx context.Context, id uuid.UUID) (scholarship.Scholarship, error) {
	row := r.db.QueryRow(ctx, `SELECT `+scholarshipColumns+` FROM scholarships WHERE id = $1`, id)
	return scanScholarship(row)
}

func (r *PostgresScholarshipRepository) UpsertScholarships(ctx context.Context, items []ScholarshipUpsert) error {
	for _, it := range items {
		if it.SourceID == uuid.Nil || it.ExternalID == "" || it.Name == "" {
			continue
		}
		var criteria []byte
		if it.Criteria != nil {
			b, err := json.Marshal(it.Criteria)
			if err != nil {
				return err
			}
			criteria = b
		}

		_, err := r.db.Exec(ctx,
			`INSERT INTO scholarships
				(id, source_id, external_id, name, provider, amount_cents, description, url, deadline, eligibility_criteria, updated_at)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,now())
			 ON CONFLICT (source_id, external_id) DO UPDATE SET
				name = EXCLUDED.name,
				provider = EXCLUDED.provider,
				amount_cents = EXCLUDED.amount_cents,
				description = EXCLUDED.description,
				url = EXCLUDED.url,
				deadline = EXCLUDED.deadline,
				eligibility_criteria = EXCLUDED.eligibility_criteria,
				updated_at = now()`,
			uuid.New(), it.SourceID, it.ExternalID, it.Name, it.Provider,
			it.AmountCents, it.Description, it.URL, it.Deadline, criteria,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresScholarshipRepository) CountScholarships(ctx context.Context) (int, error) {
	row := r.db.QueryRow(ctx, `SELECT COUNT(1) FROM scholarships`)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanScholarship(row scanner) (scholarship.Scholarship, error) {
	var sch scholarship.Scholarship
	var criteria []byte

	err := row.Scan(
		&sch.ID, &sch.SourceID, &sch.ExternalID, &sch.Name, &sch.Provider,
		&sch.AmountCents, &sch.Description, &sch.URL,
		&sch.Deadline, &sch.Verified, &criteria, &sch.CreatedAt, &sch.UpdatedAt,
	)
	if err != nil {
		return scholarship.Scholarship{}, err
	}

	if len(criteria) > 0 {
		c := &scholarship.EligibilityCriteria{}
		if err := json.Unmarshal(criteria, c); err != nil {
			return scholarship.Scholarship{}, err
		}
		sch.Criteria = c
	}
	return sch, nil
}
