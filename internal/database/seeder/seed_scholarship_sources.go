package seeder

import (
	"context"
	"fmt"

	"scholar-sync/internal/database"
)

type ScholarshipSourcesSeeder struct{}

func (ScholarshipSourcesSeeder) Name() string { return "scholarship_sources" }

func (ScholarshipSourcesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "scholarship_sources", "id", "name", "base_url", "created_at"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	items := []struct {
		Name    string
		BaseURL string
	}{
		{Name: "CareerOneStop", BaseURL: "https://www.careeronestop.org/toolkit/training/find-scholarships.aspx"},
		{Name: "Fastweb", BaseURL: "https://www.fastweb.com"},
		{Name: "Scholarships.com", BaseURL: "https://www.scholarships.com"},
		{Name: "Manual Entry", BaseURL: ""},
	}

	for _, it := range items {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO scholarship_sources (id, name, base_url) VALUES (gen_random_uuid(), $1, NULLIF($2, '')) ON CONFLICT (name) DO NOTHING`,
			it.Name,
			it.BaseURL,
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
