package seeder

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"scholar-sync/internal/database"
	"scholar-sync/internal/domain/scholarship"
)

type ScholarshipsSeeder struct{}

func (ScholarshipsSeeder) Name() string { return "scholarships" }

func (ScholarshipsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "scholarships",
		"id", "source_id", "external_id", "name", "provider", "amount_cents",
		"deadline", "verified", "eligibility_criteria"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	deadline := time.Now().UTC().AddDate(0, 6, 0)

	for _, it := range demoScholarships() {
		criteria, err := json.Marshal(it.criteria)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO scholarships
				(id, source_id, external_id, name, provider, amount_cents, deadline, verified, eligibility_criteria)
			 SELECT gen_random_uuid(), s.id, $1, $2, $3, $4, $5, TRUE, $6
			 FROM scholarship_sources s WHERE s.name = 'Manual Entry'
			 ON CONFLICT (source_id, external_id) DO NOTHING`,
			it.externalID, it.name, it.provider, it.amountCents, deadline, criteria,
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

type demoScholarship struct {
	externalID  string
	name        string
	provider    string
	amountCents int64
	criteria    scholarship.EligibilityCriteria
}

func demoScholarships() []demoScholarship {
	minGPA := 3.5
	minSAT := 1300
	stemGPA := 3.0
	needTrue := true
	firstGen := true
	leadership := true
	minVolunteer := 50

	return []demoScholarship{
		{
			externalID:  "demo-merit-excellence",
			name:        "Merit Excellence Award",
			provider:    "National Merit Foundation",
			amountCents: 1_000_000,
			criteria: scholarship.EligibilityCriteria{
				Academic: &scholarship.AcademicCriteria{MinGPA: &minGPA, MinSAT: &minSAT},
			},
		},
		{
			externalID:  "demo-stem-futures",
			name:        "STEM Futures Grant",
			provider:    "Futures in Science Fund",
			amountCents: 500_000,
			criteria: scholarship.EligibilityCriteria{
				Academic:   &scholarship.AcademicCriteria{MinGPA: &stemGPA},
				MajorField: &scholarship.MajorFieldCriteria{EligibleMajors: []string{"Computer Science", "Engineering", "Mathematics", "Physics", "Biology"}},
			},
		},
		{
			externalID:  "demo-first-gen-access",
			name:        "First Generation Access Scholarship",
			provider:    "College Access Partnership",
			amountCents: 250_000,
			criteria: scholarship.EligibilityCriteria{
				Financial: &scholarship.FinancialCriteria{RequiresFinancialNeed: &needTrue},
				Special:   &scholarship.SpecialCriteria{FirstGenerationRequired: &firstGen},
			},
		},
		{
			externalID:  "demo-community-leaders",
			name:        "Community Leaders Award",
			provider:    "Civic Youth Council",
			amountCents: 150_000,
			criteria: scholarship.EligibilityCriteria{
				Experience: &scholarship.ExperienceCriteria{
					LeadershipRequired: &leadership,
					MinVolunteerHours:  &minVolunteer,
				},
			},
		},
	}
}
