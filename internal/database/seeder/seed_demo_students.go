package seeder

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"scholar-sync/internal/database"

	"golang.org/x/crypto/bcrypt"
)

// DemoStudentsSeeder creates one matchable student account so a fresh
// install has something for the pipeline and the API to show.
type DemoStudentsSeeder struct{}

func (DemoStudentsSeeder) Name() string { return "demo_students" }

func (DemoStudentsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "users", "id", "email", "password_hash"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "student_profiles",
		"id", "user_id", "gpa", "gpa_scale", "completeness_pct"); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	_, err = tx.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, first_name, last_name)
		 VALUES (gen_random_uuid(), 'demo.student@example.com', $1, 'Demo', 'Student')
		 ON CONFLICT (email) DO NOTHING`,
		string(hash),
	)
	if err != nil {
		return err
	}

	ethnicity, _ := json.Marshal([]string{"Hispanic"})
	extracurriculars, _ := json.Marshal([]map[string]any{
		{"name": "Robotics Club", "years": 3},
		{"name": "Debate Team", "years": 2},
	})
	leadership, _ := json.Marshal([]map[string]any{
		{"title": "Club President", "organization": "Robotics Club"},
	})
	dob := time.Date(2008, time.March, 14, 0, 0, 0, 0, time.UTC)

	_, err = tx.Exec(ctx,
		`INSERT INTO student_profiles
			(id, user_id, gpa, gpa_scale, sat_score, class_rank, class_size,
			 gender, ethnicity, date_of_birth, state, city,
			 intended_major, field_of_study, career_goals,
			 volunteer_hours, extracurriculars, leadership_roles,
			 financial_need_level, first_generation, completeness_pct)
		 SELECT gen_random_uuid(), u.id, 3.8, 4.0, 1400, 15, 300,
			'female', $1, $2, 'CA', 'San Jose',
			'Computer Science', 'STEM', 'Build accessible education software',
			120, $3, $4,
			'high', TRUE, 90
		 FROM users u WHERE u.email = 'demo.student@example.com'
		 ON CONFLICT (user_id) DO NOTHING`,
		ethnicity, dob, extracurriculars, leadership,
	)
	if err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
