package repository

import (
	"context"
	"encoding/json"
	"time"

	"scholar-sync/internal/database"
	"scholar-sync/internal/domain/student"

	"github.com/google/uuid"
)

type StudentRepository interface {
	// ListWithProfiles pages through students whose profile completeness is
	// at or above minCompleteness, profiles attached.
	ListWithProfiles(ctx context.Context, minCompleteness, limit, offset int) ([]student.Student, error)
	GetByID(ctx context.Context, id uuid.UUID) (student.Student, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}

type PostgresStudentRepository struct {
	db database.DB
}

func NewPostgresStudentRepository(db database.DB) *PostgresStudentRepository {
	return &PostgresStudentRepository{db: db}
}

const studentColumns = `
	u.id, u.email, u.first_name, u.last_name, u.created_at, u.updated_at,
	p.id, p.gpa, p.gpa_scale, p.sat_score, p.act_score, p.class_rank, p.class_size,
	p.gender, p.ethnicity, p.date_of_birth, p.state, p.city,
	p.intended_major, p.field_of_study, p.career_goals,
	p.volunteer_hours, p.extracurriculars, p.leadership_roles, p.work_experience, p.awards_honors,
	p.financial_need_level, p.efc_range, p.pell_grant_eligible,
	p.first_generation, p.military_affiliation, p.disability,
	p.completeness_pct, p.created_at, p.updated_at`

func (r *PostgresStudentRepository) ListWithProfiles(ctx context.Context, minCompleteness, limit, offset int) ([]student.Student, error) {
	if limit <= 0 {
		limit = 100
	}
	if limit > 1000 {
		limit = 1000
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+studentColumns+`
		 FROM users u
		 JOIN student_profiles p ON p.user_id = u.id
		 WHERE p.completeness_pct >= $1
		 ORDER BY u.created_at ASC
		 LIMIT $2 OFFSET $3`,
		minCompleteness, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]student.Student, 0, limit)
	for rows.Next() {
		st, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresStudentRepository) GetByID(ctx context.Context, id uuid.UUID) (student.Student, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+studentColumns+`
		 FROM users u
		 JOIN student_profiles p ON p.user_id = u.id
		 WHERE u.id = $1`,
		id,
	)
	return scanStudent(row)
}

func (r *PostgresStudentRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanStudent(row scanner) (student.Student, error) {
	var st student.Student
	var p student.Profile
	var (
		ethnicity        []byte
		extracurriculars []byte
		leadership       []byte
		work             []byte
		awards           []byte
		dob              *time.Time
	)

	err := row.Scan(
		&st.ID, &st.Email, &st.FirstName, &st.LastName, &st.CreatedAt, &st.UpdatedAt,
		&p.ID, &p.GPA, &p.GPAScale, &p.SATScore, &p.ACTScore, &p.ClassRank, &p.ClassSize,
		&p.Gender, &ethnicity, &dob, &p.State, &p.City,
		&p.IntendedMajor, &p.FieldOfStudy, &p.CareerGoals,
		&p.VolunteerHours, &extracurriculars, &leadership, &work, &awards,
		&p.FinancialNeedLevel, &p.EFCRange, &p.PellGrantEligible,
		&p.FirstGeneration, &p.MilitaryAffiliation, &p.Disability,
		&p.CompletenessPct, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return student.Student{}, err
	}

	p.UserID = st.ID
	p.DateOfBirth = dob
	if err := unmarshalOptional(ethnicity, &p.Ethnicity); err != nil {
		return student.Student{}, err
	}
	if err := unmarshalOptional(extracurriculars, &p.Extracurriculars); err != nil {
		return student.Student{}, err
	}
	if err := unmarshalOptional(leadership, &p.LeadershipRoles); err != nil {
		return student.Student{}, err
	}
	if err := unmarshalOptional(work, &p.WorkExperience); err != nil {
		return student.Student{}, err
	}
	if err := unmarshalOptional(awards, &p.AwardsHonors); err != nil {
		return student.Student{}, err
	}

	st.Profile = &p
	return st, nil
}

// unmarshalOptional leaves the destination nil for NULL columns so the
// filters can tell "no data" from "empty list".
func unmarshalOptional(raw []byte, out any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}
