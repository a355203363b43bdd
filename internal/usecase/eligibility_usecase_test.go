package usecase

import (
	"context"
	"errors"
	"testing"

	"scholar-sync/internal/domain/scholarship"
	"scholar-sync/internal/domain/student"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func fptr(v float64) *float64 { return &v }
func sptr(v string) *string   { return &v }
func bptr(v bool) *bool       { return &v }

func TestEligibilityCheckListsEveryFailure(t *testing.T) {
	studentID := uuid.New()
	scholarshipID := uuid.New()

	students := &stubStudentRepo{students: map[uuid.UUID]student.Student{
		studentID: {ID: studentID, Profile: &student.Profile{
			GPA:    fptr(2.5),
			Gender: sptr("male"),
		}},
	}}
	scholarships := &stubScholarshipRepo{scholarships: map[uuid.UUID]scholarship.Scholarship{
		scholarshipID: {ID: scholarshipID, Criteria: &scholarship.EligibilityCriteria{
			Academic:    &scholarship.AcademicCriteria{MinGPA: fptr(3.5)},
			Demographic: &scholarship.DemographicCriteria{RequiredGender: sptr("female")},
			Financial:   &scholarship.FinancialCriteria{RequiresFinancialNeed: bptr(true)},
		}},
	}}

	u := NewEligibilityUsecase(students, scholarships)
	data, err := u.Check(context.Background(), studentID, scholarshipID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if data.Eligible {
		t.Fatalf("expected ineligible")
	}
	// Early exit is off for this endpoint: every failing criterion is listed.
	if len(data.FailedCriteria) != 3 {
		t.Fatalf("expected 3 failed criteria, got %d: %+v", len(data.FailedCriteria), data.FailedCriteria)
	}
	if data.ScholarshipID != scholarshipID.String() {
		t.Fatalf("expected scholarship ID %s, got %s", scholarshipID, data.ScholarshipID)
	}
}

func TestEligibilityCheckEligiblePair(t *testing.T) {
	studentID := uuid.New()
	scholarshipID := uuid.New()

	students := &stubStudentRepo{students: map[uuid.UUID]student.Student{
		studentID: {ID: studentID, Profile: &student.Profile{GPA: fptr(3.8)}},
	}}
	scholarships := &stubScholarshipRepo{scholarships: map[uuid.UUID]scholarship.Scholarship{
		scholarshipID: {ID: scholarshipID, Criteria: &scholarship.EligibilityCriteria{
			Academic: &scholarship.AcademicCriteria{MinGPA: fptr(3.0)},
		}},
	}}

	u := NewEligibilityUsecase(students, scholarships)
	data, err := u.Check(context.Background(), studentID, scholarshipID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !data.Eligible {
		t.Fatalf("expected eligible, got failures %+v", data.FailedCriteria)
	}
	if len(data.FailedCriteria) != 0 {
		t.Fatalf("expected no failed criteria, got %d", len(data.FailedCriteria))
	}
}

func TestEligibilityCheckMissingStudent(t *testing.T) {
	students := &stubStudentRepo{getErr: pgx.ErrNoRows}
	u := NewEligibilityUsecase(students, &stubScholarshipRepo{})

	if _, err := u.Check(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound, got %v", err)
	}
}

func TestEligibilityCheckMissingScholarship(t *testing.T) {
	studentID := uuid.New()
	students := &stubStudentRepo{students: map[uuid.UUID]student.Student{
		studentID: {ID: studentID},
	}}
	scholarships := &stubScholarshipRepo{getErr: pgx.ErrNoRows}

	u := NewEligibilityUsecase(students, scholarships)
	if _, err := u.Check(context.Background(), studentID, uuid.New()); !errors.Is(err, ErrScholarshipNotFound) {
		t.Fatalf("expected ErrScholarshipNotFound, got %v", err)
	}
}

func TestEligibilityCheckNilIDs(t *testing.T) {
	u := NewEligibilityUsecase(&stubStudentRepo{}, &stubScholarshipRepo{})

	if _, err := u.Check(context.Background(), uuid.Nil, uuid.New()); !errors.Is(err, ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound for a nil student ID, got %v", err)
	}
	if _, err := u.Check(context.Background(), uuid.New(), uuid.Nil); !errors.Is(err, ErrScholarshipNotFound) {
		t.Fatalf("expected ErrScholarshipNotFound for a nil scholarship ID, got %v", err)
	}
}
