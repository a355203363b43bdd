package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"scholar-sync/internal/domain/match"
	"scholar-sync/internal/domain/scholarship"
	"scholar-sync/internal/domain/student"
	"scholar-sync/internal/repository"

	"github.com/google/uuid"
)

type stubStudentRepo struct {
	existing  map[uuid.UUID]bool
	students  map[uuid.UUID]student.Student
	existsErr error
	getErr    error
}

func (r *stubStudentRepo) ListWithProfiles(ctx context.Context, minCompleteness, limit, offset int) ([]student.Student, error) {
	return nil, nil
}

func (r *stubStudentRepo) GetByID(ctx context.Context, id uuid.UUID) (student.Student, error) {
	if r.getErr != nil {
		return student.Student{}, r.getErr
	}
	if st, ok := r.students[id]; ok {
		return st, nil
	}
	return student.Student{}, errors.New("not found")
}

func (r *stubStudentRepo) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	if r.existsErr != nil {
		return false, r.existsErr
	}
	return r.existing[id], nil
}

type stubMatchRepo struct {
	details    []repository.StudentMatchDetail
	total      int
	listCalls  int
	listErr    error
	countErr   error
	lastLimit  int
	lastOffset int
}

func (r *stubMatchRepo) Upsert(ctx context.Context, m repository.MatchUpsert) (repository.MatchUpsertOutcome, error) {
	return repository.MatchUpsertOutcome{}, nil
}

func (r *stubMatchRepo) ListDetailedByStudent(ctx context.Context, studentID uuid.UUID, limit, offset int) ([]repository.StudentMatchDetail, error) {
	r.listCalls++
	r.lastLimit = limit
	r.lastOffset = offset
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.details, nil
}

func (r *stubMatchRepo) CountByStudent(ctx context.Context, studentID uuid.UUID) (int, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	return r.total, nil
}

func (r *stubMatchRepo) CountMatches(ctx context.Context) (int, error) {
	return r.total, nil
}

type stubScholarshipRepo struct {
	scholarships map[uuid.UUID]scholarship.Scholarship
	getErr       error
}

func (r *stubScholarshipRepo) ListMatchable(ctx context.Context, updatedSince time.Time) ([]scholarship.Scholarship, error) {
	return nil, nil
}

func (r *stubScholarshipRepo) GetByID(ctx context.Context, id uuid.UUID) (scholarship.Scholarship, error) {
	if r.getErr != nil {
		return scholarship.Scholarship{}, r.getErr
	}
	if sch, ok := r.scholarships[id]; ok {
		return sch, nil
	}
	return scholarship.Scholarship{}, errors.New("not found")
}

func (r *stubScholarshipRepo) UpsertScholarships(ctx context.Context, items []repository.ScholarshipUpsert) error {
	return nil
}

func (r *stubScholarshipRepo) CountScholarships(ctx context.Context) (int, error) {
	return 0, nil
}

func TestMatchListReturnsMappedMatches(t *testing.T) {
	studentID := uuid.New()
	scholarshipID := uuid.New()
	amount := int64(500_000)
	calculatedAt := time.Now().UTC()

	matches := &stubMatchRepo{
		total: 1,
		details: []repository.StudentMatchDetail{
			{
				ScholarshipMatch: match.ScholarshipMatch{
					StudentID:          studentID,
					ScholarshipID:      scholarshipID,
					OverallScore:       88,
					AcademicScore:      90,
					SuccessProbability: 0.66,
					CompetitionLevel:   "moderate",
					StrategicValue:     "high",
					Tier:               "must_apply",
					CalculatedAt:       calculatedAt,
				},
				ScholarshipName: "STEM Leaders Award",
				AmountCents:     &amount,
			},
		},
	}
	students := &stubStudentRepo{existing: map[uuid.UUID]bool{studentID: true}}

	u := NewMatchListUsecase(matches, students, nil, nil)
	data, err := u.ListForStudent(context.Background(), studentID, 10, 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if data.Total != 1 || len(data.Matches) != 1 {
		t.Fatalf("expected 1 match, got total=%d len=%d", data.Total, len(data.Matches))
	}

	m := data.Matches[0]
	if m.ScholarshipName != "STEM Leaders Award" {
		t.Fatalf("expected scholarship name to be joined in, got %q", m.ScholarshipName)
	}
	if m.OverallScore != 88 || m.Tier != "must_apply" {
		t.Fatalf("expected score fields to map, got %+v", m)
	}
	if m.AmountCents == nil || *m.AmountCents != amount {
		t.Fatalf("expected amount %d, got %v", amount, m.AmountCents)
	}
	if m.DimensionScores.Academic != 90 {
		t.Fatalf("expected academic dimension 90, got %d", m.DimensionScores.Academic)
	}
}

func TestMatchListUnknownStudent(t *testing.T) {
	u := NewMatchListUsecase(&stubMatchRepo{}, &stubStudentRepo{}, nil, nil)

	if _, err := u.ListForStudent(context.Background(), uuid.New(), 10, 0); !errors.Is(err, ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound, got %v", err)
	}
	if _, err := u.ListForStudent(context.Background(), uuid.Nil, 10, 0); !errors.Is(err, ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound for the nil ID, got %v", err)
	}
}

func TestMatchListClampsPagination(t *testing.T) {
	studentID := uuid.New()
	matches := &stubMatchRepo{}
	students := &stubStudentRepo{existing: map[uuid.UUID]bool{studentID: true}}

	u := NewMatchListUsecase(matches, students, nil, nil)
	data, err := u.ListForStudent(context.Background(), studentID, 1000, -5)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if matches.lastLimit != 50 || matches.lastOffset != 0 {
		t.Fatalf("expected limit clamped to 50 and offset to 0, got %d/%d", matches.lastLimit, matches.lastOffset)
	}
	if data.Limit != 50 || data.Offset != 0 {
		t.Fatalf("expected clamped values in the response, got %d/%d", data.Limit, data.Offset)
	}
}

func TestMatchListRepositoryErrorMasked(t *testing.T) {
	studentID := uuid.New()
	matches := &stubMatchRepo{listErr: errors.New("connection refused")}
	students := &stubStudentRepo{existing: map[uuid.UUID]bool{studentID: true}}

	u := NewMatchListUsecase(matches, students, nil, nil)
	if _, err := u.ListForStudent(context.Background(), studentID, 10, 0); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

func TestMatchListEmptyResultIsNotAnError(t *testing.T) {
	studentID := uuid.New()
	students := &stubStudentRepo{existing: map[uuid.UUID]bool{studentID: true}}

	u := NewMatchListUsecase(&stubMatchRepo{}, students, nil, nil)
	data, err := u.ListForStudent(context.Background(), studentID, 10, 0)
	if err != nil {
		t.Fatalf("expected no error for an empty match list, got %v", err)
	}
	if data.Matches == nil || len(data.Matches) != 0 {
		t.Fatalf("expected an empty, non-nil match slice, got %v", data.Matches)
	}
}
