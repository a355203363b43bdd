package usecase

import (
	"context"
	"errors"

	"scholar-sync/internal/delivery/http/dto"
	"scholar-sync/internal/domain/eligibility"
	"scholar-sync/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrScholarshipNotFound = errors.New("scholarship not found")

type EligibilityUsecase interface {
	Check(ctx context.Context, studentID, scholarshipID uuid.UUID) (dto.EligibilityCheckResponseData, error)
}

// Eligibility runs the hard filters for one student against one
// scholarship, with early exit off so the response lists every failing
// criterion rather than just the first.
type Eligibility struct {
	students     repository.StudentRepository
	scholarships repository.ScholarshipRepository
}

func NewEligibilityUsecase(students repository.StudentRepository, scholarships repository.ScholarshipRepository) *Eligibility {
	return &Eligibility{students: students, scholarships: scholarships}
}

func (u *Eligibility) Check(ctx context.Context, studentID, scholarshipID uuid.UUID) (dto.EligibilityCheckResponseData, error) {
	if studentID == uuid.Nil {
		return dto.EligibilityCheckResponseData{}, ErrStudentNotFound
	}
	if scholarshipID == uuid.Nil {
		return dto.EligibilityCheckResponseData{}, ErrScholarshipNotFound
	}

	st, err := u.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dto.EligibilityCheckResponseData{}, ErrStudentNotFound
		}
		return dto.EligibilityCheckResponseData{}, ErrInternal
	}

	sch, err := u.scholarships.GetByID(ctx, scholarshipID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dto.EligibilityCheckResponseData{}, ErrScholarshipNotFound
		}
		return dto.EligibilityCheckResponseData{}, ErrInternal
	}

	cfg := eligibility.DefaultConfig()
	cfg.EarlyExit = false
	result := eligibility.ApplyHardFilters(&st, &sch, &cfg)

	data := dto.EligibilityCheckResponseData{
		ScholarshipID:  scholarshipID.String(),
		Eligible:       result.Eligible,
		FailedCriteria: make([]dto.FailedCriterionResponse, 0, len(result.FailedCriteria)),
	}
	for _, fc := range result.FailedCriteria {
		data.FailedCriteria = append(data.FailedCriteria, dto.FailedCriterionResponse{
			Dimension: string(fc.Dimension),
			Criterion: fc.Criterion,
			Required:  fc.Required,
			Actual:    fc.Actual,
		})
	}
	return data, nil
}
