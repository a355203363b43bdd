package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"scholar-sync/internal/delivery/http/dto"
	"scholar-sync/internal/infrastructure/cache"
	"scholar-sync/internal/repository"

	"github.com/google/uuid"
)

var ErrStudentNotFound = errors.New("student not found")

type MatchListUsecase interface {
	ListForStudent(ctx context.Context, studentID uuid.UUID, limit, offset int) (dto.MatchListResponseData, error)
}

type MatchList struct {
	matches  repository.MatchRepository
	students repository.StudentRepository
	cache    *cache.Redis
	log      *log.Logger
}

func NewMatchListUsecase(matches repository.MatchRepository, students repository.StudentRepository, redis *cache.Redis, logger *log.Logger) *MatchList {
	if logger == nil {
		logger = log.Default()
	}
	return &MatchList{matches: matches, students: students, cache: redis, log: logger}
}

func (u *MatchList) ListForStudent(ctx context.Context, studentID uuid.UUID, limit, offset int) (dto.MatchListResponseData, error) {
	if studentID == uuid.Nil {
		return dto.MatchListResponseData{}, ErrStudentNotFound
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	key := matchListCacheKey(studentID, limit, offset)
	var cached dto.MatchListResponseData
	if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	exists, err := u.students.ExistsByID(ctx, studentID)
	if err != nil {
		return dto.MatchListResponseData{}, ErrInternal
	}
	if !exists {
		return dto.MatchListResponseData{}, ErrStudentNotFound
	}

	details, err := u.matches.ListDetailedByStudent(ctx, studentID, limit, offset)
	if err != nil {
		return dto.MatchListResponseData{}, ErrInternal
	}
	total, err := u.matches.CountByStudent(ctx, studentID)
	if err != nil {
		return dto.MatchListResponseData{}, ErrInternal
	}

	data := dto.MatchListResponseData{
		Matches: make([]dto.MatchResponse, 0, len(details)),
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	}
	for _, d := range details {
		data.Matches = append(data.Matches, dto.MatchResponse{
			ScholarshipID:   d.ScholarshipID,
			ScholarshipName: d.ScholarshipName,
			AmountCents:     d.AmountCents,
			Deadline:        d.Deadline,
			OverallScore:    d.OverallScore,
			DimensionScores: dto.MatchDimensionScoresResponse{
				Academic:    d.AcademicScore,
				Demographic: d.DemographicScore,
				MajorField:  d.MajorFieldScore,
				Experience:  d.ExperienceScore,
				Financial:   d.FinancialScore,
				Special:     d.SpecialScore,
			},
			SuccessProbability: d.SuccessProbability,
			CompetitionLevel:   d.CompetitionLevel,
			StrategicValue:     d.StrategicValue,
			Tier:               d.Tier,
			CalculatedAt:       d.CalculatedAt,
		})
	}

	if err := u.cache.SetJSON(ctx, key, data, 5*time.Minute); err != nil {
		u.log.Printf("match_list cache=set status=error key=%s err=%v", key, err)
	}

	return data, nil
}

func matchListCacheKey(studentID uuid.UUID, limit, offset int) string {
	return fmt.Sprintf("matches:student:%s:%d:%d", studentID, limit, offset)
}
