package dto

import (
	"time"

	"github.com/google/uuid"
)

type MatchDimensionScoresResponse struct {
	Academic    int `json:"academic"`
	Demographic int `json:"demographic"`
	MajorField  int `json:"major_field"`
	Experience  int `json:"experience"`
	Financial   int `json:"financial"`
	Special     int `json:"special"`
}

type MatchResponse struct {
	ScholarshipID   uuid.UUID  `json:"scholarship_id"`
	ScholarshipName string     `json:"scholarship_name"`
	AmountCents     *int64     `json:"amount_cents"`
	Deadline        *time.Time `json:"deadline"`

	OverallScore       int                          `json:"overall_score"`
	DimensionScores    MatchDimensionScoresResponse `json:"dimension_scores"`
	SuccessProbability float64                      `json:"success_probability"`
	CompetitionLevel   string                       `json:"competition_level"`
	StrategicValue     string                       `json:"strategic_value"`
	Tier               string                       `json:"tier"`

	CalculatedAt time.Time `json:"calculated_at"`
}

type MatchListResponseData struct {
	Matches []MatchResponse `json:"matches"`
	Total   int             `json:"total"`
	Limit   int             `json:"limit"`
	Offset  int             `json:"offset"`
}
