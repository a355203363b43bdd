package match

import (
	"time"

	"github.com/google/uuid"
)

// ScholarshipMatch is the persisted outcome of a scored eligible pair. The
// unique (StudentID, ScholarshipID) pair is the identity: re-running the
// pipeline overwrites the score fields and CalculatedAt, never duplicates.
type ScholarshipMatch struct {
	ID            uuid.UUID
	StudentID     uuid.UUID
	ScholarshipID uuid.UUID

	OverallScore       int
	AcademicScore      int
	DemographicScore   int
	MajorFieldScore    int
	ExperienceScore    int
	FinancialScore     int
	SpecialScore       int
	SuccessProbability float64
	CompetitionLevel   string
	StrategicValue     string
	Tier               string

	CalculatedAt time.Time
}
