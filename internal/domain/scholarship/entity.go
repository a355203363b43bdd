package scholarship

import (
	"time"

	"github.com/google/uuid"
)

type Scholarship struct {
	ID           uuid.UUID
	SourceID     *uuid.UUID
	ExternalID   *string
	Name         string
	Provider     *string
	AmountCents  *int64
	Description  *string
	URL          *string
	Deadline     *time.Time
	Verified     bool
	Criteria     *EligibilityCriteria
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Source struct {
	ID        uuid.UUID
	Name      *string
	BaseURL   *string
	CreatedAt time.Time
}

// EligibilityCriteria holds one optional sub-object per dimension. A nil
// sub-object means the scholarship places no restriction on that axis, so
// the corresponding filter passes unconditionally.
type EligibilityCriteria struct {
	Academic    *AcademicCriteria    `json:"academic,omitempty"`
	Demographic *DemographicCriteria `json:"demographic,omitempty"`
	MajorField  *MajorFieldCriteria  `json:"majorField,omitempty"`
	Experience  *ExperienceCriteria  `json:"experience,omitempty"`
	Financial   *FinancialCriteria   `json:"financial,omitempty"`
	Special     *SpecialCriteria     `json:"special,omitempty"`
}

type AcademicCriteria struct {
	MinGPA *float64 `json:"minGPA,omitempty"`
	MaxGPA *float64 `json:"maxGPA,omitempty"`
	MinSAT *int     `json:"minSAT,omitempty"`
	MaxSAT *int     `json:"maxSAT,omitempty"`
	MinACT *int     `json:"minACT,omitempty"`
	MaxACT *int     `json:"maxACT,omitempty"`
	// ClassRankPercentile is a "top X%" bound: the student's computed
	// percentile must be less than or equal to it.
	ClassRankPercentile *float64 `json:"classRankPercentile,omitempty"`
}

type DemographicCriteria struct {
	RequiredGender    *string  `json:"requiredGender,omitempty"`
	RequiredEthnicity []string `json:"requiredEthnicity,omitempty"`
	MinAge            *int     `json:"minAge,omitempty"`
	MaxAge            *int     `json:"maxAge,omitempty"`
	RequiredState     []string `json:"requiredState,omitempty"`
	RequiredCity      []string `json:"requiredCity,omitempty"`
}

type MajorFieldCriteria struct {
	EligibleMajors       []string `json:"eligibleMajors,omitempty"`
	ExcludedMajors       []string `json:"excludedMajors,omitempty"`
	RequiredFieldOfStudy []string `json:"requiredFieldOfStudy,omitempty"`
	CareerGoalKeywords   []string `json:"careerGoalKeywords,omitempty"`
}

type ExperienceCriteria struct {
	MinVolunteerHours       *int  `json:"minVolunteerHours,omitempty"`
	MinExtracurriculars     *int  `json:"minExtracurriculars,omitempty"`
	LeadershipRequired      *bool `json:"leadershipRequired,omitempty"`
	MinWorkExperienceMonths *int  `json:"minWorkExperienceMonths,omitempty"`
	AwardsHonorsRequired    *bool `json:"awardsHonorsRequired,omitempty"`
}

type FinancialCriteria struct {
	RequiresFinancialNeed *bool    `json:"requiresFinancialNeed,omitempty"`
	MaxEFC                *float64 `json:"maxEFC,omitempty"`
	PellGrantRequired     *bool    `json:"pellGrantRequired,omitempty"`
}

type SpecialCriteria struct {
	FirstGenerationRequired     *bool `json:"firstGenerationRequired,omitempty"`
	MilitaryAffiliationRequired *bool `json:"militaryAffiliationRequired,omitempty"`
	DisabilityRequired          *bool `json:"disabilityRequired,omitempty"`
}
