package student

import (
	"time"

	"github.com/google/uuid"
)

type Student struct {
	ID        uuid.UUID
	Email     string
	FirstName *string
	LastName  *string
	CreatedAt time.Time
	UpdatedAt time.Time

	Profile *Profile
}

// Profile carries everything the eligibility filters read. Every field a
// student may simply not have filled in is a pointer or a slice: nil means
// "unknown", which the filters treat differently from zero or false.
type Profile struct {
	ID     uuid.UUID
	UserID uuid.UUID

	// academic
	GPA       *float64
	GPAScale  *float64
	SATScore  *int
	ACTScore  *int
	ClassRank *int
	ClassSize *int

	// demographic
	Gender      *string
	Ethnicity   []string
	DateOfBirth *time.Time
	State       *string
	City        *string

	// major / field
	IntendedMajor *string
	FieldOfStudy  *string
	CareerGoals   *string

	// experience
	VolunteerHours   *int
	Extracurriculars []Activity
	LeadershipRoles  []LeadershipRole
	WorkExperience   []WorkExperience
	AwardsHonors     []Award

	// financial
	FinancialNeedLevel *string
	EFCRange           *string
	PellGrantEligible  *bool

	// special
	FirstGeneration     *bool
	MilitaryAffiliation *bool
	Disability          *bool

	CompletenessPct int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Financial need tiers, ordered. The lowest tier does not satisfy a
// requires-financial-need criterion.
const (
	NeedLevelNone     = "none"
	NeedLevelLow      = "low"
	NeedLevelModerate = "moderate"
	NeedLevelHigh     = "high"
	NeedLevelCritical = "critical"
)

type Activity struct {
	Name        string
	Category    *string
	YearsActive *int
}

type LeadershipRole struct {
	Title        string
	Organization *string
}

type WorkExperience struct {
	Title     string
	Company   *string
	StartDate time.Time
	// EndDate nil means the position is ongoing.
	EndDate *time.Time
}

type Award struct {
	Name  string
	Level *string
	Year  *int
}

// Age returns the student's age in full years at the given instant using
// calendar arithmetic: subtract years, then back off one if the birthday has
// not yet occurred this year. Day-count division drifts around leap years.
func (p *Profile) Age(now time.Time) *int {
	if p == nil || p.DateOfBirth == nil {
		return nil
	}
	dob := *p.DateOfBirth
	years := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	if years < 0 {
		years = 0
	}
	return &years
}

// NormalizedGPA converts the reported GPA to a 4.0 scale. A missing scale is
// assumed to already be 4.0.
func (p *Profile) NormalizedGPA() *float64 {
	if p == nil || p.GPA == nil {
		return nil
	}
	gpa := *p.GPA
	if p.GPAScale != nil && *p.GPAScale > 0 && *p.GPAScale != 4.0 {
		gpa = gpa * 4.0 / *p.GPAScale
	}
	return &gpa
}

// TotalWorkMonths sums, per work entry, the whole months between the start
// date and the end date (or now while ongoing), flooring each entry at zero.
func (p *Profile) TotalWorkMonths(now time.Time) *int {
	if p == nil || p.WorkExperience == nil {
		return nil
	}
	total := 0
	for _, w := range p.WorkExperience {
		end := now
		if w.EndDate != nil {
			end = *w.EndDate
		}
		months := monthsBetween(w.StartDate, end)
		if months > 0 {
			total += months
		}
	}
	return &total
}

func monthsBetween(start, end time.Time) int {
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if end.Day() < start.Day() {
		months--
	}
	return months
}
