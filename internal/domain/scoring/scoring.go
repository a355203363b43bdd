// Package scoring defines the contract the matching pipeline uses to score
// an eligible (student, scholarship) pair, plus a default weighted
// implementation. The pipeline treats the Collaborator as a black box: it
// calls it once per eligible pair and persists the result verbatim.
package scoring

import (
	"context"
	"math"
	"strings"
	"time"

	"scholar-sync/internal/domain/scholarship"
	"scholar-sync/internal/domain/student"
)

// Tiers, highest urgency first. The top two are the "act now"
// classifications that trigger notifications.
const (
	TierMustApply   = "must_apply"
	TierShouldApply = "should_apply"
	TierConsider    = "consider"
	TierReach       = "reach"
)

// TierRank orders tiers for transition checks; lower is more urgent.
func TierRank(tier string) int {
	switch tier {
	case TierMustApply:
		return 0
	case TierShouldApply:
		return 1
	case TierConsider:
		return 2
	case TierReach:
		return 3
	}
	return 4
}

// QualifiesForNotification reports whether a tier is in the top two.
func QualifiesForNotification(tier string) bool {
	return TierRank(tier) <= 1
}

const (
	CompetitionLow      = "low"
	CompetitionModerate = "moderate"
	CompetitionHigh     = "high"

	StrategicValueHigh     = "high"
	StrategicValueModerate = "moderate"
	StrategicValueLow      = "low"
)

type DimensionScores struct {
	Academic    int
	Demographic int
	MajorField  int
	Experience  int
	Financial   int
	Special     int
}

type Score struct {
	Overall            int
	Dimensions         DimensionScores
	SuccessProbability float64
	CompetitionLevel   string
	StrategicValue     string
	Tier               string
}

type Collaborator interface {
	Score(ctx context.Context, st *student.Student, sch *scholarship.Scholarship) (Score, error)
}

// Engine is the default Collaborator: each dimension contributes 0-100
// based on how far the profile clears the scholarship's constraints on that
// axis, and the overall score is a weighted composite.
type Engine struct {
	now func() time.Time
}

func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// Weights per dimension, summing to 100.
const (
	weightAcademic    = 30.0
	weightDemographic = 15.0
	weightMajorField  = 20.0
	weightExperience  = 15.0
	weightFinancial   = 10.0
	weightSpecial     = 10.0
)

func (e *Engine) Score(ctx context.Context, st *student.Student, sch *scholarship.Scholarship) (Score, error) {
	_ = ctx

	var profile *student.Profile
	if st != nil {
		profile = st.Profile
	}
	var criteria *scholarship.EligibilityCriteria
	if sch != nil && sch.Criteria != nil {
		criteria = sch.Criteria
	}

	now := time.Now().UTC()
	if e != nil && e.now != nil {
		now = e.now().UTC()
	}

	dims := DimensionScores{
		Academic:    scoreAcademic(profile, criteriaAcademic(criteria)),
		Demographic: scorePassedAxis(criteria == nil || criteria.Demographic == nil),
		MajorField:  scoreMajorField(profile, criteriaMajorField(criteria)),
		Experience:  scoreExperience(profile, criteriaExperience(criteria), now),
		Financial:   scorePassedAxis(criteria == nil || criteria.Financial == nil),
		Special:     scorePassedAxis(criteria == nil || criteria.Special == nil),
	}

	total := weightAcademic*float64(dims.Academic) +
		weightDemographic*float64(dims.Demographic) +
		weightMajorField*float64(dims.MajorField) +
		weightExperience*float64(dims.Experience) +
		weightFinancial*float64(dims.Financial) +
		weightSpecial*float64(dims.Special)

	overall := clampInt(int(math.Round(total/100.0)), 0, 100)

	competition := competitionFor(sch)
	probability := successProbability(overall, competition)
	strategic := strategicValueFor(sch, overall)
	tier := tierFor(overall, probability)

	return Score{
		Overall:            overall,
		Dimensions:         dims,
		SuccessProbability: probability,
		CompetitionLevel:   competition,
		StrategicValue:     strategic,
		Tier:               tier,
	}, nil
}

// scorePassedAxis: an unrestricted axis is a full fit; a restricted axis the
// student already cleared in hard filtering is a strong but not perfect one.
func scorePassedAxis(unrestricted bool) int {
	if unrestricted {
		return 100
	}
	return 90
}

func scoreAcademic(profile *student.Profile, c *scholarship.AcademicCriteria) int {
	if c == nil {
		return 100
	}

	score := 100.0
	samples := 0

	if c.MinGPA != nil {
		gpa := profile.NormalizedGPA()
		if gpa != nil {
			score = math.Min(score, headroom(*gpa, *c.MinGPA, 4.0)*100)
			samples++
		}
	}
	if c.MinSAT != nil && profile != nil && profile.SATScore != nil {
		score = math.Min(score, headroom(float64(*profile.SATScore), float64(*c.MinSAT), 1600)*100)
		samples++
	}
	if c.MinACT != nil && profile != nil && profile.ACTScore != nil {
		score = math.Min(score, headroom(float64(*profile.ACTScore), float64(*c.MinACT), 36)*100)
		samples++
	}

	if samples == 0 {
		return 80
	}
	return clampInt(int(math.Round(score)), 0, 100)
}

// headroom maps a value at the constraint floor to 0.6 and at the scale
// ceiling to 1.0, so barely clearing a bar scores lower than clearing it
// comfortably.
func headroom(value, floor, ceiling float64) float64 {
	if ceiling <= floor {
		return 1
	}
	frac := (value - floor) / (ceiling - floor)
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return 0.6 + 0.4*frac
}

func scoreMajorField(profile *student.Profile, c *scholarship.MajorFieldCriteria) int {
	if c == nil {
		return 100
	}
	if len(c.EligibleMajors) > 0 && profile != nil && profile.IntendedMajor != nil {
		for _, m := range c.EligibleMajors {
			if strings.EqualFold(strings.TrimSpace(m), strings.TrimSpace(*profile.IntendedMajor)) {
				return 100
			}
		}
	}
	return 85
}

func scoreExperience(profile *student.Profile, c *scholarship.ExperienceCriteria, now time.Time) int {
	if c == nil {
		return 100
	}
	score := 100.0
	if c.MinVolunteerHours != nil && profile != nil && profile.VolunteerHours != nil {
		score = math.Min(score, headroom(float64(*profile.VolunteerHours), float64(*c.MinVolunteerHours), float64(*c.MinVolunteerHours)*3)*100)
	}
	if c.MinWorkExperienceMonths != nil {
		if months := profile.TotalWorkMonths(now); months != nil {
			score = math.Min(score, headroom(float64(*months), float64(*c.MinWorkExperienceMonths), float64(*c.MinWorkExperienceMonths)*3)*100)
		}
	}
	return clampInt(int(math.Round(score)), 0, 100)
}

func criteriaAcademic(c *scholarship.EligibilityCriteria) *scholarship.AcademicCriteria {
	if c == nil {
		return nil
	}
	return c.Academic
}

func criteriaMajorField(c *scholarship.EligibilityCriteria) *scholarship.MajorFieldCriteria {
	if c == nil {
		return nil
	}
	return c.MajorField
}

func criteriaExperience(c *scholarship.EligibilityCriteria) *scholarship.ExperienceCriteria {
	if c == nil {
		return nil
	}
	return c.Experience
}

// competitionFor uses award size as a competition proxy: bigger awards draw
// bigger applicant pools.
func competitionFor(sch *scholarship.Scholarship) string {
	if sch == nil || sch.AmountCents == nil {
		return CompetitionModerate
	}
	switch {
	case *sch.AmountCents >= 1_000_000: // $10,000+
		return CompetitionHigh
	case *sch.AmountCents >= 100_000: // $1,000+
		return CompetitionModerate
	default:
		return CompetitionLow
	}
}

func successProbability(overall int, competition string) float64 {
	p := float64(overall) / 100.0
	switch competition {
	case CompetitionHigh:
		p *= 0.5
	case CompetitionModerate:
		p *= 0.75
	}
	return math.Round(p*100) / 100
}

func strategicValueFor(sch *scholarship.Scholarship, overall int) string {
	amount := int64(0)
	if sch != nil && sch.AmountCents != nil {
		amount = *sch.AmountCents
	}
	switch {
	case overall >= 80 && amount >= 500_000: // $5,000+
		return StrategicValueHigh
	case overall >= 60:
		return StrategicValueModerate
	default:
		return StrategicValueLow
	}
}

func tierFor(overall int, probability float64) string {
	switch {
	case overall >= 85 && probability >= 0.5:
		return TierMustApply
	case overall >= 70:
		return TierShouldApply
	case overall >= 50:
		return TierConsider
	default:
		return TierReach
	}
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
