package eligibility

import (
	"scholar-sync/internal/domain/scholarship"
	"scholar-sync/internal/domain/student"
)

// DimensionSet enables or disables individual dimensions. One explicit bool
// per dimension: adding a dimension is a compile-time change, and skipping
// one is always a visible opt-out in the config, never an implicit pass.
type DimensionSet struct {
	Academic    bool
	Demographic bool
	MajorField  bool
	Experience  bool
	Financial   bool
	Special     bool
}

func AllDimensions() DimensionSet {
	return DimensionSet{
		Academic:    true,
		Demographic: true,
		MajorField:  true,
		Experience:  true,
		Financial:   true,
		Special:     true,
	}
}

func (s DimensionSet) enabled(d Dimension) bool {
	switch d {
	case DimensionAcademic:
		return s.Academic
	case DimensionDemographic:
		return s.Demographic
	case DimensionMajorField:
		return s.MajorField
	case DimensionExperience:
		return s.Experience
	case DimensionFinancial:
		return s.Financial
	case DimensionSpecial:
		return s.Special
	}
	return false
}

// Config controls engine behavior. EarlyExit stops at the first failing
// dimension; disabling it collects every failure across all dimensions and
// exists for statistics and debugging only. The Eligible verdict is
// identical either way.
type Config struct {
	EarlyExit  bool
	Dimensions DimensionSet
}

func DefaultConfig() Config {
	return Config{EarlyExit: true, Dimensions: AllDimensions()}
}

// ApplyHardFilters runs the enabled dimension filters in fixed order and
// composes their verdicts into a single eligibility decision for the
// (student, scholarship) pair.
func ApplyHardFilters(st *student.Student, sch *scholarship.Scholarship, cfg *Config) Result {
	c := DefaultConfig()
	if cfg != nil {
		c = *cfg
	}

	var profile *student.Profile
	if st != nil {
		profile = st.Profile
	}
	var criteria *scholarship.EligibilityCriteria
	if sch != nil {
		criteria = sch.Criteria
	}

	var failed []FailedCriterion

	for _, dim := range Dimensions {
		if !c.Dimensions.enabled(dim) {
			continue
		}

		r := runDimension(dim, profile, criteria)
		if r.Eligible {
			continue
		}

		if c.EarlyExit {
			return resultOf(r.FailedCriteria)
		}
		failed = append(failed, r.FailedCriteria...)
	}

	return resultOf(failed)
}

func runDimension(dim Dimension, profile *student.Profile, criteria *scholarship.EligibilityCriteria) Result {
	switch dim {
	case DimensionAcademic:
		return FilterAcademic(profile, academicOf(criteria))
	case DimensionDemographic:
		return FilterDemographic(profile, demographicOf(criteria))
	case DimensionMajorField:
		return FilterMajorField(profile, majorFieldOf(criteria))
	case DimensionExperience:
		return FilterExperience(profile, experienceOf(criteria))
	case DimensionFinancial:
		return FilterFinancial(profile, financialOf(criteria))
	case DimensionSpecial:
		return FilterSpecial(profile, specialOf(criteria))
	}
	return pass()
}

func academicOf(c *scholarship.EligibilityCriteria) *scholarship.AcademicCriteria {
	if c == nil {
		return nil
	}
	return c.Academic
}

func demographicOf(c *scholarship.EligibilityCriteria) *scholarship.DemographicCriteria {
	if c == nil {
		return nil
	}
	return c.Demographic
}

func majorFieldOf(c *scholarship.EligibilityCriteria) *scholarship.MajorFieldCriteria {
	if c == nil {
		return nil
	}
	return c.MajorField
}

func experienceOf(c *scholarship.EligibilityCriteria) *scholarship.ExperienceCriteria {
	if c == nil {
		return nil
	}
	return c.Experience
}

func financialOf(c *scholarship.EligibilityCriteria) *scholarship.FinancialCriteria {
	if c == nil {
		return nil
	}
	return c.Financial
}

func specialOf(c *scholarship.EligibilityCriteria) *scholarship.SpecialCriteria {
	if c == nil {
		return nil
	}
	return c.Special
}
