package eligibility

import (
	"scholar-sync/internal/domain/scholarship"
	"scholar-sync/internal/domain/student"
)

// FilterSpecial evaluates the boolean special-population requirements:
// first-generation student, military affiliation and disability. Each is a
// required-true flag; an unset profile flag fails closed.
func FilterSpecial(profile *student.Profile, criteria *scholarship.SpecialCriteria) Result {
	if criteria == nil {
		return pass()
	}

	var failed []FailedCriterion

	failed = appendRequiredFlag(failed, "firstGenerationRequired", criteria.FirstGenerationRequired, flagOf(profile, func(p *student.Profile) *bool { return p.FirstGeneration }))
	failed = appendRequiredFlag(failed, "militaryAffiliationRequired", criteria.MilitaryAffiliationRequired, flagOf(profile, func(p *student.Profile) *bool { return p.MilitaryAffiliation }))
	failed = appendRequiredFlag(failed, "disabilityRequired", criteria.DisabilityRequired, flagOf(profile, func(p *student.Profile) *bool { return p.Disability }))

	return resultOf(failed)
}

func flagOf(profile *student.Profile, get func(*student.Profile) *bool) *bool {
	if profile == nil {
		return nil
	}
	return get(profile)
}

func appendRequiredFlag(failed []FailedCriterion, name string, required, actual *bool) []FailedCriterion {
	if required == nil || !*required {
		return failed
	}
	if actual == nil {
		return append(failed, fail(DimensionSpecial, name, true, nil))
	}
	if !*actual {
		return append(failed, fail(DimensionSpecial, name, true, false))
	}
	return failed
}
