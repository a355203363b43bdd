package eligibility

import (
	"strings"
	"time"

	"scholar-sync/internal/domain/scholarship"
	"scholar-sync/internal/domain/student"
)

// FilterDemographic evaluates gender, ethnicity, age and location
// constraints. Inclusion lists use any-match semantics: one overlapping
// value passes the whole constraint.
func FilterDemographic(profile *student.Profile, criteria *scholarship.DemographicCriteria) Result {
	return filterDemographicAt(profile, criteria, time.Now().UTC())
}

func filterDemographicAt(profile *student.Profile, criteria *scholarship.DemographicCriteria, now time.Time) Result {
	if criteria == nil {
		return pass()
	}

	var failed []FailedCriterion

	if criteria.RequiredGender != nil {
		var gender *string
		if profile != nil {
			gender = profile.Gender
		}
		if gender == nil {
			failed = append(failed, fail(DimensionDemographic, "requiredGender", *criteria.RequiredGender, nil))
		} else if !strings.EqualFold(*gender, *criteria.RequiredGender) {
			failed = append(failed, fail(DimensionDemographic, "requiredGender", *criteria.RequiredGender, *gender))
		}
	}

	if len(criteria.RequiredEthnicity) > 0 {
		var values []string
		if profile != nil {
			values = profile.Ethnicity
		}
		if len(values) == 0 {
			failed = append(failed, fail(DimensionDemographic, "requiredEthnicity", criteria.RequiredEthnicity, nil))
		} else if !anyMatch(values, criteria.RequiredEthnicity) {
			failed = append(failed, fail(DimensionDemographic, "requiredEthnicity", criteria.RequiredEthnicity, values))
		}
	}

	if criteria.MinAge != nil || criteria.MaxAge != nil {
		age := profile.Age(now)
		if criteria.MinAge != nil {
			if age == nil {
				failed = append(failed, fail(DimensionDemographic, "minAge", *criteria.MinAge, nil))
			} else if *age < *criteria.MinAge {
				failed = append(failed, fail(DimensionDemographic, "minAge", *criteria.MinAge, *age))
			}
		}
		if criteria.MaxAge != nil {
			if age == nil {
				failed = append(failed, fail(DimensionDemographic, "maxAge", *criteria.MaxAge, nil))
			} else if *age > *criteria.MaxAge {
				failed = append(failed, fail(DimensionDemographic, "maxAge", *criteria.MaxAge, *age))
			}
		}
	}

	failed = appendLocationConstraint(failed, "requiredState", criteria.RequiredState, stateOf(profile))
	failed = appendLocationConstraint(failed, "requiredCity", criteria.RequiredCity, cityOf(profile))

	return resultOf(failed)
}

func stateOf(profile *student.Profile) *string {
	if profile == nil {
		return nil
	}
	return profile.State
}

func cityOf(profile *student.Profile) *string {
	if profile == nil {
		return nil
	}
	return profile.City
}

func appendLocationConstraint(failed []FailedCriterion, name string, required []string, actual *string) []FailedCriterion {
	if len(required) == 0 {
		return failed
	}
	if actual == nil {
		return append(failed, fail(DimensionDemographic, name, required, nil))
	}
	if !anyMatch([]string{*actual}, required) {
		return append(failed, fail(DimensionDemographic, name, required, *actual))
	}
	return failed
}

// anyMatch reports whether any student value equals any required value,
// case-insensitively.
func anyMatch(values, required []string) bool {
	for _, v := range values {
		for _, r := range required {
			if strings.EqualFold(strings.TrimSpace(v), strings.TrimSpace(r)) {
				return true
			}
		}
	}
	return false
}
