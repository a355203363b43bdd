package eligibility

import (
	"strings"

	"scholar-sync/internal/domain/scholarship"
	"scholar-sync/internal/domain/student"
)

// FilterMajorField evaluates major, field-of-study and career-goal keyword
// constraints. Inclusion lists fail closed on missing data; the exclusion
// list only fails a student whose declared major appears in it, so an
// undeclared major always passes exclusion.
func FilterMajorField(profile *student.Profile, criteria *scholarship.MajorFieldCriteria) Result {
	if criteria == nil {
		return pass()
	}

	var failed []FailedCriterion

	var major *string
	if profile != nil {
		major = profile.IntendedMajor
	}

	if len(criteria.EligibleMajors) > 0 {
		if major == nil {
			failed = append(failed, fail(DimensionMajorField, "eligibleMajors", criteria.EligibleMajors, nil))
		} else if !anyMatch([]string{*major}, criteria.EligibleMajors) {
			failed = append(failed, fail(DimensionMajorField, "eligibleMajors", criteria.EligibleMajors, *major))
		}
	}

	if len(criteria.ExcludedMajors) > 0 && major != nil {
		if anyMatch([]string{*major}, criteria.ExcludedMajors) {
			failed = append(failed, fail(DimensionMajorField, "excludedMajors", criteria.ExcludedMajors, *major))
		}
	}

	if len(criteria.RequiredFieldOfStudy) > 0 {
		var field *string
		if profile != nil {
			field = profile.FieldOfStudy
		}
		if field == nil {
			failed = append(failed, fail(DimensionMajorField, "requiredFieldOfStudy", criteria.RequiredFieldOfStudy, nil))
		} else if !anyMatch([]string{*field}, criteria.RequiredFieldOfStudy) {
			failed = append(failed, fail(DimensionMajorField, "requiredFieldOfStudy", criteria.RequiredFieldOfStudy, *field))
		}
	}

	if len(criteria.CareerGoalKeywords) > 0 {
		var goals *string
		if profile != nil {
			goals = profile.CareerGoals
		}
		if goals == nil || strings.TrimSpace(*goals) == "" {
			failed = append(failed, fail(DimensionMajorField, "careerGoalKeywords", criteria.CareerGoalKeywords, nil))
		} else if !containsAnyKeyword(*goals, criteria.CareerGoalKeywords) {
			failed = append(failed, fail(DimensionMajorField, "careerGoalKeywords", criteria.CareerGoalKeywords, *goals))
		}
	}

	return resultOf(failed)
}

// containsAnyKeyword does a case-insensitive substring check of each keyword
// against the free text.
func containsAnyKeyword(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
