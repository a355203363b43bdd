package eligibility

import (
	"scholar-sync/internal/domain/scholarship"
	"scholar-sync/internal/domain/student"
)

// FilterAcademic evaluates GPA, test-score and class-rank constraints. GPA
// bounds are interpreted on a 4.0 scale; the student's GPA is normalized
// from their reported scale before comparison.
func FilterAcademic(profile *student.Profile, criteria *scholarship.AcademicCriteria) Result {
	if criteria == nil {
		return pass()
	}

	var failed []FailedCriterion

	if criteria.MinGPA != nil || criteria.MaxGPA != nil {
		gpa := profile.NormalizedGPA()
		if criteria.MinGPA != nil {
			if gpa == nil {
				failed = append(failed, fail(DimensionAcademic, "minGPA", *criteria.MinGPA, nil))
			} else if *gpa < *criteria.MinGPA {
				failed = append(failed, fail(DimensionAcademic, "minGPA", *criteria.MinGPA, *gpa))
			}
		}
		if criteria.MaxGPA != nil {
			if gpa == nil {
				failed = append(failed, fail(DimensionAcademic, "maxGPA", *criteria.MaxGPA, nil))
			} else if *gpa > *criteria.MaxGPA {
				failed = append(failed, fail(DimensionAcademic, "maxGPA", *criteria.MaxGPA, *gpa))
			}
		}
	}

	var sat *int
	if profile != nil {
		sat = profile.SATScore
	}
	failed = appendIntRange(failed, DimensionAcademic, "minSAT", "maxSAT", criteria.MinSAT, criteria.MaxSAT, sat)

	var act *int
	if profile != nil {
		act = profile.ACTScore
	}
	failed = appendIntRange(failed, DimensionAcademic, "minACT", "maxACT", criteria.MinACT, criteria.MaxACT, act)

	if criteria.ClassRankPercentile != nil {
		pct := classRankPercentile(profile)
		if pct == nil {
			failed = append(failed, fail(DimensionAcademic, "classRankPercentile", *criteria.ClassRankPercentile, nil))
		} else if *pct > *criteria.ClassRankPercentile {
			failed = append(failed, fail(DimensionAcademic, "classRankPercentile", *criteria.ClassRankPercentile, *pct))
		}
	}

	return resultOf(failed)
}

// classRankPercentile computes (rank / size) * 100, lower is better. Both
// rank and size must be known and size positive.
func classRankPercentile(profile *student.Profile) *float64 {
	if profile == nil || profile.ClassRank == nil || profile.ClassSize == nil {
		return nil
	}
	if *profile.ClassSize <= 0 {
		return nil
	}
	pct := float64(*profile.ClassRank) / float64(*profile.ClassSize) * 100.0
	return &pct
}

func appendIntRange(failed []FailedCriterion, dim Dimension, minName, maxName string, minReq, maxReq, actual *int) []FailedCriterion {
	if minReq != nil {
		if actual == nil {
			failed = append(failed, fail(dim, minName, *minReq, nil))
		} else if *actual < *minReq {
			failed = append(failed, fail(dim, minName, *minReq, *actual))
		}
	}
	if maxReq != nil {
		if actual == nil {
			failed = append(failed, fail(dim, maxName, *maxReq, nil))
		} else if *actual > *maxReq {
			failed = append(failed, fail(dim, maxName, *maxReq, *actual))
		}
	}
	return failed
}
