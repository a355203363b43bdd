package eligibility

import (
	"time"

	"scholar-sync/internal/domain/scholarship"
	"scholar-sync/internal/domain/student"
)

// FilterExperience evaluates volunteer-hour, extracurricular, leadership,
// work-experience and awards constraints. Work experience months are derived
// from the entry date ranges; the boolean requirements are presence checks
// over the respective lists.
func FilterExperience(profile *student.Profile, criteria *scholarship.ExperienceCriteria) Result {
	return filterExperienceAt(profile, criteria, time.Now().UTC())
}

func filterExperienceAt(profile *student.Profile, criteria *scholarship.ExperienceCriteria, now time.Time) Result {
	if criteria == nil {
		return pass()
	}

	var failed []FailedCriterion

	if criteria.MinVolunteerHours != nil {
		var hours *int
		if profile != nil {
			hours = profile.VolunteerHours
		}
		if hours == nil {
			failed = append(failed, fail(DimensionExperience, "minVolunteerHours", *criteria.MinVolunteerHours, nil))
		} else if *hours < *criteria.MinVolunteerHours {
			failed = append(failed, fail(DimensionExperience, "minVolunteerHours", *criteria.MinVolunteerHours, *hours))
		}
	}

	if criteria.MinExtracurriculars != nil {
		if profile == nil || profile.Extracurriculars == nil {
			failed = append(failed, fail(DimensionExperience, "minExtracurriculars", *criteria.MinExtracurriculars, nil))
		} else if len(profile.Extracurriculars) < *criteria.MinExtracurriculars {
			failed = append(failed, fail(DimensionExperience, "minExtracurriculars", *criteria.MinExtracurriculars, len(profile.Extracurriculars)))
		}
	}

	if criteria.LeadershipRequired != nil && *criteria.LeadershipRequired {
		if profile == nil || len(profile.LeadershipRoles) == 0 {
			failed = append(failed, fail(DimensionExperience, "leadershipRequired", true, leadershipCount(profile)))
		}
	}

	if criteria.MinWorkExperienceMonths != nil {
		months := profile.TotalWorkMonths(now)
		if months == nil {
			failed = append(failed, fail(DimensionExperience, "minWorkExperienceMonths", *criteria.MinWorkExperienceMonths, nil))
		} else if *months < *criteria.MinWorkExperienceMonths {
			failed = append(failed, fail(DimensionExperience, "minWorkExperienceMonths", *criteria.MinWorkExperienceMonths, *months))
		}
	}

	if criteria.AwardsHonorsRequired != nil && *criteria.AwardsHonorsRequired {
		if profile == nil || len(profile.AwardsHonors) == 0 {
			failed = append(failed, fail(DimensionExperience, "awardsHonorsRequired", true, awardsCount(profile)))
		}
	}

	return resultOf(failed)
}

func leadershipCount(profile *student.Profile) interface{} {
	if profile == nil || profile.LeadershipRoles == nil {
		return nil
	}
	return len(profile.LeadershipRoles)
}

func awardsCount(profile *student.Profile) interface{} {
	if profile == nil || profile.AwardsHonors == nil {
		return nil
	}
	return len(profile.AwardsHonors)
}
