package eligibility

import (
	"testing"
	"time"

	"scholar-sync/internal/domain/scholarship"
	"scholar-sync/internal/domain/student"
)

func TestFilterExperienceVolunteerHours(t *testing.T) {
	criteria := &scholarship.ExperienceCriteria{MinVolunteerHours: iptr(100)}

	enough := &student.Profile{VolunteerHours: iptr(120)}
	if res := FilterExperience(enough, criteria); !res.Eligible {
		t.Fatalf("expected 120 hours to clear minimum 100, got %+v", res)
	}

	short := &student.Profile{VolunteerHours: iptr(40)}
	res := FilterExperience(short, criteria)
	if res.Eligible {
		t.Fatalf("expected 40 hours to miss minimum 100")
	}
	if res.FailedCriteria[0].Actual != 40 {
		t.Fatalf("expected actual 40, got %v", res.FailedCriteria[0].Actual)
	}

	if res := FilterExperience(&student.Profile{}, criteria); res.Eligible {
		t.Fatalf("expected unknown volunteer hours to fail closed")
	}
}

func TestFilterExperienceExtracurricularCount(t *testing.T) {
	criteria := &scholarship.ExperienceCriteria{MinExtracurriculars: iptr(2)}

	two := &student.Profile{Extracurriculars: []student.Activity{{Name: "Chess Club"}, {Name: "Robotics"}}}
	if res := FilterExperience(two, criteria); !res.Eligible {
		t.Fatalf("expected 2 activities to satisfy minimum 2, got %+v", res)
	}

	one := &student.Profile{Extracurriculars: []student.Activity{{Name: "Chess Club"}}}
	if res := FilterExperience(one, criteria); res.Eligible {
		t.Fatalf("expected 1 activity to miss minimum 2")
	}
}

func TestFilterExperienceLeadershipRequired(t *testing.T) {
	criteria := &scholarship.ExperienceCriteria{LeadershipRequired: bptr(true)}

	leader := &student.Profile{LeadershipRoles: []student.LeadershipRole{{Title: "Captain"}}}
	if res := FilterExperience(leader, criteria); !res.Eligible {
		t.Fatalf("expected a leadership role to satisfy the requirement, got %+v", res)
	}

	if res := FilterExperience(&student.Profile{}, criteria); res.Eligible {
		t.Fatalf("expected no leadership roles to fail the requirement")
	}

	// A required flag set to false places no constraint.
	relaxed := &scholarship.ExperienceCriteria{LeadershipRequired: bptr(false)}
	if res := FilterExperience(&student.Profile{}, relaxed); !res.Eligible {
		t.Fatalf("expected leadershipRequired=false to pass, got %+v", res)
	}
}

func TestFilterExperienceWorkMonths(t *testing.T) {
	now := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	criteria := &scholarship.ExperienceCriteria{MinWorkExperienceMonths: iptr(6)}

	end := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	profile := &student.Profile{WorkExperience: []student.WorkExperience{
		{Title: "Cashier", StartDate: time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC), EndDate: &end},
	}}
	// September 2025 through June 2026 is 9 months.
	if res := filterExperienceAt(profile, criteria, now); !res.Eligible {
		t.Fatalf("expected 9 months to clear minimum 6, got %+v", res)
	}

	// An ongoing position counts up to now.
	ongoing := &student.Profile{WorkExperience: []student.WorkExperience{
		{Title: "Tutor", StartDate: time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)},
	}}
	res := filterExperienceAt(ongoing, criteria, now)
	if res.Eligible {
		t.Fatalf("expected 3 ongoing months to miss minimum 6")
	}
	if res.FailedCriteria[0].Actual != 3 {
		t.Fatalf("expected actual 3 months, got %v", res.FailedCriteria[0].Actual)
	}

	if res := filterExperienceAt(&student.Profile{}, criteria, now); res.Eligible {
		t.Fatalf("expected absent work history to fail closed")
	}
}

func TestFilterExperienceAwardsRequired(t *testing.T) {
	criteria := &scholarship.ExperienceCriteria{AwardsHonorsRequired: bptr(true)}

	awarded := &student.Profile{AwardsHonors: []student.Award{{Name: "National Merit"}}}
	if res := FilterExperience(awarded, criteria); !res.Eligible {
		t.Fatalf("expected an award to satisfy the requirement, got %+v", res)
	}

	if res := FilterExperience(&student.Profile{}, criteria); res.Eligible {
		t.Fatalf("expected no awards to fail the requirement")
	}
}
