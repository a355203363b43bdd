package eligibility

import (
	"testing"

	"scholar-sync/internal/domain/scholarship"
	"scholar-sync/internal/domain/student"
)

func TestFilterMajorFieldEligibleMajors(t *testing.T) {
	criteria := &scholarship.MajorFieldCriteria{EligibleMajors: []string{"Computer Science", "Mathematics"}}

	match := &student.Profile{IntendedMajor: sptr("computer science")}
	if res := FilterMajorField(match, criteria); !res.Eligible {
		t.Fatalf("expected case-insensitive major match, got %+v", res)
	}

	miss := &student.Profile{IntendedMajor: sptr("History")}
	if res := FilterMajorField(miss, criteria); res.Eligible {
		t.Fatalf("expected non-listed major to fail an inclusion list")
	}

	// Inclusion lists fail closed: an undeclared major cannot satisfy them.
	if res := FilterMajorField(&student.Profile{}, criteria); res.Eligible {
		t.Fatalf("expected undeclared major to fail eligibleMajors")
	}
}

func TestFilterMajorFieldExcludedMajorsAbsentPasses(t *testing.T) {
	criteria := &scholarship.MajorFieldCriteria{ExcludedMajors: []string{"Business", "Economics"}}

	// Exclusion only rejects a declared, listed major.
	if res := FilterMajorField(&student.Profile{}, criteria); !res.Eligible {
		t.Fatalf("expected undeclared major to pass an exclusion list, got %+v", res)
	}

	listed := &student.Profile{IntendedMajor: sptr("business")}
	res := FilterMajorField(listed, criteria)
	if res.Eligible {
		t.Fatalf("expected excluded major to fail")
	}
	if res.FailedCriteria[0].Criterion != "excludedMajors" {
		t.Fatalf("expected excludedMajors failure, got %s", res.FailedCriteria[0].Criterion)
	}

	other := &student.Profile{IntendedMajor: sptr("Biology")}
	if res := FilterMajorField(other, criteria); !res.Eligible {
		t.Fatalf("expected non-listed major to pass exclusion, got %+v", res)
	}
}

func TestFilterMajorFieldRequiredFieldOfStudy(t *testing.T) {
	criteria := &scholarship.MajorFieldCriteria{RequiredFieldOfStudy: []string{"STEM"}}

	stem := &student.Profile{FieldOfStudy: sptr("stem")}
	if res := FilterMajorField(stem, criteria); !res.Eligible {
		t.Fatalf("expected field-of-study match, got %+v", res)
	}

	if res := FilterMajorField(&student.Profile{}, criteria); res.Eligible {
		t.Fatalf("expected missing field of study to fail closed")
	}
}

func TestFilterMajorFieldCareerGoalKeywords(t *testing.T) {
	criteria := &scholarship.MajorFieldCriteria{CareerGoalKeywords: []string{"medicine", "healthcare"}}

	goals := &student.Profile{CareerGoals: sptr("I want to work in Healthcare technology.")}
	if res := FilterMajorField(goals, criteria); !res.Eligible {
		t.Fatalf("expected case-insensitive substring keyword match, got %+v", res)
	}

	unrelated := &student.Profile{CareerGoals: sptr("Aspiring civil engineer")}
	if res := FilterMajorField(unrelated, criteria); res.Eligible {
		t.Fatalf("expected no keyword overlap to fail")
	}

	blank := &student.Profile{CareerGoals: sptr("   ")}
	if res := FilterMajorField(blank, criteria); res.Eligible {
		t.Fatalf("expected blank career goals to fail closed")
	}
}
