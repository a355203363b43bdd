package eligibility

import (
	"testing"

	"scholar-sync/internal/domain/scholarship"
	"scholar-sync/internal/domain/student"
)

func TestFilterSpecialFirstGeneration(t *testing.T) {
	criteria := &scholarship.SpecialCriteria{FirstGenerationRequired: bptr(true)}

	firstGen := &student.Profile{FirstGeneration: bptr(true)}
	if res := FilterSpecial(firstGen, criteria); !res.Eligible {
		t.Fatalf("expected first-generation flag to satisfy the requirement, got %+v", res)
	}

	not := &student.Profile{FirstGeneration: bptr(false)}
	res := FilterSpecial(not, criteria)
	if res.Eligible {
		t.Fatalf("expected non-first-generation student to fail")
	}
	if res.FailedCriteria[0].Criterion != "firstGenerationRequired" {
		t.Fatalf("expected firstGenerationRequired failure, got %s", res.FailedCriteria[0].Criterion)
	}

	if res := FilterSpecial(&student.Profile{}, criteria); res.Eligible {
		t.Fatalf("expected unset flag to fail closed")
	}
}

func TestFilterSpecialMultipleFlags(t *testing.T) {
	criteria := &scholarship.SpecialCriteria{
		MilitaryAffiliationRequired: bptr(true),
		DisabilityRequired:          bptr(true),
	}

	both := &student.Profile{MilitaryAffiliation: bptr(true), Disability: bptr(true)}
	if res := FilterSpecial(both, criteria); !res.Eligible {
		t.Fatalf("expected both flags set to pass, got %+v", res)
	}

	partial := &student.Profile{MilitaryAffiliation: bptr(true), Disability: bptr(false)}
	res := FilterSpecial(partial, criteria)
	if res.Eligible {
		t.Fatalf("expected one unmet flag to fail")
	}
	if len(res.FailedCriteria) != 1 || res.FailedCriteria[0].Criterion != "disabilityRequired" {
		t.Fatalf("expected a single disabilityRequired failure, got %+v", res.FailedCriteria)
	}
}

func TestFilterSpecialRequiredFalseIsNoConstraint(t *testing.T) {
	criteria := &scholarship.SpecialCriteria{FirstGenerationRequired: bptr(false)}
	if res := FilterSpecial(&student.Profile{}, criteria); !res.Eligible {
		t.Fatalf("expected required=false to place no constraint, got %+v", res)
	}
}
