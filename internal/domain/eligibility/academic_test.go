package eligibility

import (
	"testing"

	"scholar-sync/internal/domain/scholarship"
	"scholar-sync/internal/domain/student"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }
func sptr(v string) *string   { return &v }
func bptr(v bool) *bool       { return &v }

func TestFilterAcademicNilCriteriaPasses(t *testing.T) {
	res := FilterAcademic(nil, nil)
	if !res.Eligible {
		t.Fatalf("expected eligible with no criteria, got %+v", res)
	}
	if len(res.FailedCriteria) != 0 {
		t.Fatalf("expected no failed criteria, got %d", len(res.FailedCriteria))
	}
}

func TestFilterAcademicMinGPAMissingFailsClosed(t *testing.T) {
	profile := &student.Profile{}
	criteria := &scholarship.AcademicCriteria{MinGPA: fptr(3.5)}

	res := FilterAcademic(profile, criteria)
	if res.Eligible {
		t.Fatalf("expected ineligible when GPA is unknown, got eligible")
	}
	if len(res.FailedCriteria) != 1 {
		t.Fatalf("expected 1 failed criterion, got %d", len(res.FailedCriteria))
	}
	fc := res.FailedCriteria[0]
	if fc.Criterion != "minGPA" || fc.Dimension != DimensionAcademic {
		t.Fatalf("unexpected failed criterion %+v", fc)
	}
	if fc.Actual != nil {
		t.Fatalf("expected nil actual for missing GPA, got %v", fc.Actual)
	}
}

func TestFilterAcademicMinGPABoundary(t *testing.T) {
	criteria := &scholarship.AcademicCriteria{MinGPA: fptr(3.5)}

	exact := &student.Profile{GPA: fptr(3.5)}
	if res := FilterAcademic(exact, criteria); !res.Eligible {
		t.Fatalf("expected GPA exactly at the minimum to pass, got %+v", res)
	}

	below := &student.Profile{GPA: fptr(3.49)}
	if res := FilterAcademic(below, criteria); res.Eligible {
		t.Fatalf("expected GPA below the minimum to fail")
	}
}

func TestFilterAcademicGPANormalizedFromScale(t *testing.T) {
	// 4.4 on a 5.0 scale is 3.52 on a 4.0 scale.
	profile := &student.Profile{GPA: fptr(4.4), GPAScale: fptr(5.0)}
	criteria := &scholarship.AcademicCriteria{MinGPA: fptr(3.5)}

	if res := FilterAcademic(profile, criteria); !res.Eligible {
		t.Fatalf("expected normalized GPA 3.52 to clear minimum 3.5, got %+v", res)
	}

	strict := &scholarship.AcademicCriteria{MinGPA: fptr(3.6)}
	if res := FilterAcademic(profile, strict); res.Eligible {
		t.Fatalf("expected normalized GPA 3.52 to miss minimum 3.6")
	}
}

func TestFilterAcademicSATRange(t *testing.T) {
	criteria := &scholarship.AcademicCriteria{MinSAT: iptr(1200), MaxSAT: iptr(1500)}

	inRange := &student.Profile{SATScore: iptr(1400)}
	if res := FilterAcademic(inRange, criteria); !res.Eligible {
		t.Fatalf("expected SAT 1400 in [1200,1500] to pass, got %+v", res)
	}

	tooLow := &student.Profile{SATScore: iptr(1100)}
	res := FilterAcademic(tooLow, criteria)
	if res.Eligible {
		t.Fatalf("expected SAT 1100 to fail minimum 1200")
	}
	if res.FailedCriteria[0].Criterion != "minSAT" {
		t.Fatalf("expected minSAT failure, got %s", res.FailedCriteria[0].Criterion)
	}

	tooHigh := &student.Profile{SATScore: iptr(1550)}
	res = FilterAcademic(tooHigh, criteria)
	if res.Eligible {
		t.Fatalf("expected SAT 1550 to fail maximum 1500")
	}
	if res.FailedCriteria[0].Criterion != "maxSAT" {
		t.Fatalf("expected maxSAT failure, got %s", res.FailedCriteria[0].Criterion)
	}

	missing := &student.Profile{}
	if res := FilterAcademic(missing, criteria); res.Eligible {
		t.Fatalf("expected missing SAT to fail a SAT range")
	}
}

func TestFilterAcademicClassRankPercentile(t *testing.T) {
	criteria := &scholarship.AcademicCriteria{ClassRankPercentile: fptr(10)}

	// Rank 15 of 300 is the top 5%.
	top := &student.Profile{ClassRank: iptr(15), ClassSize: iptr(300)}
	if res := FilterAcademic(top, criteria); !res.Eligible {
		t.Fatalf("expected rank 15/300 to clear top 10%%, got %+v", res)
	}

	// Rank 60 of 300 is the top 20%.
	mid := &student.Profile{ClassRank: iptr(60), ClassSize: iptr(300)}
	res := FilterAcademic(mid, criteria)
	if res.Eligible {
		t.Fatalf("expected rank 60/300 to miss top 10%%")
	}
	if got := res.FailedCriteria[0].Actual; got != 20.0 {
		t.Fatalf("expected actual percentile 20, got %v", got)
	}
}

func TestFilterAcademicClassRankWithoutSizeFails(t *testing.T) {
	criteria := &scholarship.AcademicCriteria{ClassRankPercentile: fptr(25)}

	noSize := &student.Profile{ClassRank: iptr(10)}
	if res := FilterAcademic(noSize, criteria); res.Eligible {
		t.Fatalf("expected rank without class size to fail closed")
	}

	zeroSize := &student.Profile{ClassRank: iptr(10), ClassSize: iptr(0)}
	if res := FilterAcademic(zeroSize, criteria); res.Eligible {
		t.Fatalf("expected zero class size to fail closed")
	}
}

func TestFilterAcademicCollectsEveryFailure(t *testing.T) {
	profile := &student.Profile{GPA: fptr(2.0), SATScore: iptr(900)}
	criteria := &scholarship.AcademicCriteria{
		MinGPA: fptr(3.0),
		MinSAT: iptr(1200),
		MinACT: iptr(28),
	}

	res := FilterAcademic(profile, criteria)
	if res.Eligible {
		t.Fatalf("expected ineligible")
	}
	if len(res.FailedCriteria) != 3 {
		t.Fatalf("expected 3 failures (minGPA, minSAT, minACT), got %d: %+v", len(res.FailedCriteria), res.FailedCriteria)
	}
}
