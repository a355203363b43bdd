package eligibility

import (
	"fmt"
	"testing"

	"scholar-sync/internal/domain/scholarship"
	"scholar-sync/internal/domain/student"
)

func openScholarship(name string) scholarship.Scholarship {
	return scholarship.Scholarship{Name: name}
}

func gpaScholarship(name string, minGPA float64) scholarship.Scholarship {
	return scholarship.Scholarship{
		Name: name,
		Criteria: &scholarship.EligibilityCriteria{
			Academic: &scholarship.AcademicCriteria{MinGPA: fptr(minGPA)},
		},
	}
}

func TestFilterScholarshipsPreservesInputOrder(t *testing.T) {
	st := testStudent(&student.Profile{GPA: fptr(3.2)})
	in := []scholarship.Scholarship{
		openScholarship("a"),
		gpaScholarship("b", 3.9), // rejected
		openScholarship("c"),
		gpaScholarship("d", 3.0),
		openScholarship("e"),
	}

	out := FilterScholarships(st, in, nil)
	if len(out) != 4 {
		t.Fatalf("expected 4 eligible scholarships, got %d", len(out))
	}
	for i, want := range []string{"a", "c", "d", "e"} {
		if out[i].Name != want {
			t.Fatalf("expected position %d to be %q, got %q", i, want, out[i].Name)
		}
	}
}

func TestFilterScholarshipsWithStatsTallies(t *testing.T) {
	st := testStudent(&student.Profile{GPA: fptr(3.2), Gender: sptr("male")})
	in := []scholarship.Scholarship{
		openScholarship("open"),
		gpaScholarship("strict-gpa", 3.8),
		{
			Name: "women-only",
			Criteria: &scholarship.EligibilityCriteria{
				Demographic: &scholarship.DemographicCriteria{RequiredGender: sptr("female")},
			},
		},
	}

	eligible, stats := FilterScholarshipsWithStats(st, in, nil)
	if len(eligible) != 1 || eligible[0].Name != "open" {
		t.Fatalf("expected only the open scholarship, got %+v", eligible)
	}
	if stats.Evaluated != 3 {
		t.Fatalf("expected 3 evaluated, got %d", stats.Evaluated)
	}
	if stats.Eligible != 1 {
		t.Fatalf("expected 1 eligible, got %d", stats.Eligible)
	}
	if stats.RejectionsByDimension[DimensionAcademic] != 1 {
		t.Fatalf("expected 1 academic rejection, got %d", stats.RejectionsByDimension[DimensionAcademic])
	}
	if stats.RejectionsByDimension[DimensionDemographic] != 1 {
		t.Fatalf("expected 1 demographic rejection, got %d", stats.RejectionsByDimension[DimensionDemographic])
	}
	if stats.Duration <= 0 {
		t.Fatalf("expected a positive duration, got %v", stats.Duration)
	}
}

func TestFilterScholarshipsWithStatsEmptyInput(t *testing.T) {
	eligible, stats := FilterScholarshipsWithStats(testStudent(&student.Profile{}), nil, nil)
	if len(eligible) != 0 {
		t.Fatalf("expected no eligible scholarships, got %d", len(eligible))
	}
	if stats.Evaluated != 0 || stats.Eligible != 0 {
		t.Fatalf("expected zero tallies, got %+v", stats)
	}
}

func TestFilterScholarshipsLargeBatchAllRejected(t *testing.T) {
	st := testStudent(&student.Profile{GPA: fptr(2.0)})

	in := make([]scholarship.Scholarship, 0, 10_000)
	for i := 0; i < 10_000; i++ {
		in = append(in, gpaScholarship(fmt.Sprintf("s-%d", i), 3.5))
	}

	eligible, stats := FilterScholarshipsWithStats(st, in, nil)
	if len(eligible) != 0 {
		t.Fatalf("expected no eligible scholarships, got %d", len(eligible))
	}
	if stats.Evaluated != 10_000 {
		t.Fatalf("expected 10000 evaluated, got %d", stats.Evaluated)
	}
	if stats.RejectionsByDimension[DimensionAcademic] != 10_000 {
		t.Fatalf("expected 10000 academic rejections, got %d", stats.RejectionsByDimension[DimensionAcademic])
	}
}

func BenchmarkFilterScholarships(b *testing.B) {
	st := testStudent(&student.Profile{
		GPA:            fptr(3.6),
		SATScore:       iptr(1350),
		Gender:         sptr("female"),
		IntendedMajor:  sptr("Computer Science"),
		VolunteerHours: iptr(80),
	})

	in := make([]scholarship.Scholarship, 0, 1000)
	for i := 0; i < 1000; i++ {
		switch i % 3 {
		case 0:
			in = append(in, openScholarship(fmt.Sprintf("open-%d", i)))
		case 1:
			in = append(in, gpaScholarship(fmt.Sprintf("gpa-%d", i), 3.5))
		default:
			in = append(in, scholarship.Scholarship{
				Name: fmt.Sprintf("major-%d", i),
				Criteria: &scholarship.EligibilityCriteria{
					MajorField: &scholarship.MajorFieldCriteria{EligibleMajors: []string{"Computer Science"}},
				},
			})
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		FilterScholarships(st, in, nil)
	}
}
