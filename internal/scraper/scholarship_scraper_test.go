package scraper

import (
	"testing"
	"time"
)

func TestParseAmountCents(t *testing.T) {
	cents, ok := parseAmountCents("Award: $2,500 per year")
	if !ok || cents != 250_000 {
		t.Fatalf("expected (250000, true), got (%d, %v)", cents, ok)
	}

	cents, ok = parseAmountCents("$ 1,000.50")
	if !ok || cents != 100_050 {
		t.Fatalf("expected (100050, true), got (%d, %v)", cents, ok)
	}

	if _, ok := parseAmountCents("no dollar amount here"); ok {
		t.Fatalf("expected text without an amount to be rejected")
	}
	if _, ok := parseAmountCents(""); ok {
		t.Fatalf("expected empty input to be rejected")
	}
}

func TestParseDeadline(t *testing.T) {
	want := time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC)

	for _, raw := range []string{"December 1, 2026", "Dec 1, 2026", "12/01/2026", "2026-12-01"} {
		got, ok := parseDeadline(raw)
		if !ok {
			t.Fatalf("expected %q to parse", raw)
		}
		if !got.Equal(want) {
			t.Fatalf("expected %q to parse to %v, got %v", raw, want, got)
		}
	}

	if _, ok := parseDeadline("rolling basis"); ok {
		t.Fatalf("expected free text not to parse as a deadline")
	}
	if _, ok := parseDeadline("  "); ok {
		t.Fatalf("expected blank input to be rejected")
	}
}

func TestCriteriaFromText(t *testing.T) {
	body := "Applicants must hold a minimum GPA of 3.25, demonstrate financial need, and be a first-generation college student."

	crit := criteriaFromText(body)
	if crit == nil {
		t.Fatalf("expected criteria to be extracted")
	}
	if crit.Academic == nil || crit.Academic.MinGPA == nil || *crit.Academic.MinGPA != 3.25 {
		t.Fatalf("expected minimum GPA 3.25, got %+v", crit.Academic)
	}
	if crit.Financial == nil || crit.Financial.RequiresFinancialNeed == nil || !*crit.Financial.RequiresFinancialNeed {
		t.Fatalf("expected a financial-need requirement, got %+v", crit.Financial)
	}
	if crit.Special == nil || crit.Special.FirstGenerationRequired == nil || !*crit.Special.FirstGenerationRequired {
		t.Fatalf("expected a first-generation requirement, got %+v", crit.Special)
	}
}

func TestCriteriaFromTextNothingRecognized(t *testing.T) {
	if crit := criteriaFromText("Open to all enrolled students."); crit != nil {
		t.Fatalf("expected nil criteria when nothing is recognized, got %+v", crit)
	}
	if crit := criteriaFromText(""); crit != nil {
		t.Fatalf("expected nil criteria for empty text, got %+v", crit)
	}
}

func TestCriteriaFromTextIgnoresOutOfScaleGPA(t *testing.T) {
	crit := criteriaFromText("Requires a GPA of 9.99 and nothing else.")
	if crit != nil {
		t.Fatalf("expected an out-of-scale GPA to be dropped, got %+v", crit)
	}
}

func TestStableExternalIDFromURL(t *testing.T) {
	a := stableExternalIDFromURL("https://example.com/scholarship/123")
	b := stableExternalIDFromURL("https://example.com/scholarship/123")
	c := stableExternalIDFromURL("https://example.com/scholarship/456")

	if a == "" || a != b {
		t.Fatalf("expected the same URL to yield the same ID, got %q vs %q", a, b)
	}
	if a == c {
		t.Fatalf("expected different URLs to yield different IDs")
	}
	if stableExternalIDFromURL("  ") != "" {
		t.Fatalf("expected blank URL to yield an empty ID")
	}
}

func TestNormalizeURLStripsFragment(t *testing.T) {
	got := normalizeURL("https://example.com/award?page=2#details")
	if got != "https://example.com/award?page=2" {
		t.Fatalf("expected the fragment to be stripped, got %q", got)
	}
}

func TestHostFromURL(t *testing.T) {
	if h := hostFromURL("https://www.careeronestop.org/toolkit/training/find-scholarships.aspx"); h != "www.careeronestop.org" {
		t.Fatalf("expected hostname, got %q", h)
	}
}
