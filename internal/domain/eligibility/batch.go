package eligibility

import (
	"time"

	"scholar-sync/internal/domain/scholarship"
	"scholar-sync/internal/domain/student"
)

// BatchStats tallies one FilterScholarshipsWithStats call. With early exit
// on, RejectionsByDimension counts the first failing dimension per pair (the
// only one observed); with early exit off, every failing dimension counts.
type BatchStats struct {
	Evaluated             int
	Eligible              int
	RejectionsByDimension map[Dimension]int
	Duration              time.Duration
}

// FilterScholarships returns the scholarships the student is eligible for,
// preserving input order.
func FilterScholarships(st *student.Student, scholarships []scholarship.Scholarship, cfg *Config) []scholarship.Scholarship {
	eligible, _ := filterScholarships(st, scholarships, cfg, false)
	return eligible
}

// FilterScholarshipsWithStats is FilterScholarships plus a rejection
// breakdown and elapsed time. The eligible set is identical.
func FilterScholarshipsWithStats(st *student.Student, scholarships []scholarship.Scholarship, cfg *Config) ([]scholarship.Scholarship, BatchStats) {
	return filterScholarships(st, scholarships, cfg, true)
}

func filterScholarships(st *student.Student, scholarships []scholarship.Scholarship, cfg *Config, withStats bool) ([]scholarship.Scholarship, BatchStats) {
	start := time.Now()

	stats := BatchStats{Evaluated: len(scholarships)}
	if withStats {
		stats.RejectionsByDimension = make(map[Dimension]int, len(Dimensions))
	}

	eligible := make([]scholarship.Scholarship, 0, len(scholarships))
	for i := range scholarships {
		res := ApplyHardFilters(st, &scholarships[i], cfg)
		if res.Eligible {
			eligible = append(eligible, scholarships[i])
			continue
		}
		if withStats {
			for _, d := range rejectedDimensions(res.FailedCriteria) {
				stats.RejectionsByDimension[d]++
			}
		}
	}

	stats.Eligible = len(eligible)
	stats.Duration = time.Since(start)
	return eligible, stats
}

func rejectedDimensions(failed []FailedCriterion) []Dimension {
	seen := make(map[Dimension]struct{}, 2)
	out := make([]Dimension, 0, 2)
	for _, f := range failed {
		if _, ok := seen[f.Dimension]; ok {
			continue
		}
		seen[f.Dimension] = struct{}{}
		out = append(out, f.Dimension)
	}
	return out
}
