package eligibility

import (
	"math"
	"strconv"
	"strings"

	"scholar-sync/internal/domain/scholarship"
	"scholar-sync/internal/domain/student"
)

// FilterFinancial evaluates need-tier, EFC and Pell-grant constraints. EFC
// arrives as a range string ("5001-10000", "10000+", or a bare "7500") and
// is compared by its maximum bound; a "+" suffix means the upper bound is
// unlimited and therefore exceeds any maxEFC.
func FilterFinancial(profile *student.Profile, criteria *scholarship.FinancialCriteria) Result {
	if criteria == nil {
		return pass()
	}

	var failed []FailedCriterion

	if criteria.RequiresFinancialNeed != nil && *criteria.RequiresFinancialNeed {
		var level *string
		if profile != nil {
			level = profile.FinancialNeedLevel
		}
		if level == nil {
			failed = append(failed, fail(DimensionFinancial, "requiresFinancialNeed", true, nil))
		} else if strings.EqualFold(*level, student.NeedLevelNone) {
			failed = append(failed, fail(DimensionFinancial, "requiresFinancialNeed", true, *level))
		}
	}

	if criteria.MaxEFC != nil {
		var raw *string
		if profile != nil {
			raw = profile.EFCRange
		}
		if raw == nil || strings.TrimSpace(*raw) == "" {
			failed = append(failed, fail(DimensionFinancial, "maxEFC", *criteria.MaxEFC, nil))
		} else {
			maxBound, ok := parseEFCMax(*raw)
			if !ok {
				failed = append(failed, fail(DimensionFinancial, "maxEFC", *criteria.MaxEFC, *raw))
			} else if maxBound > *criteria.MaxEFC {
				failed = append(failed, fail(DimensionFinancial, "maxEFC", *criteria.MaxEFC, *raw))
			}
		}
	}

	if criteria.PellGrantRequired != nil && *criteria.PellGrantRequired {
		var pell *bool
		if profile != nil {
			pell = profile.PellGrantEligible
		}
		if pell == nil {
			failed = append(failed, fail(DimensionFinancial, "pellGrantRequired", true, nil))
		} else if !*pell {
			failed = append(failed, fail(DimensionFinancial, "pellGrantRequired", true, false))
		}
	}

	return resultOf(failed)
}

// parseEFCMax extracts the maximum bound of an EFC range string. A bare
// numeric string is treated as that exact value; this matches the upstream
// data, where a single number means an exact EFC rather than a range.
func parseEFCMax(raw string) (float64, bool) {
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if s == "" {
		return 0, false
	}

	if strings.HasSuffix(s, "+") {
		base := strings.TrimSuffix(s, "+")
		if _, err := strconv.ParseFloat(strings.TrimSpace(base), 64); err != nil {
			return 0, false
		}
		return math.Inf(1), true
	}

	if idx := strings.Index(s, "-"); idx >= 0 {
		upper := strings.TrimSpace(s[idx+1:])
		v, err := strconv.ParseFloat(upper, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
