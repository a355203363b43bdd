// Package eligibility implements the hard-filter rule engine: six pure
// dimension filters, the engine composing them, and a batch runner. Nothing
// in this package performs I/O or mutates its inputs.
package eligibility

type Dimension string

const (
	DimensionAcademic    Dimension = "academic"
	DimensionDemographic Dimension = "demographic"
	DimensionMajorField  Dimension = "major_field"
	DimensionExperience  Dimension = "experience"
	DimensionFinancial   Dimension = "financial"
	DimensionSpecial     Dimension = "special"
)

// Dimensions lists every dimension in engine evaluation order: academic
// first (cheapest and most frequently discriminating), special last.
var Dimensions = []Dimension{
	DimensionAcademic,
	DimensionDemographic,
	DimensionMajorField,
	DimensionExperience,
	DimensionFinancial,
	DimensionSpecial,
}

// FailedCriterion records one constraint violation with enough detail to
// render a rejection reason without re-running the filter. Actual is nil
// when the student simply has no data for the constrained field, which is a
// distinct state from an out-of-range value.
type FailedCriterion struct {
	Dimension Dimension   `json:"dimension"`
	Criterion string      `json:"criterion"`
	Required  interface{} `json:"required"`
	Actual    interface{} `json:"actual"`
}

// Result is the verdict of one filter or of the composed engine.
// Eligible == (len(FailedCriteria) == 0) always holds.
type Result struct {
	Eligible       bool              `json:"eligible"`
	FailedCriteria []FailedCriterion `json:"failedCriteria"`
}

func pass() Result {
	return Result{Eligible: true, FailedCriteria: []FailedCriterion{}}
}

func resultOf(failed []FailedCriterion) Result {
	if len(failed) == 0 {
		return pass()
	}
	return Result{Eligible: false, FailedCriteria: failed}
}

func fail(dim Dimension, criterion string, required, actual interface{}) FailedCriterion {
	return FailedCriterion{Dimension: dim, Criterion: criterion, Required: required, Actual: actual}
}
