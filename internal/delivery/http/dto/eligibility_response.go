package dto

type FailedCriterionResponse struct {
	Dimension string      `json:"dimension"`
	Criterion string      `json:"criterion"`
	Required  interface{} `json:"required"`
	Actual    interface{} `json:"actual"`
}

type EligibilityCheckResponseData struct {
	ScholarshipID  string                    `json:"scholarship_id"`
	Eligible       bool                      `json:"eligible"`
	FailedCriteria []FailedCriterionResponse `json:"failed_criteria"`
}
