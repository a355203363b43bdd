package dto

import "time"

type PipelineRunResponse struct {
	ID                    string     `json:"id"`
	StartedAt             time.Time  `json:"started_at"`
	FinishedAt            *time.Time `json:"finished_at"`
	Status                string     `json:"status"`
	StudentsProcessed     int        `json:"students_processed"`
	ScholarshipsEvaluated int        `json:"scholarships_evaluated"`
	MatchesCreated        int        `json:"matches_created"`
	MatchesUpdated        int        `json:"matches_updated"`
	PairsFailed           int        `json:"pairs_failed"`
	NotificationsSent     int        `json:"notifications_sent"`
	NotificationsFailed   int        `json:"notifications_failed"`
}

type PipelineTotalsResponse struct {
	Scholarships  int `json:"scholarships"`
	Matches       int `json:"matches"`
	Notifications int `json:"notifications"`
}

type PipelineStatusResponseData struct {
	LastRun     *PipelineRunResponse   `json:"last_run"`
	Totals      PipelineTotalsResponse `json:"totals"`
	LastUpdated time.Time              `json:"last_updated"`
}
