package ws

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"scholar-sync/internal/domain/scholarship"
	"scholar-sync/internal/domain/scoring"
	"scholar-sync/internal/domain/student"
)

type MatchFoundEvent struct {
	Type            string `json:"type"`
	StudentID       string `json:"studentId"`
	ScholarshipID   string `json:"scholarshipId"`
	ScholarshipName string `json:"scholarshipName"`
	Tier            string `json:"tier"`
	OverallScore    int    `json:"overallScore"`
	Timestamp       string `json:"timestamp"`
}

type PipelineCompletedEvent struct {
	Type              string `json:"type"`
	StudentsProcessed int    `json:"studentsProcessed"`
	MatchesCreated    int    `json:"matchesCreated"`
	MatchesUpdated    int    `json:"matchesUpdated"`
	Timestamp         string `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

func NotifyPipelineCompleted(studentsProcessed, created, updated int) {
	h := defaultHub.Load()
	if h == nil {
		return
	}

	evt := PipelineCompletedEvent{
		Type:              "pipeline_completed",
		StudentsProcessed: studentsProcessed,
		MatchesCreated:    created,
		MatchesUpdated:    updated,
		Timestamp:         time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Broadcast(b)
}

// MatchNotifier pushes qualifying matches over the websocket hub. It is the
// delivery half of match notifications; durable dedupe happens before it is
// called.
type MatchNotifier struct {
	hub *Hub
}

func NewMatchNotifier(hub *Hub) *MatchNotifier {
	return &MatchNotifier{hub: hub}
}

func (n *MatchNotifier) NotifyMatch(ctx context.Context, st student.Student, sch scholarship.Scholarship, score scoring.Score) error {
	_ = ctx
	hub := n.hub
	if hub == nil {
		hub = defaultHub.Load()
	}
	if hub == nil {
		return nil
	}

	evt := MatchFoundEvent{
		Type:            "match_found",
		StudentID:       st.ID.String(),
		ScholarshipID:   sch.ID.String(),
		ScholarshipName: sch.Name,
		Tier:            score.Tier,
		OverallScore:    score.Overall,
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	hub.Send(st.ID, b)
	return nil
}
