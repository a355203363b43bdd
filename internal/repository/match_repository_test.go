package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestMatchUpsertRejectsNilIDs(t *testing.T) {
	repo := NewPostgresMatchRepository(nil)

	_, err := repo.Upsert(context.Background(), MatchUpsert{
		ScholarshipID: uuid.New(),
		CalculatedAt:  time.Now().UTC(),
	})
	if err == nil {
		t.Fatalf("expected an error for a nil student ID")
	}

	_, err = repo.Upsert(context.Background(), MatchUpsert{
		StudentID:    uuid.New(),
		CalculatedAt: time.Now().UTC(),
	})
	if err == nil {
		t.Fatalf("expected an error for a nil scholarship ID")
	}
}
