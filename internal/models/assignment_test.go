package models

import (
	"errors"
	"testing"
	"time"
)

func intp(v int) *int { return &v }

func TestValidateSpots(t *testing.T) {
	tests := []struct {
		name        string
		planned     *int
		missed      *int
		transmitted *int
		wantErr     bool
	}{
		{"all nil", nil, nil, nil, false},
		{"partial counts allowed", intp(10), nil, nil, false},
		{"balanced", intp(10), intp(3), intp(7), false},
		{"unbalanced", intp(10), intp(3), intp(5), true},
		{"zero planned", intp(0), intp(0), intp(0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Assignment{
				PlannedSpots:     tt.planned,
				MissedSpots:      tt.missed,
				TransmittedSpots: tt.transmitted,
			}
			err := a.ValidateSpots()
			if tt.wantErr && !errors.Is(err, ErrSpotCountMismatch) {
				t.Errorf("expected mismatch error, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	earlierToday := time.Date(2026, 9, 1, 2, 0, 0, 0, time.UTC)
	tomorrow := now.AddDate(0, 0, 1)

	tests := []struct {
		name    string
		status  string
		dueDate *time.Time
		want    bool
	}{
		{"wip past due", AssignmentStatusWIP, &yesterday, true},
		{"wip due today is not overdue", AssignmentStatusWIP, &earlierToday, false},
		{"wip due tomorrow", AssignmentStatusWIP, &tomorrow, false},
		{"wip no due date", AssignmentStatusWIP, nil, false},
		{"submitted past due", AssignmentStatusSubmitted, &yesterday, false},
		{"approved past due", AssignmentStatusApproved, &yesterday, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Assignment{Status: tt.status, DueDate: tt.dueDate}
			if got := a.IsOverdue(now); got != tt.want {
				t.Errorf("IsOverdue = %v, want %v", got, tt.want)
			}
		})
	}
}
