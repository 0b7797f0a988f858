package models

import (
	"testing"
	"time"
)

func TestDeriveStatus(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		event  Event
		expect string
	}{
		{"future date", Event{Date: now.Add(72 * time.Hour)}, StatusUpcoming},
		{"same day earlier", Event{Date: now.Add(-4 * time.Hour)}, StatusOngoing},
		{"same day later", Event{Date: now.Add(6 * time.Hour)}, StatusOngoing},
		{"previous day", Event{Date: now.Add(-24 * time.Hour)}, StatusCompleted},
		{"long past", Event{Date: now.Add(-30 * 24 * time.Hour)}, StatusCompleted},
		{"started early, date tomorrow", Event{Date: now.Add(20 * time.Hour), IsStarted: true}, StatusOngoing},
		{"started but day passed", Event{Date: now.Add(-24 * time.Hour), IsStarted: true}, StatusCompleted},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.event.DeriveStatus(now); got != tc.expect {
				t.Errorf("DeriveStatus = %q, want %q", got, tc.expect)
			}
		})
	}
}

func TestDeriveStatus_CompletedIsSticky(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)

	// A finalized event stays completed even if its date is in the
	// future relative to the clock.
	e := Event{Status: StatusCompleted, Date: now.Add(48 * time.Hour)}
	if got := e.DeriveStatus(now); got != StatusCompleted {
		t.Errorf("DeriveStatus = %q, want sticky %q", got, StatusCompleted)
	}
}

func TestWithDerivedStatus(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)

	e := Event{Status: StatusUpcoming, Date: now.Add(-48 * time.Hour)}
	got := e.WithDerivedStatus(now)
	if got.Status != StatusCompleted {
		t.Errorf("WithDerivedStatus status = %q, want %q", got.Status, StatusCompleted)
	}
	if e.Status != StatusUpcoming {
		t.Errorf("receiver must not be mutated, got %q", e.Status)
	}
}
