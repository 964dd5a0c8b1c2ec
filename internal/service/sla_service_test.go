package service

import (
	"testing"
	"time"
)

func TestClassify_Breached(t *testing.T) {
	c := NewSLAClassifier(4 * time.Hour)
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	deadline := now.Add(-26*time.Hour - 10*time.Minute)

	info := c.Classify(deadline, now)
	if info.Status != SLABreached {
		t.Fatalf("expected BREACHED, got %s", info.Status)
	}
	if info.HoursOverdue == nil || *info.HoursOverdue != 26 {
		t.Errorf("expected 26 hours overdue (rounded), got %v", info.HoursOverdue)
	}
	if info.Reason == nil || *info.Reason == "" {
		t.Error("breached classification must carry a reason")
	}
	if !info.DeadlineAt.Equal(deadline) {
		t.Errorf("deadline should pass through, got %v", info.DeadlineAt)
	}
}

func TestClassify_Approaching(t *testing.T) {
	c := NewSLAClassifier(4 * time.Hour)
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	info := c.Classify(now.Add(3*time.Hour), now)
	if info.Status != SLAApproaching {
		t.Fatalf("expected APPROACHING, got %s", info.Status)
	}
	if info.HoursOverdue != nil || info.Reason != nil {
		t.Error("approaching classification must not carry overdue data")
	}

	// Boundary: exactly at the window edge is still approaching.
	info = c.Classify(now.Add(4*time.Hour), now)
	if info.Status != SLAApproaching {
		t.Errorf("expected APPROACHING at window boundary, got %s", info.Status)
	}
}

func TestClassify_OnTime(t *testing.T) {
	c := NewSLAClassifier(4 * time.Hour)
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	info := c.Classify(now.Add(48*time.Hour), now)
	if info.Status != SLAOnTime {
		t.Fatalf("expected ON_TIME, got %s", info.Status)
	}
	if info.HoursOverdue != nil || info.Reason != nil {
		t.Error("on-time classification must not carry overdue data")
	}
}

func TestClassify_Idempotent(t *testing.T) {
	c := NewSLAClassifier(2 * time.Hour)
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	deadline := now.Add(-90 * time.Minute)

	first := c.Classify(deadline, now)
	second := c.Classify(deadline, now)
	if first.Status != second.Status || *first.HoursOverdue != *second.HoursOverdue {
		t.Error("repeated calls with the same inputs must match")
	}
}
