package service

import (
	"fmt"
	"math"
	"time"
)

// SLAStatus is the escalation judgment for a tracked resource.
type SLAStatus string

const (
	SLAOnTime      SLAStatus = "ON_TIME"
	SLAApproaching SLAStatus = "APPROACHING"
	SLABreached    SLAStatus = "BREACHED"
)

// SLAInfo is computed on read and never persisted.
type SLAInfo struct {
	Status       SLAStatus `json:"status"`
	Reason       *string   `json:"reason,omitempty"`
	HoursOverdue *int      `json:"hours_overdue,omitempty"`
	DeadlineAt   time.Time `json:"deadline_at"`
}

// SLAClassifier maps a deadline against the current time. The
// approaching window is an operational policy value supplied from
// config, not hardcoded.
type SLAClassifier struct {
	approachingWindow time.Duration
}

func NewSLAClassifier(approachingWindow time.Duration) *SLAClassifier {
	return &SLAClassifier{approachingWindow: approachingWindow}
}

// Classify is a pure function of the two timestamps; repeated calls with
// the same inputs return the same result.
func (c *SLAClassifier) Classify(deadlineAt, now time.Time) SLAInfo {
	info := SLAInfo{DeadlineAt: deadlineAt}

	if now.After(deadlineAt) {
		overdue := int(math.Round(now.Sub(deadlineAt).Hours()))
		reason := fmt.Sprintf("deadline passed %dh ago", overdue)
		info.Status = SLABreached
		info.HoursOverdue = &overdue
		info.Reason = &reason
		return info
	}

	if deadlineAt.Sub(now) <= c.approachingWindow {
		info.Status = SLAApproaching
		return info
	}

	info.Status = SLAOnTime
	return info
}
