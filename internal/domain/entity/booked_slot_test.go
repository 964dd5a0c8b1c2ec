package entity

import (
	"testing"
	"time"
)

func TestBookedSlotCancelThenRebook(t *testing.T) {
	start := time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)
	slot := &BookedSlot{
		StartAt: start,
		EndAt:   start.Add(time.Hour),
		Status:  BookedSlotStatusBooked,
	}

	slot.Cancel()
	if slot.IsBooked() {
		t.Fatal("cancelled slot must not report booked")
	}

	// Rebooking after a cancellation reuses the same row with a new
	// collection window
	newStart := start.AddDate(0, 0, 2)
	slot.Rebook(newStart, newStart.Add(time.Hour))

	if !slot.IsBooked() {
		t.Error("rebooked slot must report booked")
	}
	if !slot.StartAt.Equal(newStart) {
		t.Errorf("start = %v, want %v", slot.StartAt, newStart)
	}
	if !slot.EndAt.Equal(newStart.Add(time.Hour)) {
		t.Errorf("end = %v, want %v", slot.EndAt, newStart.Add(time.Hour))
	}
}

func TestBookedSlotRebookAfterMissed(t *testing.T) {
	start := time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)
	slot := &BookedSlot{
		StartAt: start,
		EndAt:   start.Add(time.Hour),
		Status:  BookedSlotStatusMissed,
	}

	newStart := start.AddDate(0, 0, 1)
	slot.Rebook(newStart, newStart.Add(time.Hour))

	if slot.Status != BookedSlotStatusBooked {
		t.Errorf("status = %s, want %s", slot.Status, BookedSlotStatusBooked)
	}
}
