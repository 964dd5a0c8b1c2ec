package entity

import "testing"

func TestLabOrderStatusDisplayComplete(t *testing.T) {
	if len(AllLabOrderStatuses) != 15 {
		t.Fatalf("expected 15 lab order statuses, got %d", len(AllLabOrderStatuses))
	}
	for _, s := range AllLabOrderStatuses {
		if !s.Valid() {
			t.Errorf("status %s has no display entry", s)
		}
		d := s.Display()
		if d.Label == "" || d.Icon == "" {
			t.Errorf("status %s has empty display metadata: %+v", s, d)
		}
	}
}

func TestOrderStatusDisplayComplete(t *testing.T) {
	if len(AllOrderStatuses) != 10 {
		t.Fatalf("expected 10 pharmacy order statuses, got %d", len(AllOrderStatuses))
	}
	for _, s := range AllOrderStatuses {
		d := s.Display()
		if d.Label == "" || d.Icon == "" {
			t.Errorf("status %s has empty display metadata: %+v", s, d)
		}
	}
}

func TestVideoSessionStatusDisplayComplete(t *testing.T) {
	if len(AllVideoSessionStatuses) != 8 {
		t.Fatalf("expected 8 video session statuses, got %d", len(AllVideoSessionStatuses))
	}
	for _, s := range AllVideoSessionStatuses {
		d := s.Display()
		if d.Label == "" || d.Icon == "" {
			t.Errorf("status %s has empty display metadata: %+v", s, d)
		}
	}
}

func TestBookedSlotStatusDisplayComplete(t *testing.T) {
	if len(AllBookedSlotStatuses) != 4 {
		t.Fatalf("expected 4 booked slot statuses, got %d", len(AllBookedSlotStatuses))
	}
	for _, s := range AllBookedSlotStatuses {
		d := s.Display()
		if d.Label == "" || d.Icon == "" {
			t.Errorf("status %s has empty display metadata: %+v", s, d)
		}
	}
}

func TestSubscriptionStatusDisplayComplete(t *testing.T) {
	if len(AllSubscriptionStatuses) != 4 {
		t.Fatalf("expected 4 subscription statuses, got %d", len(AllSubscriptionStatuses))
	}
	for _, s := range AllSubscriptionStatuses {
		d := s.Display()
		if d.Label == "" || d.Icon == "" {
			t.Errorf("status %s has empty display metadata: %+v", s, d)
		}
	}
}

func TestRoleDisplayComplete(t *testing.T) {
	if len(AllRoles) != 7 {
		t.Fatalf("expected 7 roles, got %d", len(AllRoles))
	}
	for _, r := range AllRoles {
		if !r.Valid() {
			t.Errorf("role %s has no display entry", r)
		}
		d := r.Display()
		if d.Label == "" || d.Color == "" {
			t.Errorf("role %s has empty display metadata: %+v", r, d)
		}
	}
}

func TestUnmappedStatusFallsBack(t *testing.T) {
	d := LabOrderStatus("NOT_A_STATUS").Display()
	if d.Label != "Unknown" {
		t.Errorf("expected Unknown fallback label, got %q", d.Label)
	}
	if LabOrderStatus("NOT_A_STATUS").Valid() {
		t.Error("unknown value should not be valid")
	}
}

func TestLabOrderTerminalStatuses(t *testing.T) {
	terminal := []LabOrderStatus{LabOrderStatusCancelled, LabOrderStatusExpired, LabOrderStatusClosed}
	for _, s := range terminal {
		if !s.IsTerminal() {
			t.Errorf("expected %s to be terminal", s)
		}
	}
	if LabOrderStatusProcessing.IsTerminal() {
		t.Error("PROCESSING must not be terminal")
	}
}
