package domain

import (
	"testing"
	"time"
)

func TestCatalogKeysUnique(t *testing.T) {
	keys := map[string]bool{}
	names := map[string]bool{}
	for _, a := range Catalog {
		if keys[a.Key] {
			t.Errorf("duplicate key %q", a.Key)
		}
		if names[a.Name] {
			t.Errorf("duplicate name %q", a.Name)
		}
		keys[a.Key] = true
		names[a.Name] = true
		if !ValidRarity(a.Rarity) {
			t.Errorf("%s: invalid rarity %q", a.Key, a.Rarity)
		}
		if a.Points <= 0 {
			t.Errorf("%s: points = %d, want > 0", a.Key, a.Points)
		}
	}
}

func TestCatalogCoversMilestones(t *testing.T) {
	keys := map[string]bool{}
	for _, a := range Catalog {
		keys[a.Key] = true
	}
	for _, m := range InviteMilestones {
		if !keys[m.Key] {
			t.Errorf("milestone %d: key %q missing from Catalog", m.Threshold, m.Key)
		}
	}
	if !keys[KeyCollector] {
		t.Error("collector missing from Catalog")
	}
}

func TestInviteMilestonesAscending(t *testing.T) {
	want := []int{1, 5, 10, 25}
	if len(InviteMilestones) != len(want) {
		t.Fatalf("len(InviteMilestones) = %d, want %d", len(InviteMilestones), len(want))
	}
	for i, m := range InviteMilestones {
		if m.Threshold != want[i] {
			t.Errorf("InviteMilestones[%d].Threshold = %d, want %d", i, m.Threshold, want[i])
		}
	}
}

func TestSessionExpired(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		exp  time.Time
		want bool
	}{
		{"zero never expires", time.Time{}, false},
		{"future", now.Add(time.Minute), false},
		{"exactly now", now, true},
		{"past", now.Add(-time.Minute), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Session{ExpiresAt: tt.exp}
			if got := s.Expired(now); got != tt.want {
				t.Errorf("Expired() = %v, want %v", got, tt.want)
			}
		})
	}
}
