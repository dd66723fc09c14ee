package meta

import (
	"errors"
	"testing"
)

func TestTalentCost(t *testing.T) {
	for level, want := range []int{20, 40, 60, 80} {
		if got := TalentCost(level); got != want {
			t.Fatalf("TalentCost(%d) = %d, want %d", level, got, want)
		}
	}
}

func TestUpgradeTalent(t *testing.T) {
	r := NewRecord()
	r.Points = 50

	next, cost, ok, err := UpgradeTalent(r, TalentInterestCap)
	if err != nil || !ok || cost != 20 {
		t.Fatalf("upgrade = cost %d ok %v err %v", cost, ok, err)
	}
	if next.Points != 30 || next.Talents.InterestCap != 1 {
		t.Fatalf("unexpected record: %+v", next)
	}
	if r.Points != 50 || r.Talents.InterestCap != 0 {
		t.Fatalf("input record must not change")
	}

	again, cost, ok, err := UpgradeTalent(next, TalentInterestCap)
	if err != nil || ok || cost != 40 {
		t.Fatalf("expected rejection at cost 40, got cost %d ok %v err %v", cost, ok, err)
	}
	if again.Points != 30 || again.Talents.InterestCap != 1 {
		t.Fatalf("rejected upgrade must leave the record unchanged: %+v", again)
	}
}

func TestUpgradeTalent_UnknownKey(t *testing.T) {
	if _, _, _, err := UpgradeTalent(NewRecord(), "luck"); !errors.Is(err, ErrUnknownTalent) {
		t.Fatalf("expected ErrUnknownTalent, got %v", err)
	}
}

func TestRebirth(t *testing.T) {
	r := NewRecord()
	r.Points = 7
	next, payout := Rebirth(r, 12, 9)
	if payout != 78 {
		t.Fatalf("payout = %d, want 78", payout)
	}
	if next.Points != 85 || next.RebirthCount != 1 {
		t.Fatalf("unexpected record: %+v", next)
	}
}
