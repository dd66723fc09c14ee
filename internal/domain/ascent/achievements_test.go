package ascent

import (
	"slices"
	"testing"

	"skyladder/internal/domain/meta"
)

func TestEvaluateAchievements_UnlocksMatchingConditions(t *testing.T) {
	p := fixedPlayer()
	p.TotalCraftCount = 1
	p.Floor = 10
	p.Stones = 1200

	rec, unlocked := EvaluateAchievements(p, meta.NewRecord())
	for _, id := range []string{meta.AchievementFirstPill, meta.AchievementFloor10, meta.AchievementRichMan} {
		if !slices.Contains(unlocked, id) || !rec.IsUnlocked(id) {
			t.Fatalf("expected %s to unlock, got %v", id, unlocked)
		}
	}
	if rec.IsUnlocked(meta.AchievementMillionaire) || rec.IsUnlocked(meta.AchievementFloor30) {
		t.Fatalf("unexpected unlock: %+v", rec.Achievements)
	}
}

func TestEvaluateAchievements_IsMonotonic(t *testing.T) {
	p := fixedPlayer()
	p.Stones = 6000
	rec, _ := EvaluateAchievements(p, meta.NewRecord())
	if !rec.IsUnlocked(meta.AchievementMillionaire) {
		t.Fatalf("expected millionaire")
	}

	p.Stones = 0
	again, unlocked := EvaluateAchievements(p, rec)
	if len(unlocked) != 0 {
		t.Fatalf("re-evaluation should unlock nothing, got %v", unlocked)
	}
	if !again.IsUnlocked(meta.AchievementMillionaire) {
		t.Fatalf("unlocked achievements must never revert")
	}
}

func TestEvaluateAchievements_RecordAndEquipmentConditions(t *testing.T) {
	p := fixedPlayer()
	p.BossesDefeated = 1
	p.Equipment.Equip(Equipment{Slot: SlotWeapon, Rarity: RarityLegendary})
	r := meta.NewRecord()
	r.RebirthCount = 5

	rec, unlocked := EvaluateAchievements(p, r)
	for _, id := range []string{meta.AchievementBossSlayer, meta.AchievementImmortalWeapon, meta.AchievementReincarnate5} {
		if !rec.IsUnlocked(id) {
			t.Fatalf("expected %s, got %v", id, unlocked)
		}
	}
	if r.IsUnlocked(meta.AchievementBossSlayer) {
		t.Fatalf("input record must not be mutated")
	}
}
