package meta

import (
	"encoding/json"
	"testing"
)

func TestNewRecord_AllLocked(t *testing.T) {
	r := NewRecord()
	if len(r.Achievements) != 13 {
		t.Fatalf("canonical achievements = %d, want 13", len(r.Achievements))
	}
	for _, a := range r.Achievements {
		if a.Unlocked {
			t.Fatalf("%s should start locked", a.ID)
		}
	}
	if r.Points != 0 || r.RebirthCount != 0 || r.Talents != (Talents{}) {
		t.Fatalf("unexpected defaults: %+v", r)
	}
}

func TestDecode_MissingOrCorrupt(t *testing.T) {
	for _, raw := range [][]byte{nil, []byte(""), []byte("{not json"), []byte("[1,2]")} {
		r, ok := Decode(raw)
		if ok {
			t.Fatalf("Decode(%q) reported usable", raw)
		}
		if len(r.Achievements) != len(canonicalAchievements) {
			t.Fatalf("Decode(%q) did not fall back to defaults", raw)
		}
	}
}

func TestDecode_DefaultsMissingFields(t *testing.T) {
	r, ok := Decode([]byte(`{"points":40}`))
	if !ok {
		t.Fatalf("expected usable payload")
	}
	if r.Points != 40 || r.RebirthCount != 0 || r.Talents != (Talents{}) {
		t.Fatalf("unexpected record: %+v", r)
	}
	if len(r.Achievements) != len(canonicalAchievements) {
		t.Fatalf("achievements not defaulted: %+v", r.Achievements)
	}
}

func TestDecode_MergesAchievementsAndRepairsNegatives(t *testing.T) {
	raw := []byte(`{"talents":{"baseAttributes":-2,"interestCap":3},"points":-5,"rebirthCount":-1,
		"achievements":[{"id":"floor_10","unlocked":true},{"id":"legacy_badge","unlocked":true}]}`)
	r, ok := Decode(raw)
	if !ok {
		t.Fatalf("expected usable payload")
	}
	if r.Points != 0 || r.RebirthCount != 0 || r.Talents.BaseAttributes != 0 || r.Talents.InterestCap != 3 {
		t.Fatalf("negatives not repaired: %+v", r)
	}
	if !r.IsUnlocked(AchievementFloor10) || r.IsUnlocked(AchievementFirstPill) {
		t.Fatalf("merge lost unlock state: %+v", r.Achievements)
	}
	if !r.IsUnlocked("legacy_badge") {
		t.Fatalf("unknown achievement ids must be kept")
	}
	if len(r.Achievements) != len(canonicalAchievements)+1 {
		t.Fatalf("achievements = %d, want %d", len(r.Achievements), len(canonicalAchievements)+1)
	}
}

func TestEncode_UsesSaveFieldNames(t *testing.T) {
	raw, err := Encode(NewRecord())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, key := range []string{"talents", "points", "achievements", "rebirthCount"} {
		if _, ok := doc[key]; !ok {
			t.Fatalf("missing key %q in %s", key, raw)
		}
	}
	talents := doc["talents"].(map[string]any)
	for _, key := range []string{"baseAttributes", "interestCap", "alchemyEfficiency", "inheritanceRate"} {
		if _, ok := talents[key]; !ok {
			t.Fatalf("missing talent key %q", key)
		}
	}
}

func TestUnlock_IsOneWay(t *testing.T) {
	r := NewRecord()
	if !r.Unlock(AchievementRichMan) {
		t.Fatalf("first unlock should report a change")
	}
	if r.Unlock(AchievementRichMan) {
		t.Fatalf("second unlock should be a no-op")
	}
	clone := r.Clone()
	clone.Achievements[0].Unlocked = true
	if r.Achievements[0].Unlocked {
		t.Fatalf("clone shares achievement storage")
	}
}
