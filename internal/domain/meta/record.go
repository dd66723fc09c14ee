package meta

import (
	"encoding/json"
	"slices"
)

// Talents are permanent upgrades bought with rebirth points.
type Talents struct {
	BaseAttributes    int `json:"baseAttributes"`
	InterestCap       int `json:"interestCap"`
	AlchemyEfficiency int `json:"alchemyEfficiency"`
	InheritanceRate   int `json:"inheritanceRate"`
}

type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Unlocked    bool   `json:"unlocked"`
}

// Record is the cross-run save document for one profile.
type Record struct {
	Talents      Talents       `json:"talents"`
	Points       int           `json:"points"`
	Achievements []Achievement `json:"achievements"`
	RebirthCount int           `json:"rebirthCount"`
}

const (
	AchievementFirstPill      = "first_pill"
	AchievementFloor10        = "floor_10"
	AchievementFloor30        = "floor_30"
	AchievementImmortal       = "immortal"
	AchievementFloor60        = "floor_60"
	AchievementFloor99        = "floor_99"
	AchievementBossSlayer     = "boss_slayer"
	AchievementRichMan        = "rich_man"
	AchievementMillionaire    = "millionaire"
	AchievementAlchemyMaster  = "alchemy_master"
	AchievementAlchemyGod     = "alchemy_god"
	AchievementReincarnate5   = "reincarnate_5"
	AchievementImmortalWeapon = "immortal_weapon"
)

var canonicalAchievements = []Achievement{
	{ID: AchievementFirstPill, Name: "First Steps", Description: "Craft a pill for the first time"},
	{ID: AchievementFloor10, Name: "Through the Gate", Description: "Reach floor 10"},
	{ID: AchievementFloor30, Name: "Cloud Walker", Description: "Reach floor 30"},
	{ID: AchievementImmortal, Name: "Half-Step Immortal", Description: "Reach floor 50"},
	{ID: AchievementFloor60, Name: "Above the Storm", Description: "Reach floor 60"},
	{ID: AchievementFloor99, Name: "Summit", Description: "Reach floor 99"},
	{ID: AchievementBossSlayer, Name: "Demon Slayer", Description: "Defeat a floor lord"},
	{ID: AchievementRichMan, Name: "Deep Pockets", Description: "Hold at least 1000 stones"},
	{ID: AchievementMillionaire, Name: "Treasury", Description: "Hold at least 5000 stones"},
	{ID: AchievementAlchemyMaster, Name: "Alchemy Master", Description: "Craft 20 pills in one run"},
	{ID: AchievementAlchemyGod, Name: "Alchemy Sovereign", Description: "Craft 100 pills in one run"},
	{ID: AchievementReincarnate5, Name: "Wheel of Rebirth", Description: "Die and return five times"},
	{ID: AchievementImmortalWeapon, Name: "Heaven-Piercing Blade", Description: "Wield a legendary weapon"},
}

// CanonicalAchievements returns a fresh, all-locked copy of the known set.
func CanonicalAchievements() []Achievement {
	return slices.Clone(canonicalAchievements)
}

// AchievementName returns the display name of a canonical achievement, or
// the id itself.
func AchievementName(id string) string {
	for _, a := range canonicalAchievements {
		if a.ID == id {
			return a.Name
		}
	}
	return id
}

func NewRecord() Record {
	return Record{Achievements: CanonicalAchievements()}
}

// Clone returns a copy that shares no slices with r.
func (r Record) Clone() Record {
	out := r
	out.Achievements = slices.Clone(r.Achievements)
	return out
}

func (r Record) IsUnlocked(id string) bool {
	for _, a := range r.Achievements {
		if a.ID == id {
			return a.Unlocked
		}
	}
	return false
}

// Unlock flips id to unlocked and reports whether it was locked before.
// Unknown ids are appended.
func (r *Record) Unlock(id string) bool {
	for i := range r.Achievements {
		if r.Achievements[i].ID == id {
			if r.Achievements[i].Unlocked {
				return false
			}
			r.Achievements[i].Unlocked = true
			return true
		}
	}
	r.Achievements = append(r.Achievements, Achievement{ID: id, Unlocked: true})
	return true
}

// Normalize repairs a record loaded from an older or damaged save: negative
// counters become zero and the canonical achievements are merged in by id.
// Unknown ids are kept.
func (r Record) Normalize() Record {
	out := r.Clone()
	out.Talents.BaseAttributes = max(out.Talents.BaseAttributes, 0)
	out.Talents.InterestCap = max(out.Talents.InterestCap, 0)
	out.Talents.AlchemyEfficiency = max(out.Talents.AlchemyEfficiency, 0)
	out.Talents.InheritanceRate = max(out.Talents.InheritanceRate, 0)
	out.Points = max(out.Points, 0)
	out.RebirthCount = max(out.RebirthCount, 0)

	merged := make([]Achievement, 0, len(canonicalAchievements)+len(out.Achievements))
	seen := make(map[string]bool, len(out.Achievements))
	for _, c := range canonicalAchievements {
		a := c
		for _, have := range out.Achievements {
			if have.ID == c.ID {
				a.Unlocked = have.Unlocked
				break
			}
		}
		seen[c.ID] = true
		merged = append(merged, a)
	}
	for _, have := range out.Achievements {
		if have.ID == "" || seen[have.ID] {
			continue
		}
		seen[have.ID] = true
		merged = append(merged, have)
	}
	out.Achievements = merged
	return out
}

// Decode parses a stored record. Missing or unreadable documents yield
// NewRecord; the bool reports whether the payload was usable.
func Decode(raw []byte) (Record, bool) {
	if len(raw) == 0 {
		return NewRecord(), false
	}
	var r Record
	if err := json.Unmarshal(raw, &r); err != nil {
		return NewRecord(), false
	}
	return r.Normalize(), true
}

func Encode(r Record) ([]byte, error) {
	return json.Marshal(r)
}
