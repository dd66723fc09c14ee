package status

import (
	"skyladder/internal/domain/ascent"
	"skyladder/internal/domain/meta"
)

type Request struct {
	ProfileID string
}

// View is derived from the run for display; nothing in it is stored.
type View struct {
	Realm           ascent.Realm        `json:"realm,omitempty"`
	CombatStats     ascent.Attributes   `json:"combat_stats"`
	Bonds           ascent.Bonds        `json:"bonds"`
	ActiveBonds     []ascent.ElementKey `json:"active_bonds"`
	CraftCost       int                 `json:"craft_cost"`
	NextMishap      float64             `json:"next_mishap_chance"`
	InterestPreview int                 `json:"interest_preview"`
	VictoryReward   int                 `json:"victory_reward"`
	RestCost        int                 `json:"rest_cost"`
	AllowedIntents  []ascent.IntentType `json:"allowed_intents"`
	TalentCosts     map[string]int      `json:"talent_costs"`
	EventText       *ascent.EventText   `json:"event_text,omitempty"`
}

type Response struct {
	Run  ascent.RunState `json:"run"`
	Save meta.Record     `json:"save"`
	View View            `json:"view"`
}
