package ascent

import (
	"time"

	"skyladder/internal/domain/meta"
)

type AttributeKey string

const (
	AttrPhysique AttributeKey = "physique"
	AttrEssence  AttributeKey = "essence"
	AttrSpirit   AttributeKey = "spirit"
	AttrAgility  AttributeKey = "agility"
)

var AttributeKeys = []AttributeKey{AttrPhysique, AttrEssence, AttrSpirit, AttrAgility}

type Attributes struct {
	Physique int `json:"physique"`
	Essence  int `json:"essence"`
	Spirit   int `json:"spirit"`
	Agility  int `json:"agility"`
}

type ElementKey string

const (
	ElementGold  ElementKey = "gold"
	ElementWood  ElementKey = "wood"
	ElementWater ElementKey = "water"
	ElementFire  ElementKey = "fire"
	ElementEarth ElementKey = "earth"
)

var ElementKeys = []ElementKey{ElementGold, ElementWood, ElementWater, ElementFire, ElementEarth}

type FiveElements struct {
	Gold  int `json:"gold"`
	Wood  int `json:"wood"`
	Water int `json:"water"`
	Fire  int `json:"fire"`
	Earth int `json:"earth"`
}

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Rarities is ordered from lowest to highest; the index is the rarity rank.
var Rarities = []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityLegendary}

var rarityColors = map[Rarity]string{
	RarityCommon:    "#a8a29e",
	RarityUncommon:  "#22c55e",
	RarityRare:      "#3b82f6",
	RarityEpic:      "#a855f7",
	RarityLegendary: "#f97316",
}

type Realm string

const (
	RealmQiRefining          Realm = "qi_refining"
	RealmFoundation          Realm = "foundation"
	RealmGoldenCore          Realm = "golden_core"
	RealmNascentSoul         Realm = "nascent_soul"
	RealmDeityTransformation Realm = "deity_transformation"
)

type Slot string

const (
	SlotWeapon    Slot = "weapon"
	SlotArmor     Slot = "armor"
	SlotAccessory Slot = "accessory"
)

var Slots = []Slot{SlotWeapon, SlotArmor, SlotAccessory}

type Equipment struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Slot   Slot       `json:"slot"`
	Rarity Rarity     `json:"rarity"`
	Stats  Attributes `json:"stats"`
	Color  string     `json:"color"`
}

type Loadout struct {
	Weapon    *Equipment `json:"weapon,omitempty"`
	Armor     *Equipment `json:"armor,omitempty"`
	Accessory *Equipment `json:"accessory,omitempty"`
}

type Pill struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Rarity     Rarity       `json:"rarity"`
	Attributes Attributes   `json:"attributes"`
	Elements   FiveElements `json:"elements"`
	Color      string       `json:"color"`
}

type Monster struct {
	Name   string `json:"name"`
	HP     int    `json:"hp"`
	MaxHP  int    `json:"max_hp"`
	Atk    int    `json:"atk"`
	Realm  Realm  `json:"realm"`
	IsBoss bool   `json:"is_boss"`
}

// Player is the run-scoped character. Talents holds the levels in force when
// the run started; upgrades bought mid-run apply from the next run.
type Player struct {
	HP                         int          `json:"hp"`
	MaxHP                      int          `json:"max_hp"`
	Stones                     int          `json:"stones"`
	Floor                      int          `json:"floor"`
	Attributes                 Attributes   `json:"attributes"`
	Elements                   FiveElements `json:"elements"`
	Equipment                  Loadout      `json:"equipment"`
	Talents                    meta.Talents `json:"talents"`
	CraftAttemptsThisFloor     int          `json:"craft_attempts_this_floor"`
	PendingGuaranteedRareCraft bool         `json:"pending_guaranteed_rare_craft"`
	TutorialStep               int          `json:"tutorial_step"`
	TotalCraftCount            int          `json:"total_craft_count"`
	BossesDefeated             int          `json:"bosses_defeated"`
	Summited                   bool         `json:"summited"`
}

type Phase string

const (
	PhaseNone           Phase = "none"
	PhaseIdle           Phase = "idle_at_floor"
	PhaseCraftingChoice Phase = "crafting_choice_pending"
	PhaseRandomEvent    Phase = "random_event_pending"
	PhaseStoryReveal    Phase = "story_reveal_pending"
	PhaseDead           Phase = "dead_awaiting_rebirth"
)

type RunState struct {
	ProfileID    string     `json:"profile_id"`
	Phase        Phase      `json:"phase"`
	Player       *Player    `json:"player,omitempty"`
	Monster      *Monster   `json:"monster,omitempty"`
	OfferedPills []Pill     `json:"offered_pills,omitempty"`
	ActiveEvent  EventID    `json:"active_event,omitempty"`
	StoryText    string     `json:"story_text,omitempty"`
	LastDrop     *Equipment `json:"last_drop,omitempty"`
	Version      int64      `json:"version"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type IntentType string

const (
	IntentStartRun         IntentType = "start_run"
	IntentCraft            IntentType = "craft"
	IntentSelectConsumable IntentType = "select_consumable"
	IntentAdvance          IntentType = "advance"
	IntentRest             IntentType = "rest"
	IntentAcknowledgeStory IntentType = "acknowledge_story"
	IntentResolveEvent     IntentType = "resolve_event"
	IntentUpgradeTalent    IntentType = "upgrade_talent"
	IntentStartNewRun      IntentType = "start_new_run"
)

type Intent struct {
	Type        IntentType `json:"type"`
	PillID      string     `json:"pill_id,omitempty"`
	OptionIndex int        `json:"option_index,omitempty"`
	Talent      string     `json:"talent,omitempty"`
}

type Category string

const (
	CategoryPlayer   Category = "player"
	CategoryMonster  Category = "monster"
	CategorySystem   Category = "system"
	CategoryCritical Category = "critical"
	CategoryDrop     Category = "drop"
	CategoryEvent    Category = "event"
)

type DomainEvent struct {
	Type       string         `json:"type"`
	Category   Category       `json:"category"`
	Message    string         `json:"message"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload,omitempty"`
}

type ResultCode string

const (
	ResultOK       ResultCode = "OK"
	ResultRejected ResultCode = "REJECTED"
	ResultDeath    ResultCode = "DEATH"
)
