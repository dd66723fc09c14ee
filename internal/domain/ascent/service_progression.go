package ascent

import (
	"errors"
	"fmt"
	"time"

	"skyladder/internal/domain/meta"
)

var (
	ErrIntentNotAllowed = errors.New("intent not allowed in current phase")
	ErrUnknownIntent    = errors.New("unknown intent")
	ErrUnknownPill      = errors.New("unknown pill")
	ErrInvalidOption    = errors.New("invalid event option")
	ErrUnknownTalent    = meta.ErrUnknownTalent
	ErrMissingDice      = errors.New("progression service has no dice")
)

type Resolution struct {
	Run           RunState
	Record        meta.Record
	Events        []DomainEvent
	ResultCode    ResultCode
	RecordChanged bool
}

// ProgressionService applies one player intent to a run. It is pure apart
// from Dice and Now and never mutates its inputs.
type ProgressionService struct {
	Dice    Dice
	Content Content
	Now     func() time.Time
}

// allowedPhases lists where each run intent may be sent. upgrade_talent is
// accepted in every phase and is not listed.
var allowedPhases = map[IntentType]Phase{
	IntentStartRun:         PhaseNone,
	IntentCraft:            PhaseIdle,
	IntentSelectConsumable: PhaseCraftingChoice,
	IntentAdvance:          PhaseIdle,
	IntentRest:             PhaseIdle,
	IntentAcknowledgeStory: PhaseStoryReveal,
	IntentResolveEvent:     PhaseRandomEvent,
	IntentStartNewRun:      PhaseDead,
}

// AllowedIntents returns the intents a run in phase accepts.
func AllowedIntents(phase Phase) []IntentType {
	out := make([]IntentType, 0, 3)
	for _, it := range []IntentType{
		IntentStartRun, IntentCraft, IntentSelectConsumable, IntentAdvance, IntentRest,
		IntentAcknowledgeStory, IntentResolveEvent, IntentStartNewRun,
	} {
		if allowedPhases[it] == phase {
			out = append(out, it)
		}
	}
	return append(out, IntentUpgradeTalent)
}

func (s ProgressionService) Apply(run RunState, record meta.Record, intent Intent) (Resolution, error) {
	if s.Dice == nil {
		return Resolution{}, ErrMissingDice
	}
	if run.Phase == "" {
		run.Phase = PhaseNone
	}
	if intent.Type != IntentUpgradeTalent {
		want, ok := allowedPhases[intent.Type]
		if !ok {
			return Resolution{}, ErrUnknownIntent
		}
		if want != run.Phase {
			return Resolution{}, ErrIntentNotAllowed
		}
		if run.Phase != PhaseNone && run.Phase != PhaseDead && run.Player == nil {
			return Resolution{}, ErrIntentNotAllowed
		}
	}

	st := &transition{
		svc:     s,
		content: contentOrDefault(s.Content),
		now:     s.now(),
		before:  run,
		run:     run.Clone(),
		record:  record.Clone(),
		code:    ResultOK,
	}

	var err error
	switch intent.Type {
	case IntentStartRun, IntentStartNewRun:
		st.startRun()
	case IntentCraft:
		st.craft()
	case IntentSelectConsumable:
		err = st.selectConsumable(intent.PillID)
	case IntentAdvance:
		st.advance()
	case IntentRest:
		st.rest()
	case IntentAcknowledgeStory:
		st.acknowledgeStory()
	case IntentResolveEvent:
		err = st.resolveEvent(intent.OptionIndex)
	case IntentUpgradeTalent:
		err = st.upgradeTalent(meta.TalentKey(intent.Talent))
	}
	if err != nil {
		return Resolution{}, err
	}
	return st.resolution(), nil
}

func (s ProgressionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

type transition struct {
	svc           ProgressionService
	content       Content
	now           time.Time
	before        RunState
	run           RunState
	record        meta.Record
	events        []DomainEvent
	code          ResultCode
	runChanged    bool
	recordChanged bool
}

func (t *transition) emit(typ string, cat Category, msg string, payload map[string]any) {
	t.events = append(t.events, DomainEvent{
		Type:       typ,
		Category:   cat,
		Message:    msg,
		OccurredAt: t.now,
		Payload:    payload,
	})
}

// reject records a validated no-op: the run is restored and only the
// explanatory event survives.
func (t *transition) reject(typ, msg string, payload map[string]any) {
	t.run = t.before.Clone()
	t.runChanged = false
	t.code = ResultRejected
	t.emit(typ, CategorySystem, msg, payload)
}

func (t *transition) resolution() Resolution {
	run := t.run
	if t.runChanged {
		run.Version++
		run.UpdatedAt = t.now
	}
	return Resolution{
		Run:           run,
		Record:        t.record,
		Events:        t.events,
		ResultCode:    t.code,
		RecordChanged: t.recordChanged,
	}
}

func (t *transition) startRun() {
	p := NewPlayer(t.record.Talents)
	m := GenerateMonster(p.Floor, t.svc.Dice, t.content)
	t.run = RunState{
		ProfileID: t.before.ProfileID,
		Phase:     PhaseIdle,
		Player:    &p,
		Monster:   &m,
		Version:   t.before.Version,
		UpdatedAt: t.before.UpdatedAt,
	}
	t.runChanged = true
	t.emit("run_started", CategorySystem, "Nine heavens of stairs, ten thousand ages of pagodas. You climb again.", map[string]any{
		"stones":  p.Stones,
		"max_hp":  p.MaxHP,
		"monster": m.Name,
	})
}

func (t *transition) craft() {
	p := t.run.Player
	cost := CalculateCraftCost(p.CraftAttemptsThisFloor, p.Talents.AlchemyEfficiency)
	if p.Stones < cost {
		t.reject("craft_rejected", "Not enough stones to light the furnace.", map[string]any{
			"cost":   cost,
			"stones": p.Stones,
		})
		return
	}

	t.runChanged = true
	p.Stones -= cost
	p.CraftAttemptsThisFloor++
	p.TotalCraftCount++
	p.advanceTutorial(0)

	if chance := MishapChance(p.CraftAttemptsThisFloor); chance > 0 && t.svc.Dice.Float64() < chance {
		dmg := fractionOf(p.HP, MishapHPFraction)
		p.HP -= dmg
		p.PendingGuaranteedRareCraft = true
		t.emit("craft_mishap", CategoryCritical, fmt.Sprintf("The furnace bursts! You take %d backlash damage. The next batch will be legendary.", dmg), map[string]any{
			"cost":    cost,
			"damage":  dmg,
			"attempt": p.CraftAttemptsThisFloor,
		})
		if p.HP <= 0 {
			t.die()
		}
		return
	}

	t.run.OfferedPills = GeneratePills(p.Floor, p.PendingGuaranteedRareCraft, t.svc.Dice)
	p.PendingGuaranteedRareCraft = false
	t.run.Phase = PhaseCraftingChoice
	t.emit("pills_offered", CategoryPlayer, fmt.Sprintf("You spend %d stones and the furnace yields three pills.", cost), map[string]any{
		"cost":    cost,
		"attempt": p.CraftAttemptsThisFloor,
	})
}

func (t *transition) selectConsumable(pillID string) error {
	var chosen *Pill
	for i := range t.run.OfferedPills {
		if t.run.OfferedPills[i].ID == pillID {
			chosen = &t.run.OfferedPills[i]
			break
		}
	}
	if chosen == nil {
		return ErrUnknownPill
	}

	p := t.run.Player
	p.consume(*chosen)
	t.run.OfferedPills = nil
	t.run.Phase = PhaseIdle
	t.runChanged = true
	t.emit("pill_consumed", CategorySystem, "The medicine floods your meridians. Your cultivation surges.", map[string]any{
		"pill_id": chosen.ID,
		"rarity":  string(chosen.Rarity),
	})
	t.evaluateAchievements(*p)
	return nil
}

func (t *transition) advance() {
	p := t.run.Player
	m := t.run.Monster
	if m == nil {
		gen := GenerateMonster(p.Floor, t.svc.Dice, t.content)
		m = &gen
	}
	p.advanceTutorial(1)
	p.advanceTutorial(3)

	res := ResolveExchange(*p, *m, CombatStats(*p), CheckBonds(p.Elements), t.svc.Dice)
	strikeCat := CategoryPlayer
	msg := fmt.Sprintf("You deal %d damage.", res.DamageDealt)
	if res.Critical {
		strikeCat = CategoryCritical
		msg = fmt.Sprintf("You deal %d damage! (critical)", res.DamageDealt)
	}
	t.emit("strike", strikeCat, msg, map[string]any{
		"damage":   res.DamageDealt,
		"critical": res.Critical,
	})
	if res.Countered {
		t.emit("counterattack", CategoryMonster, fmt.Sprintf("%s strikes back for %d.", m.Name, res.DamageTaken), map[string]any{
			"damage": res.DamageTaken,
		})
	}

	*p = res.Player
	t.run.Monster = &res.Monster
	t.runChanged = true

	switch res.Outcome {
	case OutcomeMonsterDefeated:
		t.victory(res.Monster)
	case OutcomePlayerDefeated:
		t.die()
	}
}

func (t *transition) victory(defeated Monster) {
	p := t.run.Player
	interest := CalculateInterest(p.Stones, p.Talents.InterestCap)
	reward := VictoryReward(p.Floor)
	p.Stones += reward + interest
	p.heal(fractionOf(p.MaxHP, VictoryHealFraction))
	if defeated.IsBoss {
		p.BossesDefeated++
	}

	var drop *Equipment
	if eq, ok := GenerateEquipment(p.Floor, t.svc.Dice, t.content); ok {
		p.Equipment.Equip(eq)
		drop = &eq
		t.emit("equipment_dropped", CategoryDrop, fmt.Sprintf("Treasure! You obtain %s.", eq.Name), map[string]any{
			"slot":   string(eq.Slot),
			"rarity": string(eq.Rarity),
			"name":   eq.Name,
		})
	}
	t.run.LastDrop = drop

	if p.Floor >= MaxFloor {
		p.Summited = true
	} else {
		p.Floor++
	}
	p.CraftAttemptsThisFloor = 0

	m := GenerateMonster(p.Floor, t.svc.Dice, t.content)
	t.run.Monster = &m
	t.run.StoryText = t.content.FloorStory(p.Floor)
	t.run.Phase = PhaseStoryReveal
	t.emit("floor_cleared", CategorySystem, fmt.Sprintf("Victory! You ascend to floor %d.", p.Floor), map[string]any{
		"reward":   reward,
		"interest": interest,
		"floor":    p.Floor,
		"boss":     defeated.IsBoss,
		"summited": p.Summited,
	})
	t.evaluateAchievements(*p)
}

func (t *transition) rest() {
	p := t.run.Player
	if p.Stones < RestCost {
		t.reject("rest_rejected", "Not enough stones to circulate your qi.", map[string]any{
			"cost":   RestCost,
			"stones": p.Stones,
		})
		return
	}
	if p.HP >= p.MaxHP {
		t.reject("rest_rejected", "Your blood and qi are already full.", map[string]any{
			"hp": p.HP,
		})
		return
	}
	p.Stones -= RestCost
	healed := fractionOf(p.MaxHP, RestHealFraction)
	p.heal(healed)
	p.advanceTutorial(2)
	t.runChanged = true
	t.emit("rested", CategoryPlayer, fmt.Sprintf("You spend %d stones and recover %d hp.", RestCost, healed), map[string]any{
		"cost":   RestCost,
		"healed": healed,
	})
	t.evaluateAchievements(*p)
}

func (t *transition) acknowledgeStory() {
	t.run.StoryText = ""
	t.runChanged = true
	if t.svc.Dice.Float64() < StoryEventChance {
		id := EventPool[pickIndex(t.svc.Dice, len(EventPool))]
		t.run.ActiveEvent = id
		t.run.Phase = PhaseRandomEvent
		text := t.content.EventText(id)
		t.emit("event_triggered", CategoryEvent, text.Title, map[string]any{
			"event_id": string(id),
		})
		return
	}
	t.run.Phase = PhaseIdle
}

func (t *transition) resolveEvent(index int) error {
	id := t.run.ActiveEvent
	p, out, err := resolveEvent(id, index, *t.run.Player, t.svc.Dice, t.content)
	if err != nil {
		return err
	}
	*t.run.Player = p
	t.run.ActiveEvent = ""
	t.run.Phase = PhaseIdle
	t.runChanged = true
	if out.Rejected {
		t.code = ResultRejected
	}
	if out.Drop != nil {
		t.run.LastDrop = out.Drop
	}
	t.emit("event_resolved", CategoryEvent, out.Message, map[string]any{
		"event_id": string(id),
		"option":   index,
		"rejected": out.Rejected,
	})
	t.evaluateAchievements(p)
	return nil
}

func (t *transition) upgradeTalent(key meta.TalentKey) error {
	next, cost, ok, err := meta.UpgradeTalent(t.record, key)
	if err != nil {
		return err
	}
	if !ok {
		t.code = ResultRejected
		t.emit("talent_rejected", CategorySystem, "Not enough legacy points.", map[string]any{
			"talent": string(key),
			"cost":   cost,
			"points": t.record.Points,
		})
		return nil
	}
	t.record = next
	t.recordChanged = true
	level, _ := next.Talents.Level(key)
	t.emit("talent_upgraded", CategorySystem, fmt.Sprintf("Talent %s rises to level %d.", key, level), map[string]any{
		"talent": string(key),
		"level":  level,
		"cost":   cost,
	})
	return nil
}

// die credits the run to the record and discards the player.
func (t *transition) die() {
	final := t.run.Player.Clone()
	record, payout := meta.Rebirth(t.record, final.Floor, final.TotalCraftCount)
	t.record = record
	t.recordChanged = true
	t.code = ResultDeath
	t.emit("player_died", CategorySystem, fmt.Sprintf("Your body falls and your path ends... You carry %d legacy points into the wheel.", payout), map[string]any{
		"floor":         final.Floor,
		"payout":        payout,
		"rebirth_count": record.RebirthCount,
	})
	t.evaluateAchievements(final)

	t.run.Player = nil
	t.run.Monster = nil
	t.run.OfferedPills = nil
	t.run.ActiveEvent = ""
	t.run.StoryText = ""
	t.run.Phase = PhaseDead
	t.runChanged = true
}

func (t *transition) evaluateAchievements(p Player) {
	next, unlocked := EvaluateAchievements(p, t.record)
	if len(unlocked) == 0 {
		return
	}
	t.record = next
	t.recordChanged = true
	for _, id := range unlocked {
		t.emit("achievement_unlocked", CategorySystem, fmt.Sprintf("Achievement unlocked: %s!", meta.AchievementName(id)), map[string]any{
			"achievement_id": id,
		})
	}
}

// Clone returns a deep copy of r.
func (r RunState) Clone() RunState {
	out := r
	if r.Player != nil {
		p := r.Player.Clone()
		out.Player = &p
	}
	if r.Monster != nil {
		m := *r.Monster
		out.Monster = &m
	}
	if r.OfferedPills != nil {
		out.OfferedPills = append([]Pill(nil), r.OfferedPills...)
	}
	if r.LastDrop != nil {
		d := *r.LastDrop
		out.LastDrop = &d
	}
	return out
}
