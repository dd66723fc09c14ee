package ascent

type EventID string

const (
	EventBlindMusician  EventID = "blind_musician"
	EventKarmaMillstone EventID = "karma_millstone"
	EventFallingFlame   EventID = "falling_flame"
	EventRoadsideTomb   EventID = "roadside_tomb"
)

// EventPool is the set a story acknowledgement draws from, uniformly.
var EventPool = []EventID{EventBlindMusician, EventKarmaMillstone, EventFallingFlame, EventRoadsideTomb}

const EventOptionCount = 2

// eventOutcome describes what an option did. Rejected options leave the
// player untouched.
type eventOutcome struct {
	Message  string
	Rejected bool
	Drop     *Equipment
}

type eventOption func(p *Player, floor int, dice Dice, content Content) eventOutcome

var eventOptions = map[EventID][EventOptionCount]eventOption{
	EventBlindMusician:  {musicianForOthers, musicianForSelf},
	EventKarmaMillstone: {millstoneEndure, millstoneDetour},
	EventFallingFlame:   {flameAbsorb, flameQuench},
	EventRoadsideTomb:   {tombPayRespects, tombDig},
}

func KnownEvent(id EventID) bool {
	_, ok := eventOptions[id]
	return ok
}

// resolveEvent applies option index of id to a copy of p.
func resolveEvent(id EventID, index int, p Player, dice Dice, content Content) (Player, eventOutcome, error) {
	opts, ok := eventOptions[id]
	if !ok || index < 0 || index >= EventOptionCount {
		return p, eventOutcome{}, ErrInvalidOption
	}
	next := p.Clone()
	out := opts[index](&next, p.Floor, dice, content)
	if out.Rejected {
		return p, out, nil
	}
	return next, out, nil
}

func musicianForOthers(p *Player, _ int, _ Dice, _ Content) eventOutcome {
	p.Stones -= fractionOf(p.Stones, 0.2)
	p.Attributes.Spirit += 15
	return eventOutcome{Message: "The melody sinks into your soul. Your spirit has never been clearer."}
}

func musicianForSelf(p *Player, _ int, _ Dice, _ Content) eventOutcome {
	p.Attributes.Essence += 15
	p.Attributes.Agility = max(0, p.Attributes.Agility-10)
	return eventOutcome{Message: "You steady your resolve and your essence surges."}
}

func millstoneEndure(p *Player, _ int, _ Dice, _ Content) eventOutcome {
	p.HP = max(1, p.HP-fractionOf(p.HP, 0.5))
	p.Attributes.Physique += 20
	p.recomputeMaxHP()
	return eventOutcome{Message: "Ground down and remade, your body hardens."}
}

func millstoneDetour(p *Player, _ int, _ Dice, _ Content) eventOutcome {
	p.Attributes.Agility += 5
	return eventOutcome{Message: "You slip carefully around the grinding wheel."}
}

func flameAbsorb(p *Player, _ int, _ Dice, _ Content) eventOutcome {
	if p.Stones < 50 {
		return eventOutcome{Message: "Not enough stones to bind the flame. You step around it.", Rejected: true}
	}
	p.Stones -= 50
	p.Elements.Fire += 15
	return eventOutcome{Message: "Your array holds and the strange fire is refined."}
}

func flameQuench(p *Player, _ int, _ Dice, _ Content) eventOutcome {
	p.HP = max(1, p.HP-30)
	p.Elements.Water += 10
	return eventOutcome{Message: "The fire dies, leaving pure water essence behind."}
}

func tombPayRespects(p *Player, _ int, _ Dice, _ Content) eventOutcome {
	if p.Stones < 50 {
		return eventOutcome{Message: "With empty sleeves you offer only your respect.", Rejected: true}
	}
	p.Stones -= 50
	for _, k := range ElementKeys {
		p.Elements.add(k, 10)
	}
	return eventOutcome{Message: "The elder's legacy answers. Your five elements flow in balance."}
}

func tombDig(p *Player, floor int, dice Dice, content Content) eventOutcome {
	out := eventOutcome{Message: "You unearth a relic, but the grave's chill clings to you."}
	if drop, ok := GenerateEquipment(floor, dice, content); ok {
		p.Equipment.Equip(drop)
		out.Drop = &drop
	}
	for _, k := range AttributeKeys {
		p.Attributes.add(k, -min(5, p.Attributes.Get(k)))
	}
	p.recomputeMaxHP()
	return out
}
