package ascent

import "skyladder/internal/domain/meta"

func (a *Attributes) add(k AttributeKey, n int) {
	switch k {
	case AttrPhysique:
		a.Physique += n
	case AttrEssence:
		a.Essence += n
	case AttrSpirit:
		a.Spirit += n
	case AttrAgility:
		a.Agility += n
	}
}

func (a Attributes) Get(k AttributeKey) int {
	switch k {
	case AttrPhysique:
		return a.Physique
	case AttrEssence:
		return a.Essence
	case AttrSpirit:
		return a.Spirit
	case AttrAgility:
		return a.Agility
	}
	return 0
}

func (a Attributes) Plus(b Attributes) Attributes {
	return Attributes{
		Physique: a.Physique + b.Physique,
		Essence:  a.Essence + b.Essence,
		Spirit:   a.Spirit + b.Spirit,
		Agility:  a.Agility + b.Agility,
	}
}

func (e *FiveElements) add(k ElementKey, n int) {
	switch k {
	case ElementGold:
		e.Gold += n
	case ElementWood:
		e.Wood += n
	case ElementWater:
		e.Water += n
	case ElementFire:
		e.Fire += n
	case ElementEarth:
		e.Earth += n
	}
}

func (e FiveElements) Get(k ElementKey) int {
	switch k {
	case ElementGold:
		return e.Gold
	case ElementWood:
		return e.Wood
	case ElementWater:
		return e.Water
	case ElementFire:
		return e.Fire
	case ElementEarth:
		return e.Earth
	}
	return 0
}

func (e FiveElements) Plus(o FiveElements) FiveElements {
	return FiveElements{
		Gold:  e.Gold + o.Gold,
		Wood:  e.Wood + o.Wood,
		Water: e.Water + o.Water,
		Fire:  e.Fire + o.Fire,
		Earth: e.Earth + o.Earth,
	}
}

// Get returns the item in slot, or nil.
func (l Loadout) Get(s Slot) *Equipment {
	switch s {
	case SlotWeapon:
		return l.Weapon
	case SlotArmor:
		return l.Armor
	case SlotAccessory:
		return l.Accessory
	}
	return nil
}

// Equip replaces whatever occupies the item's slot.
func (l *Loadout) Equip(eq Equipment) {
	item := eq
	switch eq.Slot {
	case SlotWeapon:
		l.Weapon = &item
	case SlotArmor:
		l.Armor = &item
	case SlotAccessory:
		l.Accessory = &item
	}
}

// NewPlayer starts a run from the permanent talents.
func NewPlayer(t meta.Talents) Player {
	p := Player{
		Stones:  StartingStones + max(t.InheritanceRate, 0)*StartingStonesPerLegacy,
		Floor:   1,
		Talents: t,
		Attributes: Attributes{
			Physique: StartingPhysique + t.BaseAttributes*PhysiquePerTalentLevel,
			Essence:  StartingEssence + t.BaseAttributes*AttributePerTalentLevel,
			Spirit:   StartingSpirit + t.BaseAttributes*AttributePerTalentLevel,
			Agility:  StartingAgility + t.BaseAttributes*AttributePerTalentLevel,
		},
	}
	p.recomputeMaxHP()
	p.HP = p.MaxHP
	return p
}

// CombatStats sums base attributes and every equipped bonus.
func CombatStats(p Player) Attributes {
	out := p.Attributes
	for _, s := range Slots {
		if eq := p.Equipment.Get(s); eq != nil {
			out = out.Plus(eq.Stats)
		}
	}
	return out
}

// Clone returns a deep copy; equipment pointers are not shared.
func (p Player) Clone() Player {
	out := p
	for _, s := range Slots {
		if eq := p.Equipment.Get(s); eq != nil {
			out.Equipment.Equip(*eq)
		}
	}
	return out
}

func (p *Player) recomputeMaxHP() {
	if p.Attributes.Physique < MinPhysique {
		p.Attributes.Physique = MinPhysique
	}
	p.MaxHP = p.Attributes.Physique * HPPerPhysique
	p.clampHP()
}

func (p *Player) clampHP() {
	if p.HP > p.MaxHP {
		p.HP = p.MaxHP
	}
	if p.HP < 0 {
		p.HP = 0
	}
}

func (p *Player) heal(n int) {
	p.HP += n
	p.clampHP()
}

func (p *Player) consume(pill Pill) {
	p.Attributes = p.Attributes.Plus(pill.Attributes)
	p.Elements = p.Elements.Plus(pill.Elements)
	p.recomputeMaxHP()
}

func (p *Player) advanceTutorial(from int) {
	if p.TutorialStep == from && p.TutorialStep < TutorialFinalStep {
		p.TutorialStep++
	}
}
