package ascent

// Bonds lists the elemental resonances a player has reached. Wood and water
// are reported but carry no combat effect.
type Bonds struct {
	Gold  bool `json:"gold"`
	Wood  bool `json:"wood"`
	Water bool `json:"water"`
	Fire  bool `json:"fire"`
	Earth bool `json:"earth"`
}

func CheckBonds(e FiveElements) Bonds {
	return Bonds{
		Gold:  e.Gold >= BondThreshold,
		Wood:  e.Wood >= BondThreshold,
		Water: e.Water >= BondThreshold,
		Fire:  e.Fire >= BondThreshold,
		Earth: e.Earth >= BondThreshold,
	}
}

func (b Bonds) Active() []ElementKey {
	out := make([]ElementKey, 0, len(ElementKeys))
	for _, k := range ElementKeys {
		if b.has(k) {
			out = append(out, k)
		}
	}
	return out
}

func (b Bonds) has(k ElementKey) bool {
	switch k {
	case ElementGold:
		return b.Gold
	case ElementWood:
		return b.Wood
	case ElementWater:
		return b.Water
	case ElementFire:
		return b.Fire
	case ElementEarth:
		return b.Earth
	}
	return false
}
