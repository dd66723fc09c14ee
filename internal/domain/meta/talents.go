package meta

import "errors"

var ErrUnknownTalent = errors.New("unknown talent")

type TalentKey string

const (
	TalentBaseAttributes    TalentKey = "baseAttributes"
	TalentInterestCap       TalentKey = "interestCap"
	TalentAlchemyEfficiency TalentKey = "alchemyEfficiency"
	TalentInheritanceRate   TalentKey = "inheritanceRate"
)

var TalentKeys = []TalentKey{TalentBaseAttributes, TalentInterestCap, TalentAlchemyEfficiency, TalentInheritanceRate}

const (
	TalentCostStep = 20
	PayoutPerFloor = 5
	PayoutPerCraft = 2
)

func (t Talents) Level(k TalentKey) (int, error) {
	switch k {
	case TalentBaseAttributes:
		return t.BaseAttributes, nil
	case TalentInterestCap:
		return t.InterestCap, nil
	case TalentAlchemyEfficiency:
		return t.AlchemyEfficiency, nil
	case TalentInheritanceRate:
		return t.InheritanceRate, nil
	}
	return 0, ErrUnknownTalent
}

func (t *Talents) set(k TalentKey, v int) {
	switch k {
	case TalentBaseAttributes:
		t.BaseAttributes = v
	case TalentInterestCap:
		t.InterestCap = v
	case TalentAlchemyEfficiency:
		t.AlchemyEfficiency = v
	case TalentInheritanceRate:
		t.InheritanceRate = v
	}
}

// TalentCost is the price of the next level when the talent is at level.
func TalentCost(level int) int {
	return (max(level, 0) + 1) * TalentCostStep
}

// UpgradeTalent buys one level of k. ok is false when points are short; the
// record is returned unchanged in that case.
func UpgradeTalent(r Record, k TalentKey) (next Record, cost int, ok bool, err error) {
	level, err := r.Talents.Level(k)
	if err != nil {
		return r, 0, false, err
	}
	cost = TalentCost(level)
	if r.Points < cost {
		return r, cost, false, nil
	}
	next = r.Clone()
	next.Points -= cost
	next.Talents.set(k, level+1)
	return next, cost, true, nil
}

// DeathPayout is the points earned by a run that ended on floor after
// totalCrafts crafts.
func DeathPayout(floor, totalCrafts int) int {
	return max(floor, 0)*PayoutPerFloor + max(totalCrafts, 0)*PayoutPerCraft
}

// Rebirth credits a finished run to the record.
func Rebirth(r Record, floor, totalCrafts int) (Record, int) {
	payout := DeathPayout(floor, totalCrafts)
	next := r.Clone()
	next.Points += payout
	next.RebirthCount++
	return next, payout
}
