package ascent

import "math"

type ExchangeOutcome string

const (
	OutcomeContinue        ExchangeOutcome = "continue"
	OutcomeMonsterDefeated ExchangeOutcome = "monster_defeated"
	OutcomePlayerDefeated  ExchangeOutcome = "player_defeated"
)

// ExchangeResult is one player strike followed by the monster's answer.
type ExchangeResult struct {
	Player      Player
	Monster     Monster
	DamageDealt int
	Critical    bool
	DamageTaken int
	Countered   bool
	Outcome     ExchangeOutcome
}

// ResolveExchange never mutates its inputs. The counterattack is applied
// before the death check, so Player.HP may be negative on OutcomePlayerDefeated.
// A killed monster reports HP 0 rather than the overkill value; callers replace
// it straight away.
func ResolveExchange(player Player, monster Monster, stats Attributes, bonds Bonds, dice Dice) ExchangeResult {
	res := ExchangeResult{Player: player.Clone(), Monster: monster, Outcome: OutcomeContinue}

	dmg := stats.Essence * BaseDamageMultiplier
	if bonds.Gold {
		dmg = int(math.Floor(float64(dmg) * GoldBondDamageFactor))
	}
	if dice.Float64() < float64(stats.Spirit)*CritChancePerSpirit {
		dmg *= CritDamageMultiplier
		res.Critical = true
	}
	if bonds.Fire {
		dmg += fractionOf(monster.MaxHP, FireBondMaxHPFraction)
	}
	res.DamageDealt = dmg
	res.Monster.HP -= dmg

	if res.Monster.HP <= 0 {
		res.Monster.HP = 0
		res.Outcome = OutcomeMonsterDefeated
		return res
	}

	taken := monster.Atk
	if bonds.Earth {
		taken = fractionOf(monster.Atk, EarthBondDamageFactor)
	}
	res.Countered = true
	res.DamageTaken = taken
	res.Player.HP -= taken
	if res.Player.HP <= 0 {
		res.Outcome = OutcomePlayerDefeated
	}
	return res
}
