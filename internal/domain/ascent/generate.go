package ascent

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

func clampFloor(floor int) int {
	if floor < 1 {
		return 1
	}
	if floor > MaxFloor {
		return MaxFloor
	}
	return floor
}

func RealmForFloor(floor int) Realm {
	for _, bp := range RealmBreakpoints {
		if floor <= bp.UpTo {
			return bp.Realm
		}
	}
	return RealmDeityTransformation
}

func IsBossFloor(floor int) bool {
	return floor%BossInterval == 0 || floor == MaxFloor
}

// RarityRank is the index of r in Rarities, or -1 for an unknown value.
func RarityRank(r Rarity) int {
	for i, v := range Rarities {
		if v == r {
			return i
		}
	}
	return -1
}

func RarityColor(r Rarity) string {
	return rarityColors[r]
}

func rankForRoll(roll float64, thresholds [4]float64) int {
	rank := 0
	for i, th := range thresholds {
		if roll > th {
			rank = i + 1
		}
	}
	return rank
}

// GenerateMonster builds the monster guarding floor. Out-of-range floors are
// clamped to [1, MaxFloor].
func GenerateMonster(floor int, dice Dice, content Content) Monster {
	floor = clampFloor(floor)
	content = contentOrDefault(content)
	boss := IsBossFloor(floor)

	hp := int(math.Floor(MonsterBaseHP * math.Pow(MonsterHPGrowth, float64(floor-1))))
	atk := int(math.Floor(MonsterBaseAtk * math.Pow(MonsterAtkGrowth, float64(floor-1))))
	names := content.MonsterNames()
	if boss {
		hp = int(math.Floor(float64(hp) * BossHPMultiplier))
		atk = int(math.Floor(float64(atk) * BossAtkMultiplier))
		names = content.BossNames()
	}

	name := FallbackMonsterName
	if len(names) > 0 {
		name = names[pickIndex(dice, len(names))]
	}
	return Monster{
		Name:   name,
		HP:     hp,
		MaxHP:  hp,
		Atk:    atk,
		Realm:  RealmForFloor(floor),
		IsBoss: boss,
	}
}

// GeneratePills returns exactly PillsPerCraft consumables. Each carries one
// attribute bonus and one element bonus scaled by its rarity.
func GeneratePills(floor int, forceLegendary bool, dice Dice) []Pill {
	floor = clampFloor(floor)
	pills := make([]Pill, 0, PillsPerCraft)
	for i := 0; i < PillsPerCraft; i++ {
		rank := len(Rarities) - 1
		if !forceLegendary {
			rank = rankForRoll(dice.Float64()+float64(floor)/PillFloorNormalizer, PillRarityThresholds)
		}
		rarity := Rarities[rank]
		mult := float64((rank + 1) * PillRarityMultiplier)
		element := ElementKeys[pickIndex(dice, len(ElementKeys))]
		attr := AttributeKeys[pickIndex(dice, len(AttributeKeys))]

		var attrs Attributes
		attrs.add(attr, int(math.Floor((dice.Float64()*PillAttrRollSpan+PillAttrRollMin)*mult)))
		var elems FiveElements
		elems.add(element, int(math.Floor((dice.Float64()*PillElementRollSpan+PillElementRollMin)*mult)))

		pills = append(pills, Pill{
			ID:         uuid.NewString(),
			Name:       pillName(rarity, element),
			Rarity:     rarity,
			Attributes: attrs,
			Elements:   elems,
			Color:      RarityColor(rarity),
		})
	}
	return pills
}

func pillName(r Rarity, e ElementKey) string {
	return fmt.Sprintf("%s %s sigil pill", r, e)
}

// GenerateEquipment rolls a drop for a monster defeated at floor. Bosses
// always drop; other floors drop with EquipmentDropChance.
func GenerateEquipment(floor int, dice Dice, content Content) (Equipment, bool) {
	floor = clampFloor(floor)
	content = contentOrDefault(content)
	if !IsBossFloor(floor) && dice.Float64() > EquipmentDropChance {
		return Equipment{}, false
	}

	slot := Slots[pickIndex(dice, len(Slots))]
	rank := rankForRoll(dice.Float64()+float64(floor)/EquipmentFloorNormalizer, EquipmentRarityThresholds)
	rarity := Rarities[rank]
	scaled := float64((rank+1)*EquipmentRarityMultiplier) * (1 + float64(floor)*EquipmentFloorScaling)

	var stats Attributes
	switch slot {
	case SlotWeapon:
		stats.Essence = int(math.Floor(scaled))
	case SlotArmor:
		stats.Physique = int(math.Floor(scaled))
	case SlotAccessory:
		share := int(math.Floor(scaled * AccessoryStatShare))
		stats.Spirit = share
		stats.Agility = share
	}

	name := fmt.Sprintf("%s %s", rarity, slot)
	if names := content.EquipmentNames(slot); len(names) > 0 {
		name = names[min(rank, len(names)-1)]
	}
	return Equipment{
		ID:     uuid.NewString(),
		Name:   name,
		Slot:   slot,
		Rarity: rarity,
		Stats:  stats,
		Color:  RarityColor(rarity),
	}, true
}
