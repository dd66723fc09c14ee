package ascent

const (
	MaxFloor     = 99
	BossInterval = 30

	MonsterBaseHP       = 200
	MonsterBaseAtk      = 35
	MonsterHPGrowth     = 1.25
	MonsterAtkGrowth    = 1.20
	BossHPMultiplier    = 3.5
	BossAtkMultiplier   = 3.0
	FallbackMonsterName = "Nameless Beast"

	PillsPerCraft        = 3
	PillFloorNormalizer  = 200.0
	PillAttrRollMin      = 3.0
	PillAttrRollSpan     = 5.0
	PillElementRollMin   = 4.0
	PillElementRollSpan  = 8.0
	PillRarityMultiplier = 2

	EquipmentDropChance       = 0.15
	EquipmentFloorNormalizer  = 300.0
	EquipmentRarityMultiplier = 4
	EquipmentFloorScaling     = 0.15

	// AccessoryStatShare is taken of the floor-scaled bonus, the same base the
	// weapon and armor stats use, not of the bare rarity multiplier.
	AccessoryStatShare = 0.7

	InterestDivisor   = 50
	InterestBaseCap   = 50
	InterestCapStep   = 50
	CraftBaseCost     = 10
	CraftCostGrowth   = 2
	CraftReduction    = 0.05
	MaxCraftReduction = 10
	MaxCraftExponent  = 40
	MinCraftCost      = 1

	BondThreshold = 30

	BaseDamageMultiplier  = 5
	GoldBondDamageFactor  = 1.4
	CritChancePerSpirit   = 0.005
	CritDamageMultiplier  = 2
	FireBondMaxHPFraction = 0.05
	EarthBondDamageFactor = 0.75
	HPPerPhysique         = 20
	MinPhysique           = 1

	MishapAttemptThreshold = 4
	MishapChanceStep       = 0.2
	MishapHPFraction       = 0.25

	VictoryBaseReward   = 50
	VictoryFloorReward  = 5
	VictoryHealFraction = 0.1

	RestCost         = 200
	RestHealFraction = 0.4

	StoryEventChance = 0.45

	StartingStones          = 200
	StartingStonesPerLegacy = 50
	StartingPhysique        = 20
	StartingEssence         = 15
	StartingSpirit          = 10
	StartingAgility         = 10
	PhysiquePerTalentLevel  = 5
	AttributePerTalentLevel = 2

	TutorialFinalStep = 4
)

// Pill rarity thresholds, ascending. A roll strictly above a threshold reaches that tier.
var PillRarityThresholds = [4]float64{0.65, 1.05, 1.35, 1.6}

// Equipment rarity thresholds, ascending.
var EquipmentRarityThresholds = [4]float64{0.5, 0.8, 1.1, 1.4}

// Realm breakpoints by floor; floors above the last breakpoint are deity transformation.
var RealmBreakpoints = []struct {
	UpTo  int
	Realm Realm
}{
	{UpTo: 20, Realm: RealmQiRefining},
	{UpTo: 40, Realm: RealmFoundation},
	{UpTo: 60, Realm: RealmGoldenCore},
	{UpTo: 80, Realm: RealmNascentSoul},
}
