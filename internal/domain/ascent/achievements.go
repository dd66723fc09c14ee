package ascent

import "skyladder/internal/domain/meta"

type achievementRule struct {
	ID   string
	Test func(p Player, r meta.Record) bool
}

func floorAtLeast(n int) func(Player, meta.Record) bool {
	return func(p Player, _ meta.Record) bool { return p.Floor >= n }
}

var achievementRules = []achievementRule{
	{meta.AchievementFirstPill, func(p Player, _ meta.Record) bool { return p.TotalCraftCount > 0 }},
	{meta.AchievementFloor10, floorAtLeast(10)},
	{meta.AchievementFloor30, floorAtLeast(30)},
	{meta.AchievementImmortal, floorAtLeast(50)},
	{meta.AchievementFloor60, floorAtLeast(60)},
	{meta.AchievementFloor99, floorAtLeast(99)},
	{meta.AchievementBossSlayer, func(p Player, _ meta.Record) bool { return p.BossesDefeated > 0 }},
	{meta.AchievementRichMan, func(p Player, _ meta.Record) bool { return p.Stones >= 1000 }},
	{meta.AchievementMillionaire, func(p Player, _ meta.Record) bool { return p.Stones >= 5000 }},
	{meta.AchievementAlchemyMaster, func(p Player, _ meta.Record) bool { return p.TotalCraftCount >= 20 }},
	{meta.AchievementAlchemyGod, func(p Player, _ meta.Record) bool { return p.TotalCraftCount >= 100 }},
	{meta.AchievementReincarnate5, func(_ Player, r meta.Record) bool { return r.RebirthCount >= 5 }},
	{meta.AchievementImmortalWeapon, func(p Player, _ meta.Record) bool {
		return p.Equipment.Weapon != nil && p.Equipment.Weapon.Rarity == RarityLegendary
	}},
}

// EvaluateAchievements unlocks every locked achievement whose condition p
// and r now satisfy. Unlocked flags are never cleared.
func EvaluateAchievements(p Player, r meta.Record) (meta.Record, []string) {
	next := r.Clone()
	var unlocked []string
	for _, rule := range achievementRules {
		if next.IsUnlocked(rule.ID) || !rule.Test(p, r) {
			continue
		}
		if next.Unlock(rule.ID) {
			unlocked = append(unlocked, rule.ID)
		}
	}
	return next, unlocked
}
