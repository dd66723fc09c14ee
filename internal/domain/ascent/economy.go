package ascent

import "math"

// CalculateInterest is the bonus paid on a victory for the stones held before
// the floor reward.
func CalculateInterest(stones, talentLevel int) int {
	if stones <= 0 {
		return 0
	}
	limit := InterestBaseCap + max(talentLevel, 0)*InterestCapStep
	return min(stones/InterestDivisor, limit)
}

// CalculateCraftCost doubles per attempt on the current floor and is reduced
// by the alchemy efficiency talent.
func CalculateCraftCost(attempts, talentLevel int) int {
	attempts = min(max(attempts, 0), MaxCraftExponent)
	level := min(max(talentLevel, 0), MaxCraftReduction)
	reduction := 1 - float64(level)*CraftReduction
	cost := int(math.Floor(CraftBaseCost * math.Pow(CraftCostGrowth, float64(attempts)) * reduction))
	return max(cost, MinCraftCost)
}

// MishapChance is the probability that the attempt-th craft on a floor goes
// wrong. attempts counts the craft being made.
func MishapChance(attempts int) float64 {
	if attempts < MishapAttemptThreshold {
		return 0
	}
	return float64(attempts-MishapAttemptThreshold+1) * MishapChanceStep
}

func VictoryReward(floor int) int {
	return VictoryBaseReward + floor*VictoryFloorReward
}

func fractionOf(v int, f float64) int {
	return int(math.Floor(float64(v) * f))
}
