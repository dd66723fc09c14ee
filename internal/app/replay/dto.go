package replay

import "skyladder/internal/domain/ascent"

type Request struct {
	ProfileID    string
	Limit        int
	OccurredFrom int64
	OccurredTo   int64
	Category     ascent.Category
}

// Summary is rebuilt from the event log alone.
type Summary struct {
	HighestFloor  int      `json:"highest_floor"`
	FloorsCleared int      `json:"floors_cleared"`
	Crafts        int      `json:"crafts"`
	Mishaps       int      `json:"mishaps"`
	Drops         int      `json:"drops"`
	Deaths        int      `json:"deaths"`
	PointsEarned  int      `json:"points_earned"`
	Achievements  []string `json:"achievements"`
}

type Response struct {
	Events  []ascent.DomainEvent `json:"events"`
	Summary Summary              `json:"summary"`
}
