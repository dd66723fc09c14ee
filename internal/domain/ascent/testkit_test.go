package ascent

import "skyladder/internal/domain/meta"

// scriptedDice replays fixed draws. Exhausted queues fall back to fallback
// for floats and 0 for ints.
type scriptedDice struct {
	floats   []float64
	ints     []int
	fallback float64
}

func (d *scriptedDice) Float64() float64 {
	if len(d.floats) == 0 {
		return d.fallback
	}
	v := d.floats[0]
	d.floats = d.floats[1:]
	return v
}

func (d *scriptedDice) IntN(n int) int {
	if len(d.ints) == 0 {
		return 0
	}
	v := d.ints[0]
	d.ints = d.ints[1:]
	if v >= n {
		return n - 1
	}
	return v
}

type tableContent struct {
	monsters []string
	bosses   []string
	gear     map[Slot][]string
}

func (c tableContent) MonsterNames() []string { return c.monsters }
func (c tableContent) BossNames() []string { return c.bosses }
func (c tableContent) EquipmentNames(s Slot) []string { return c.gear[s] }
func (c tableContent) FloorStory(floor int) string { return "story" }
func (c tableContent) EventText(id EventID) EventText { return EventText{Title: string(id)} }

var _ Content = tableContent{}

func fixedPlayer() Player {
	p := NewPlayer(meta.Talents{})
	return p
}

func idleRun(p Player, m Monster) RunState {
	return RunState{ProfileID: "p-1", Phase: PhaseIdle, Player: &p, Monster: &m, Version: 1}
}
