package ascent

// EventText is the display copy of a random event.
type EventText struct {
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	Options     [2]string `json:"options" yaml:"options"`
}

// Content supplies the opaque name tables and narrative text. Rules never
// depend on what the strings contain.
type Content interface {
	MonsterNames() []string
	BossNames() []string
	EquipmentNames(slot Slot) []string
	FloorStory(floor int) string
	EventText(id EventID) EventText
}

// NoContent is a Content with empty tables. Generators fall back to
// placeholder names when it is used.
type NoContent struct{}

func (NoContent) MonsterNames() []string { return nil }

func (NoContent) BossNames() []string { return nil }

func (NoContent) EquipmentNames(Slot) []string { return nil }

func (NoContent) FloorStory(int) string { return "" }

func (NoContent) EventText(id EventID) EventText { return EventText{Title: string(id)} }

func contentOrDefault(c Content) Content {
	if c == nil {
		return NoContent{}
	}
	return c
}
