// Package staticcontent serves name tables and narrative text from a YAML
// document. The default document is compiled into the binary.
package staticcontent

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"skyladder/internal/domain/ascent"
)

//go:embed content.yaml
var defaultDocument []byte

var ErrInvalidContent = errors.New("invalid content document")

type Stories struct {
	Floors   map[int]string `yaml:"floors"`
	Fallback []string       `yaml:"fallback"`
}

type Tables struct {
	Intro     []string                            `yaml:"intro"`
	Monsters  []string                            `yaml:"monsters"`
	Bosses    []string                            `yaml:"bosses"`
	Equipment map[ascent.Slot][]string            `yaml:"equipment"`
	Stories   Stories                             `yaml:"stories"`
	Events    map[ascent.EventID]ascent.EventText `yaml:"events"`
}

// Provider implements ascent.Content over parsed Tables.
type Provider struct {
	tables Tables
}

// Default returns the embedded content. It panics only if the embedded
// document is malformed, which the package tests guard against.
func Default() Provider {
	p, err := Parse(defaultDocument)
	if err != nil {
		panic(fmt.Sprintf("embedded content: %v", err))
	}
	return p
}

func LoadFile(path string) (Provider, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Provider{}, err
	}
	return Parse(b)
}

func Parse(doc []byte) (Provider, error) {
	var t Tables
	if err := yaml.Unmarshal(doc, &t); err != nil {
		return Provider{}, fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}
	if err := t.validate(); err != nil {
		return Provider{}, err
	}
	return Provider{tables: t}, nil
}

func (t Tables) validate() error {
	if len(t.Monsters) == 0 || len(t.Bosses) == 0 {
		return fmt.Errorf("%w: monster and boss names are required", ErrInvalidContent)
	}
	for _, slot := range ascent.Slots {
		if len(t.Equipment[slot]) == 0 {
			return fmt.Errorf("%w: no equipment names for %s", ErrInvalidContent, slot)
		}
	}
	for id, text := range t.Events {
		if !ascent.KnownEvent(id) {
			return fmt.Errorf("%w: unknown event %q", ErrInvalidContent, id)
		}
		if strings.TrimSpace(text.Title) == "" {
			return fmt.Errorf("%w: event %q has no title", ErrInvalidContent, id)
		}
	}
	return nil
}

func (p Provider) Intro() []string { return p.tables.Intro }

func (p Provider) MonsterNames() []string { return p.tables.Monsters }

func (p Provider) BossNames() []string { return p.tables.Bosses }

func (p Provider) EquipmentNames(slot ascent.Slot) []string { return p.tables.Equipment[slot] }

// FloorStory prefers a bespoke line for the floor and otherwise rotates
// through the fallback lines.
func (p Provider) FloorStory(floor int) string {
	if text, ok := p.tables.Stories.Floors[floor]; ok {
		return text
	}
	fallback := p.tables.Stories.Fallback
	if len(fallback) == 0 {
		return ""
	}
	return fallback[((floor%len(fallback))+len(fallback))%len(fallback)]
}

func (p Provider) EventText(id ascent.EventID) ascent.EventText {
	if text, ok := p.tables.Events[id]; ok {
		return text
	}
	return ascent.EventText{Title: string(id)}
}
