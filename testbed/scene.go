// Package testbed drives the rope and chain scenes: it owns the engine,
// steps it, and routes discrete commands to the active scene.
package testbed

import (
	"errors"
	"fmt"
	"strings"

	"github.com/warrenfalk/rope"
)

// Command is a discrete input, normally a key.
type Command rune

const (
	CommandToggle  Command = 'j'
	CommandPause   Command = 'p'
	CommandStep    Command = 'o'
	CommandRestart Command = 'r'
	CommandPrev    Command = '['
	CommandNext    Command = ']'
)

var ErrUnknownScene = errors.New("testbed: unknown scene")

// Scene is one scenario. Initialize populates a fresh engine; OnInput reacts
// to commands the driver does not handle itself.
type Scene interface {
	Name() string
	Initialize(e rope.Engine) error
	OnInput(cmd Command) error
}

// Holder is implemented by scenes that own a rope or chain.
type Holder interface {
	Aggregate() *rope.Aggregate
}

type EventKind uint8

const (
	EventBuilt EventKind = iota
	EventDestroyed
)

func (k EventKind) String() string {
	switch k {
	case EventBuilt:
		return "built"
	case EventDestroyed:
		return "destroyed"
	}
	return "unknown"
}

// Event reports a build or teardown. Probe is set for ropes that were shot.
type Event struct {
	Kind      EventKind
	Scene     string
	Aggregate *rope.Aggregate
	Probe     *rope.Probe
}

type Listener func(Event)

// Tuning overrides parts of a scene's rope configuration. Zero values keep
// the scene's defaults.
type Tuning struct {
	Thickness  float64
	Resolution float64
	Bracing    string
	MaxRange   float64
}

// Apply returns c with the tuning's non-zero values.
func (t Tuning) Apply(c rope.Config) (rope.Config, error) {
	if t.Thickness > 0 {
		c.Thickness = t.Thickness
	}
	if t.Resolution > 0 {
		c.Resolution = t.Resolution
	}
	if t.MaxRange > 0 {
		c.MaxRange = t.MaxRange
	}
	if t.Bracing != "" {
		rule, err := ParseBracing(t.Bracing)
		if err != nil {
			return c, err
		}
		c.Bracing = rule
	}
	return c, nil
}

// ParseBracing maps a bracing name to its rule.
func ParseBracing(name string) (rope.BracingRule, error) {
	switch strings.ToLower(name) {
	case "none", "off":
		return rope.NoBracing, nil
	case "alternate", "odd":
		return rope.AlternateBracing, nil
	case "interior":
		return rope.InteriorBracing, nil
	}
	return rope.BracingRule{}, fmt.Errorf("testbed: unknown bracing %q", name)
}

// Entry registers a scene constructor.
type Entry struct {
	Name string
	New  func(t Tuning) (Scene, error)
}

// Scenes lists every scene in menu order.
func Scenes() []Entry {
	return []Entry{
		{Name: "Rope", New: func(t Tuning) (Scene, error) { return NewRopeScene(t) }},
		{Name: "Anchored rope", New: func(t Tuning) (Scene, error) { return NewAnchoredRopeScene(t) }},
		{Name: "Chain", New: func(t Tuning) (Scene, error) { return NewChainScene(t) }},
		{Name: "Circle chain", New: func(t Tuning) (Scene, error) { return NewCircleChainScene(t) }},
	}
}

// Lookup finds a scene by case-insensitive name.
func Lookup(name string) (int, Entry, error) {
	for i, e := range Scenes() {
		if strings.EqualFold(e.Name, name) {
			return i, e, nil
		}
	}
	return -1, Entry{}, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}

// SceneNames is the menu text, in order.
func SceneNames() []string {
	entries := Scenes()
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}
