package testbed

import (
	"io"
	"log"

	"github.com/warrenfalk/rope"
)

// Driver owns the engine and the active scene. Each scene starts in a fresh
// engine. A Driver is not safe for concurrent use.
type Driver struct {
	Settings Settings
	Log      *log.Logger

	// Listener receives the active scene's build and teardown events.
	Listener Listener

	engine   rope.Engine
	scene    Scene
	index    int
	paused   bool
	stepOnce bool
	steps    int
}

// NewDriver starts the scene named in s. A nil logger discards output.
func NewDriver(s Settings, logger *log.Logger) (*Driver, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	d := &Driver{Settings: s, Log: logger}
	i, _, err := Lookup(s.Scene)
	if err != nil {
		return nil, err
	}
	if err := d.Select(i); err != nil {
		return nil, err
	}
	return d, nil
}

// Select switches to the scene at index i of Scenes, wrapping around.
func (d *Driver) Select(i int) error {
	entries := Scenes()
	i = ((i % len(entries)) + len(entries)) % len(entries)

	scene, err := entries[i].New(d.Settings.Tuning())
	if err != nil {
		return err
	}
	engine, err := NewEngine(d.Settings.Backend, d.Settings.GravityVec(),
		d.Settings.VelocityIterations, d.Settings.PositionIterations)
	if err != nil {
		return err
	}
	if l, ok := scene.(interface{ SetListener(Listener) }); ok {
		l.SetListener(d.emit)
	}
	if err := scene.Initialize(engine); err != nil {
		d.Log.Printf("scene %q failed to initialize: %v", scene.Name(), err)
		return err
	}

	d.engine, d.scene, d.index = engine, scene, i
	d.steps = 0
	d.Log.Printf("scene %q on %s: %d bodies, %d joints",
		scene.Name(), d.Settings.Backend, engine.BodyCount(), engine.JointCount())
	return nil
}

func (d *Driver) emit(ev Event) {
	if ev.Probe != nil && !ev.Probe.Hit {
		d.Log.Printf("%s: probe missed, rope left free at %.1f", ev.Scene, ev.Probe.MaxRange)
	}
	if ev.Aggregate != nil {
		d.Log.Printf("%s: %s %d links, %d joints", ev.Scene, ev.Kind,
			ev.Aggregate.Layout.Count, len(ev.Aggregate.Joints))
	}
	if d.Listener != nil {
		d.Listener(ev)
	}
}

// Input handles the driver's own commands and passes the rest to the scene.
func (d *Driver) Input(cmd Command) error {
	switch cmd {
	case CommandPause:
		d.paused = !d.paused
	case CommandStep:
		d.paused = true
		d.stepOnce = true
	case CommandRestart:
		return d.Select(d.index)
	case CommandNext:
		return d.Select(d.index + 1)
	case CommandPrev:
		return d.Select(d.index - 1)
	default:
		if err := d.scene.OnInput(cmd); err != nil {
			d.Log.Printf("%s: %q: %v", d.scene.Name(), rune(cmd), err)
			return err
		}
	}
	return nil
}

// Step advances the simulation by one tick unless paused. It reports whether
// the engine moved.
func (d *Driver) Step() bool {
	if d.paused && !d.stepOnce {
		return false
	}
	d.stepOnce = false
	d.engine.Step(1 / d.Settings.Hz)
	d.steps++
	return true
}

func (d *Driver) Engine() rope.Engine {
	return d.engine
}

func (d *Driver) Scene() Scene {
	return d.scene
}

func (d *Driver) SceneIndex() int {
	return d.index
}

func (d *Driver) Paused() bool {
	return d.paused
}

// StepCount is the number of ticks since the scene started.
func (d *Driver) StepCount() int {
	return d.steps
}

// Aggregate is the active scene's rope or chain, if it holds one.
func (d *Driver) Aggregate() *rope.Aggregate {
	if h, ok := d.scene.(Holder); ok {
		return h.Aggregate()
	}
	return nil
}
