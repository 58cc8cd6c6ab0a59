package testbed

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/warrenfalk/rope"
)

// Settings configure a testbed run. They are read from a JSON file and then
// overridden by any command-line flags that were set.
type Settings struct {
	Backend            string  `json:"backend"`
	Scene              string  `json:"scene"`
	Hz                 float64 `json:"hz"`
	Gravity            float64 `json:"gravity"`
	VelocityIterations int     `json:"velocity_iterations"`
	PositionIterations int     `json:"position_iterations"`

	Thickness  float64 `json:"thickness"`
	Resolution float64 `json:"resolution"`
	Bracing    string  `json:"bracing"`
	MaxRange   float64 `json:"max_range"`

	Snapshot SnapshotSettings `json:"snapshot"`
}

// SnapshotSettings control headless rendering.
type SnapshotSettings struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Scale       float64 `json:"scale"` // pixels per meter
	Supersample int     `json:"supersample"`
	Steps       int     `json:"steps"`
	Output      string  `json:"output"`
}

func DefaultSettings() Settings {
	return Settings{
		Backend:            BackendBox2D,
		Scene:              "Rope",
		Hz:                 60,
		Gravity:            -10,
		VelocityIterations: 8,
		PositionIterations: 3,
		Snapshot: SnapshotSettings{
			Width:       800,
			Height:      600,
			Scale:       12,
			Supersample: 3,
			Steps:       120,
			Output:      "rope.png",
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Settings, error) {
	s := DefaultSettings()
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("read settings: %w", err)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse settings %s: %w", path, err)
	}
	return s, nil
}

// Save writes s as indented JSON.
func (s Settings) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// Flags holds the command-line overrides. Only flags that were set on the
// command line are applied.
type Flags struct {
	fs *flag.FlagSet

	Config     *string
	Backend    *string
	Scene      *string
	Hz         *float64
	Thickness  *float64
	Resolution *float64
	Bracing    *string
	MaxRange   *float64
}

// RegisterFlags defines the common testbed flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		fs:         fs,
		Config:     fs.String("config", "", "settings file (JSON)"),
		Backend:    fs.String("backend", "", "physics engine: box2d or chipmunk"),
		Scene:      fs.String("scene", "", "scene to start with"),
		Hz:         fs.Float64("hz", 0, "simulation steps per second"),
		Thickness:  fs.Float64("thickness", 0, "segment thickness"),
		Resolution: fs.Float64("resolution", 0, "target segment length"),
		Bracing:    fs.String("bracing", "", "bracing rule: none, alternate or interior"),
		MaxRange:   fs.Float64("range", 0, "maximum probe range"),
	}
}

// Resolve applies every flag that was explicitly set.
func (s *Settings) Resolve(f *Flags) {
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "backend":
			s.Backend = *f.Backend
		case "scene":
			s.Scene = *f.Scene
		case "hz":
			s.Hz = *f.Hz
		case "thickness":
			s.Thickness = *f.Thickness
		case "resolution":
			s.Resolution = *f.Resolution
		case "bracing":
			s.Bracing = *f.Bracing
		case "range":
			s.MaxRange = *f.MaxRange
		}
	})
}

// LoadFlags loads the settings file named by -config and applies the flags.
func LoadFlags(f *Flags) (Settings, error) {
	s, err := Load(*f.Config)
	if err != nil {
		return s, err
	}
	s.Resolve(f)
	return s, s.Validate()
}

func (s Settings) Validate() error {
	if !(s.Hz > 0) {
		return fmt.Errorf("testbed: hz must be positive, got %v", s.Hz)
	}
	if s.Thickness < 0 || s.Resolution < 0 || s.MaxRange < 0 {
		return errors.New("testbed: thickness, resolution and range must not be negative")
	}
	if err := checkBackend(s.Backend); err != nil {
		return err
	}
	if s.Bracing != "" {
		if _, err := ParseBracing(s.Bracing); err != nil {
			return err
		}
	}
	_, _, err := Lookup(s.Scene)
	return err
}

func (s Settings) Tuning() Tuning {
	return Tuning{
		Thickness:  s.Thickness,
		Resolution: s.Resolution,
		Bracing:    s.Bracing,
		MaxRange:   s.MaxRange,
	}
}

// GravityVec is the gravity vector; gravity is vertical only.
func (s Settings) GravityVec() rope.Vec2 {
	return rope.MakeVec2(0, s.Gravity)
}
