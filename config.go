package rope

// Tuned values for the rope that the testbed shoots.
const (
	DefaultThickness      = 0.2
	DefaultResolution     = 0.6
	DefaultDensity        = 9.0
	DefaultDamping        = 0.999
	DefaultMaxRange       = 60.0
	DefaultChainDensity   = 1.0
	DefaultCircleFriction = 0.9

	// RopeCategory is the category the rope scenes give their segments; ropes
	// collide with the world but not with other ropes.
	RopeCategory uint16 = 0x2
)

// LinkShape selects the segment geometry and how neighbours are joined.
type LinkShape uint8

const (
	// BoxLinks are thickness-high boxes joined by rotational joints at their
	// shared boundaries.
	BoxLinks LinkShape = iota

	// CircleLinks are circles of diameter thickness joined centre to centre by
	// fixed-distance joints.
	CircleLinks
)

func (s LinkShape) String() string {
	switch s {
	case BoxLinks:
		return "box"
	case CircleLinks:
		return "circle"
	}
	return "unknown"
}

// Config is everything the builder needs besides the anchors.
type Config struct {
	Variant    Variant
	Links      LinkShape
	Thickness  float64
	Resolution float64

	Density        float64
	Friction       float64
	Restitution    float64
	LinearDamping  float64
	AngularDamping float64
	Filter         Filter

	Bracing BracingRule

	// Cap is the kind of the joint spanning the two endpoints. Only
	// MaxDistanceJoint and FixedDistanceJoint make sense.
	Cap JointKind

	// MaxRange bounds the probe used by Shoot.
	MaxRange float64

	// ProbeMask selects the categories Shoot can strike.
	ProbeMask uint16
}

// DefaultConfig is the braced, damped rope that does not collide with other
// ropes.
func DefaultConfig() Config {
	return Config{
		Variant:        RopeVariant,
		Links:          BoxLinks,
		Thickness:      DefaultThickness,
		Resolution:     DefaultResolution,
		Density:        DefaultDensity,
		Restitution:    0,
		LinearDamping:  DefaultDamping,
		AngularDamping: DefaultDamping,
		Filter:         Filter{CategoryBits: RopeCategory, MaskBits: 0xFFFF &^ RopeCategory},
		Bracing:        AlternateBracing,
		Cap:            MaxDistanceJoint,
		MaxRange:       DefaultMaxRange,
		ProbeMask:      0xFFFF,
	}
}

// ChainConfig is the plain unbraced chain of axis-aligned links.
func ChainConfig() Config {
	return Config{
		Variant:    ChainVariant,
		Links:      BoxLinks,
		Thickness:  DefaultThickness,
		Resolution: DefaultResolution,
		Density:    DefaultChainDensity,
		Filter:     DefaultFilter,
		Bracing:    NoBracing,
		Cap:        MaxDistanceJoint,
		MaxRange:   DefaultMaxRange,
		ProbeMask:  0xFFFF,
	}
}

// CircleChainConfig strings circles together with fixed-distance joints.
func CircleChainConfig() Config {
	c := ChainConfig()
	c.Links = CircleLinks
	c.Friction = DefaultCircleFriction
	c.Cap = FixedDistanceJoint
	return c
}

func (c Config) linkShape(p Placement) ShapeDef {
	s := ShapeDef{
		Kind:        BoxShape,
		HalfExtents: p.HalfExtents,
		Density:     c.Density,
		Friction:    c.Friction,
		Restitution: c.Restitution,
		Filter:      c.Filter,
	}
	if c.Links == CircleLinks {
		s.Kind = CircleShape
		s.HalfExtents = Vec2{}
		s.Radius = c.Thickness / 2
	}
	return s
}
