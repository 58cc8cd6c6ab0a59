package rope

import "errors"

var (
	// ErrWorldLocked is returned by engines that refuse mutation while a step
	// is in progress.
	ErrWorldLocked = errors.New("rope: world is locked")

	// ErrUnknownBody is returned when a handle does not belong to the engine.
	ErrUnknownBody = errors.New("rope: body does not belong to this engine")

	// ErrUnsupported is returned for a shape or joint kind an engine cannot build.
	ErrUnsupported = errors.New("rope: unsupported by engine")
)

type BodyKind uint8

const (
	StaticBody BodyKind = iota
	DynamicBody
)

func (k BodyKind) String() string {
	switch k {
	case StaticBody:
		return "static"
	case DynamicBody:
		return "dynamic"
	}
	return "unknown"
}

type BodyDef struct {
	Kind           BodyKind
	Position       Vec2
	Angle          float64
	LinearDamping  float64
	AngularDamping float64
}

// Filter holds the collision category and mask bits of a shape.
type Filter struct {
	// The collision category bits. Normally you would just set one bit.
	CategoryBits uint16

	// The categories this shape accepts collisions from.
	MaskBits uint16
}

// DefaultFilter collides with everything.
var DefaultFilter = Filter{CategoryBits: 0x0001, MaskBits: 0xFFFF}

// Collides reports whether two shapes with these filters generate contacts.
func (f Filter) Collides(other Filter) bool {
	return f.MaskBits&other.CategoryBits != 0 && f.CategoryBits&other.MaskBits != 0
}

type ShapeKind uint8

const (
	BoxShape ShapeKind = iota
	CircleShape
)

func (k ShapeKind) String() string {
	switch k {
	case BoxShape:
		return "box"
	case CircleShape:
		return "circle"
	}
	return "unknown"
}

// ShapeDef describes one collision shape in body-local coordinates. Boxes are
// centred on the body origin.
type ShapeDef struct {
	Kind        ShapeKind
	HalfExtents Vec2
	Radius      float64
	Density     float64
	Friction    float64
	Restitution float64
	Filter      Filter
}

type JointKind uint8

const (
	// RotationalJoint pins a shared point on both bodies.
	RotationalJoint JointKind = iota

	// MaxDistanceJoint lets the anchors approach freely but never separate
	// beyond MaxLength.
	MaxDistanceJoint

	// FixedDistanceJoint holds the anchors at their separation at creation.
	FixedDistanceJoint
)

func (k JointKind) String() string {
	switch k {
	case RotationalJoint:
		return "rotational"
	case MaxDistanceJoint:
		return "max-distance"
	case FixedDistanceJoint:
		return "fixed-distance"
	}
	return "unknown"
}

// JointDef describes a joint with anchors in world coordinates. A rotational
// joint only reads AnchorA.
type JointDef struct {
	Kind             JointKind
	BodyA            Body
	BodyB            Body
	AnchorA          Vec2
	AnchorB          Vec2
	MaxLength        float64
	CollideConnected bool
}

// Body is an engine-owned rigid body handle.
type Body interface {
	Kind() BodyKind
	Position() Vec2
	Angle() float64
	WorldPoint(local Vec2) Vec2
	LocalPoint(world Vec2) Vec2
	Shapes() []ShapeDef

	// Destroyed reports whether the engine has removed the body.
	Destroyed() bool
}

// Joint is an engine-owned constraint handle.
type Joint interface {
	Kind() JointKind
	BodyA() Body
	BodyB() Body

	// Anchors returns the current world anchor points.
	Anchors() (Vec2, Vec2)

	// MaxLength is the length limit of distance joints and 0 for rotational joints.
	MaxLength() float64

	// Destroyed reports whether the joint is gone, either destroyed directly
	// or taken down with one of its bodies.
	Destroyed() bool
}

// RayFilter limits which shapes a ray cast reports.
type RayFilter struct {
	MaskBits uint16
	Skip     Body
}

// DefaultRayFilter reports every shape.
var DefaultRayFilter = RayFilter{MaskBits: 0xFFFF}

// Accepts reports whether a shape on body with filter f may be struck.
func (rf RayFilter) Accepts(body Body, f Filter) bool {
	if rf.Skip != nil && body == rf.Skip {
		return false
	}
	return rf.MaskBits&f.CategoryBits != 0
}

type RayHit struct {
	Body     Body
	Point    Vec2
	Normal   Vec2
	Fraction float64
}

// Engine is the slice of a rigid-body simulation that ropes are built from.
// Implementations are not safe for concurrent use.
type Engine interface {
	CreateBody(def BodyDef) (Body, error)
	AttachShape(b Body, def ShapeDef) error
	CreateJoint(def JointDef) (Joint, error)

	// DestroyJoint removes j. Destroying a joint twice is undefined.
	DestroyJoint(j Joint)

	// DestroyBody removes b. An engine may take the joints still referencing b
	// down with it; portable callers destroy them first.
	DestroyBody(b Body)

	// RayCast reports the closest accepted shape between from and to.
	RayCast(from, to Vec2, filter RayFilter) (RayHit, bool)

	Step(dt float64)

	Bodies() []Body
	Joints() []Joint
	BodyCount() int
	JointCount() int
}
