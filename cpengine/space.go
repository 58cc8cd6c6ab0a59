// Package cpengine runs ropes on github.com/jakecoffman/cp, the Go port of
// Chipmunk2D.
//
// Joint kinds map onto Chipmunk constraints: rotational joints are pivot
// joints, maximum-distance joints are slide joints with a minimum of zero,
// and fixed-distance joints are slide joints whose limits are equal.
package cpengine

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"

	"github.com/warrenfalk/rope"
)

// Space adapts a cp.Space to rope.Engine.
type Space struct {
	space *cp.Space

	bodies []*Body
	joints []*Joint
}

var _ rope.Engine = (*Space)(nil)

func New(gravity rope.Vec2) *Space {
	space := cp.NewSpace()
	space.SetGravity(vec(gravity))
	return &Space{space: space}
}

// CP exposes the underlying space.
func (s *Space) CP() *cp.Space {
	return s.space
}

func (s *Space) CreateBody(def rope.BodyDef) (rope.Body, error) {
	var body *cp.Body
	switch def.Kind {
	case rope.StaticBody:
		body = cp.NewStaticBody()
	case rope.DynamicBody:
		// mass and moment accumulate from shape densities
		body = cp.NewBody(0, 0)
		if def.LinearDamping > 0 {
			body.SetVelocityUpdateFunc(dampedVelocity(def.LinearDamping))
		}
	default:
		return nil, rope.ErrUnsupported
	}
	body.SetPosition(vec(def.Position))
	body.SetAngle(def.Angle)
	s.space.AddBody(body)

	b := &Body{cp: body, kind: def.Kind, index: len(s.bodies)}
	body.UserData = b
	s.bodies = append(s.bodies, b)
	return b, nil
}

// dampedVelocity applies Box2D style per-body damping on top of the space's
// own damping.
func dampedVelocity(c float64) cp.BodyVelocityFunc {
	return func(body *cp.Body, gravity cp.Vector, damping, dt float64) {
		cp.BodyUpdateVelocity(body, gravity, damping/(1+dt*c), dt)
	}
}

func (s *Space) AttachShape(rb rope.Body, def rope.ShapeDef) error {
	b, err := s.body(rb)
	if err != nil {
		return err
	}
	var shape *cp.Shape
	switch def.Kind {
	case rope.BoxShape:
		shape = cp.NewBox(b.cp, 2*def.HalfExtents.X, 2*def.HalfExtents.Y, 0)
	case rope.CircleShape:
		shape = cp.NewCircle(b.cp, def.Radius, cp.Vector{})
	default:
		return rope.ErrUnsupported
	}
	s.space.AddShape(shape)
	if def.Density > 0 && b.kind == rope.DynamicBody {
		shape.SetDensity(def.Density)
	}
	shape.SetFriction(def.Friction)
	shape.SetElasticity(def.Restitution)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, uint(def.Filter.CategoryBits), uint(def.Filter.MaskBits)))

	b.shapes = append(b.shapes, def)
	b.cpShapes = append(b.cpShapes, shape)
	return nil
}

func (s *Space) DestroyBody(rb rope.Body) {
	b, err := s.body(rb)
	if err != nil {
		panic(err)
	}

	// Chipmunk leaves constraints attached to a removed body dangling.
	for i := 0; i < len(s.joints); {
		j := s.joints[i]
		if j.a == b || j.b == b {
			s.DestroyJoint(j)
			continue
		}
		i++
	}
	for _, shape := range b.cpShapes {
		s.space.RemoveShape(shape)
	}
	b.cpShapes = nil
	s.space.RemoveBody(b.cp)

	last := s.bodies[len(s.bodies)-1]
	s.bodies[b.index] = last
	last.index = b.index
	s.bodies = s.bodies[:len(s.bodies)-1]
	b.index = -1
}

// RayCast tests every shape directly. A space query would run Chipmunk's
// filter, which also rejects shapes whose own mask excludes the query.
func (s *Space) RayCast(from, to rope.Vec2, filter rope.RayFilter) (rope.RayHit, bool) {
	var hit rope.RayHit
	best := math.Inf(1)

	a, b := vec(from), vec(to)
	var info cp.SegmentQueryInfo
	for _, body := range s.bodies {
		for i, shape := range body.cpShapes {
			if !shape.SegmentQuery(a, b, 0, &info) || info.Alpha >= best {
				continue
			}
			if !filter.Accepts(body, body.shapes[i].Filter) {
				continue
			}
			best = info.Alpha
			hit = rope.RayHit{
				Body:     body,
				Point:    unvec(info.Point),
				Normal:   unvec(info.Normal),
				Fraction: info.Alpha,
			}
		}
	}

	return hit, !math.IsInf(best, 1)
}

func (s *Space) Step(dt float64) {
	s.space.Step(dt)
}

func (s *Space) Bodies() []rope.Body {
	out := make([]rope.Body, len(s.bodies))
	for i, b := range s.bodies {
		out[i] = b
	}
	return out
}

func (s *Space) Joints() []rope.Joint {
	out := make([]rope.Joint, len(s.joints))
	for i, j := range s.joints {
		out[i] = j
	}
	return out
}

func (s *Space) BodyCount() int {
	return len(s.bodies)
}

func (s *Space) JointCount() int {
	return len(s.joints)
}

func (s *Space) body(rb rope.Body) (*Body, error) {
	b, ok := rb.(*Body)
	if !ok || b == nil || b.index < 0 || b.index >= len(s.bodies) || s.bodies[b.index] != b {
		return nil, fmt.Errorf("%w: %T", rope.ErrUnknownBody, rb)
	}
	return b, nil
}

func vec(v rope.Vec2) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

func unvec(v cp.Vector) rope.Vec2 {
	return rope.MakeVec2(v.X, v.Y)
}
