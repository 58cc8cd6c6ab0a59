// Package b2engine runs ropes on github.com/ByteArena/box2d.
package b2engine

import (
	"github.com/ByteArena/box2d"

	"github.com/warrenfalk/rope"
)

// Testbed step defaults.
const (
	VelocityIterations = 8
	PositionIterations = 3
)

// World adapts a box2d world to rope.Engine.
type World struct {
	b2 box2d.B2World

	VelocityIterations int
	PositionIterations int

	bodies []*Body
	joints []*Joint
}

var _ rope.Engine = (*World)(nil)

func New(gravity rope.Vec2) *World {
	return &World{
		b2:                 box2d.MakeB2World(vec(gravity)),
		VelocityIterations: VelocityIterations,
		PositionIterations: PositionIterations,
	}
}

// B2 exposes the underlying world.
func (w *World) B2() *box2d.B2World {
	return &w.b2
}

func (w *World) CreateBody(def rope.BodyDef) (rope.Body, error) {
	bd := box2d.MakeB2BodyDef()
	switch def.Kind {
	case rope.StaticBody:
		bd.Type = box2d.B2BodyType.B2_staticBody
	case rope.DynamicBody:
		bd.Type = box2d.B2BodyType.B2_dynamicBody
	default:
		return nil, rope.ErrUnsupported
	}
	bd.Position = vec(def.Position)
	bd.Angle = def.Angle
	bd.LinearDamping = def.LinearDamping
	bd.AngularDamping = def.AngularDamping

	b2 := w.b2.CreateBody(&bd)
	if b2 == nil {
		return nil, rope.ErrWorldLocked
	}
	b := &Body{b2: b2, kind: def.Kind, index: len(w.bodies)}
	b2.SetUserData(b)
	w.bodies = append(w.bodies, b)
	return b, nil
}

func (w *World) AttachShape(rb rope.Body, def rope.ShapeDef) error {
	b, err := w.body(rb)
	if err != nil {
		return err
	}

	fd := box2d.MakeB2FixtureDef()
	fd.Density = def.Density
	fd.Friction = def.Friction
	fd.Restitution = def.Restitution
	fd.Filter.CategoryBits = def.Filter.CategoryBits
	fd.Filter.MaskBits = def.Filter.MaskBits

	switch def.Kind {
	case rope.BoxShape:
		shape := box2d.MakeB2PolygonShape()
		shape.SetAsBox(def.HalfExtents.X, def.HalfExtents.Y)
		fd.Shape = &shape
	case rope.CircleShape:
		shape := box2d.MakeB2CircleShape()
		shape.M_radius = def.Radius
		fd.Shape = &shape
	default:
		return rope.ErrUnsupported
	}

	if b.b2.CreateFixtureFromDef(&fd) == nil {
		return rope.ErrWorldLocked
	}
	b.shapes = append(b.shapes, def)
	return nil
}

func (w *World) DestroyBody(rb rope.Body) {
	b, err := w.body(rb)
	if err != nil {
		panic(err)
	}
	w.b2.DestroyBody(b.b2)
	w.removeBody(b)
}

func (w *World) Step(dt float64) {
	w.b2.Step(dt, w.VelocityIterations, w.PositionIterations)
}

func (w *World) Bodies() []rope.Body {
	out := make([]rope.Body, len(w.bodies))
	for i, b := range w.bodies {
		out[i] = b
	}
	return out
}

func (w *World) Joints() []rope.Joint {
	out := make([]rope.Joint, len(w.joints))
	for i, j := range w.joints {
		out[i] = j
	}
	return out
}

func (w *World) BodyCount() int {
	return w.b2.GetBodyCount()
}

func (w *World) JointCount() int {
	return w.b2.GetJointCount()
}

func (w *World) body(rb rope.Body) (*Body, error) {
	b, ok := rb.(*Body)
	if !ok || b == nil || b.index < 0 || b.index >= len(w.bodies) || w.bodies[b.index] != b {
		return nil, rope.ErrUnknownBody
	}
	return b, nil
}

// removeBody swaps the last body into b's slot.
func (w *World) removeBody(b *Body) {
	last := w.bodies[len(w.bodies)-1]
	w.bodies[b.index] = last
	last.index = b.index
	w.bodies = w.bodies[:len(w.bodies)-1]
	b.index = -1

	// box2d destroys joints still attached to a destroyed body
	for i := 0; i < len(w.joints); {
		j := w.joints[i]
		if j.a == b || j.b == b {
			w.removeJoint(j)
			continue
		}
		i++
	}
}

func vec(v rope.Vec2) box2d.B2Vec2 {
	return box2d.MakeB2Vec2(v.X, v.Y)
}

func unvec(v box2d.B2Vec2) rope.Vec2 {
	return rope.MakeVec2(v.X, v.Y)
}
