package rope

import (
	"errors"
	"math"
)

var errInjected = errors.New("injected failure")

type fakeBody struct {
	def    BodyDef
	shapes []ShapeDef
	alive  bool
}

func (b *fakeBody) Kind() BodyKind     { return b.def.Kind }
func (b *fakeBody) Position() Vec2     { return b.def.Position }
func (b *fakeBody) Angle() float64     { return b.def.Angle }
func (b *fakeBody) Shapes() []ShapeDef { return b.shapes }
func (b *fakeBody) Destroyed() bool    { return !b.alive }

func (b *fakeBody) WorldPoint(local Vec2) Vec2 {
	return b.def.Position.Add(local.Rotate(b.def.Angle))
}

func (b *fakeBody) LocalPoint(world Vec2) Vec2 {
	return world.Sub(b.def.Position).Rotate(-b.def.Angle)
}

type fakeJoint struct {
	def   JointDef
	alive bool
}

func (j *fakeJoint) Kind() JointKind       { return j.def.Kind }
func (j *fakeJoint) BodyA() Body           { return j.def.BodyA }
func (j *fakeJoint) BodyB() Body           { return j.def.BodyB }
func (j *fakeJoint) Anchors() (Vec2, Vec2) { return j.def.AnchorA, j.def.AnchorB }
func (j *fakeJoint) MaxLength() float64    { return j.def.MaxLength }
func (j *fakeJoint) Destroyed() bool       { return !j.alive }

// fakeEngine records everything and never moves. Setting failBodies or
// failJoints makes the n-th following creation fail.
type fakeEngine struct {
	bodies []*fakeBody
	joints []*fakeJoint

	failBodies int
	failJoints int
}

var _ Engine = (*fakeEngine)(nil)

func (e *fakeEngine) CreateBody(def BodyDef) (Body, error) {
	if e.failBodies > 0 {
		e.failBodies--
		if e.failBodies == 0 {
			return nil, errInjected
		}
	}
	b := &fakeBody{def: def, alive: true}
	e.bodies = append(e.bodies, b)
	return b, nil
}

func (e *fakeEngine) AttachShape(body Body, def ShapeDef) error {
	b := e.body(body)
	b.shapes = append(b.shapes, def)
	return nil
}

func (e *fakeEngine) CreateJoint(def JointDef) (Joint, error) {
	if e.failJoints > 0 {
		e.failJoints--
		if e.failJoints == 0 {
			return nil, errInjected
		}
	}
	e.body(def.BodyA)
	e.body(def.BodyB)
	if def.BodyA == def.BodyB {
		panic("fake: joint between a body and itself")
	}
	j := &fakeJoint{def: def, alive: true}
	e.joints = append(e.joints, j)
	return j, nil
}

func (e *fakeEngine) DestroyJoint(joint Joint) {
	j := joint.(*fakeJoint)
	if !j.alive {
		panic("fake: joint destroyed twice")
	}
	j.alive = false
	for i, other := range e.joints {
		if other == j {
			e.joints = append(e.joints[:i], e.joints[i+1:]...)
			return
		}
	}
}

func (e *fakeEngine) DestroyBody(body Body) {
	b := e.body(body)
	for _, j := range e.joints {
		if j.def.BodyA == body || j.def.BodyB == body {
			panic("fake: body destroyed while a joint still references it")
		}
	}
	b.alive = false
	for i, other := range e.bodies {
		if other == b {
			e.bodies = append(e.bodies[:i], e.bodies[i+1:]...)
			return
		}
	}
}

// RayCast intersects the ray with every box and circle.
func (e *fakeEngine) RayCast(from, to Vec2, filter RayFilter) (RayHit, bool) {
	var best RayHit
	found := false
	for _, b := range e.bodies {
		for _, s := range b.shapes {
			if !filter.Accepts(b, s.Filter) {
				continue
			}
			t, ok := intersect(b, s, from, to)
			if !ok || (found && t >= best.Fraction) {
				continue
			}
			found = true
			best = RayHit{Body: b, Point: from.Add(to.Sub(from).Scale(t)), Fraction: t}
		}
	}
	return best, found
}

func intersect(b *fakeBody, s ShapeDef, from, to Vec2) (float64, bool) {
	p := b.LocalPoint(from)
	d := b.LocalPoint(to).Sub(p)
	if s.Kind == CircleShape {
		// |p + t d| = r
		a := d.Dot(d)
		bb := 2 * p.Dot(d)
		c := p.Dot(p) - s.Radius*s.Radius
		disc := bb*bb - 4*a*c
		if a == 0 || disc < 0 {
			return 0, false
		}
		t := (-bb - math.Sqrt(disc)) / (2 * a)
		return t, t >= 0 && t <= 1
	}

	lo, hi := 0.0, 1.0
	for axis := 0; axis < 2; axis++ {
		pv, dv, h := p.X, d.X, s.HalfExtents.X
		if axis == 1 {
			pv, dv, h = p.Y, d.Y, s.HalfExtents.Y
		}
		if math.Abs(dv) < Epsilon {
			if pv < -h || pv > h {
				return 0, false
			}
			continue
		}
		t1, t2 := (-h-pv)/dv, (h-pv)/dv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		lo, hi = math.Max(lo, t1), math.Min(hi, t2)
		if lo > hi {
			return 0, false
		}
	}
	return lo, true
}

func (e *fakeEngine) Step(dt float64) {}

func (e *fakeEngine) Bodies() []Body {
	out := make([]Body, len(e.bodies))
	for i, b := range e.bodies {
		out[i] = b
	}
	return out
}

func (e *fakeEngine) Joints() []Joint {
	out := make([]Joint, len(e.joints))
	for i, j := range e.joints {
		out[i] = j
	}
	return out
}

func (e *fakeEngine) BodyCount() int  { return len(e.bodies) }
func (e *fakeEngine) JointCount() int { return len(e.joints) }

func (e *fakeEngine) body(body Body) *fakeBody {
	b, ok := body.(*fakeBody)
	if !ok || !b.alive {
		panic("fake: unknown body")
	}
	return b
}

func (e *fakeEngine) addBox(kind BodyKind, pos, half Vec2, filter Filter) Body {
	b, _ := e.CreateBody(BodyDef{Kind: kind, Position: pos})
	e.AttachShape(b, ShapeDef{Kind: BoxShape, HalfExtents: half, Density: 1, Filter: filter})
	return b
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func nearVec(a, b Vec2) bool {
	return near(a.X, b.X) && near(a.Y, b.Y)
}
