package b2engine

import (
	"fmt"

	"github.com/ByteArena/box2d"

	"github.com/warrenfalk/rope"
)

// Joint wraps a box2d joint.
type Joint struct {
	b2        box2d.B2JointInterface
	kind      rope.JointKind
	a, b      *Body
	maxLength float64
	index     int
}

var _ rope.Joint = (*Joint)(nil)

// B2 exposes the underlying joint.
func (j *Joint) B2() box2d.B2JointInterface {
	return j.b2
}

func (j *Joint) Kind() rope.JointKind {
	return j.kind
}

func (j *Joint) BodyA() rope.Body {
	return j.a
}

func (j *Joint) BodyB() rope.Body {
	return j.b
}

func (j *Joint) Anchors() (rope.Vec2, rope.Vec2) {
	switch t := j.b2.(type) {
	case *box2d.B2RevoluteJoint:
		return unvec(t.GetAnchorA()), unvec(t.GetAnchorB())
	case *box2d.B2RopeJoint:
		return unvec(t.GetAnchorA()), unvec(t.GetAnchorB())
	case *box2d.B2DistanceJoint:
		return unvec(t.GetAnchorA()), unvec(t.GetAnchorB())
	}
	return j.a.Position(), j.b.Position()
}

func (j *Joint) MaxLength() float64 {
	return j.maxLength
}

func (j *Joint) Destroyed() bool {
	return j.index < 0
}

func (w *World) CreateJoint(def rope.JointDef) (rope.Joint, error) {
	a, err := w.body(def.BodyA)
	if err != nil {
		return nil, fmt.Errorf("body A: %w", err)
	}
	b, err := w.body(def.BodyB)
	if err != nil {
		return nil, fmt.Errorf("body B: %w", err)
	}
	if a == b {
		return nil, fmt.Errorf("%w: joint between a body and itself", rope.ErrUnsupported)
	}

	var jd box2d.B2JointDefInterface
	maxLength := 0.0
	switch def.Kind {
	case rope.RotationalJoint:
		rd := box2d.MakeB2RevoluteJointDef()
		rd.Initialize(a.b2, b.b2, vec(def.AnchorA))
		jd = &rd
	case rope.MaxDistanceJoint:
		rd := box2d.MakeB2RopeJointDef()
		rd.BodyA = a.b2
		rd.BodyB = b.b2
		rd.LocalAnchorA = a.b2.GetLocalPoint(vec(def.AnchorA))
		rd.LocalAnchorB = b.b2.GetLocalPoint(vec(def.AnchorB))
		rd.MaxLength = def.MaxLength
		maxLength = def.MaxLength
		jd = &rd
	case rope.FixedDistanceJoint:
		dd := box2d.MakeB2DistanceJointDef()
		dd.Initialize(a.b2, b.b2, vec(def.AnchorA), vec(def.AnchorB))
		if def.MaxLength > 0 {
			dd.Length = def.MaxLength
		}
		maxLength = dd.Length
		jd = &dd
	default:
		return nil, rope.ErrUnsupported
	}
	jd.SetCollideConnected(def.CollideConnected)

	b2j := w.link(jd)
	if b2j == nil {
		return nil, rope.ErrWorldLocked
	}
	j := &Joint{b2: b2j, kind: def.Kind, a: a, b: b, maxLength: maxLength, index: len(w.joints)}
	b2j.SetUserData(j)
	w.joints = append(w.joints, j)
	return j, nil
}

func (w *World) DestroyJoint(rj rope.Joint) {
	j, ok := rj.(*Joint)
	if !ok || j == nil || j.index < 0 {
		panic("b2engine: joint does not belong to this world")
	}
	w.b2.DestroyJoint(j.b2)
	w.removeJoint(j)
}

func (w *World) removeJoint(j *Joint) {
	last := w.joints[len(w.joints)-1]
	w.joints[j.index] = last
	last.index = j.index
	w.joints = w.joints[:len(w.joints)-1]
	j.index = -1
}

// link creates a joint from a typed definition and connects it to the world
// and both bodies. B2World.CreateJoint takes the base definition, which strips
// the concrete type B2JointCreate switches on, so the linking is done here.
func (w *World) link(def box2d.B2JointDefInterface) box2d.B2JointInterface {
	world := &w.b2
	if world.IsLocked() {
		return nil
	}

	j := box2d.B2JointCreate(def)

	// Connect to the world list.
	j.SetPrev(nil)
	j.SetNext(world.M_jointList)
	if world.M_jointList != nil {
		world.M_jointList.SetPrev(j)
	}
	world.M_jointList = j
	world.M_jointCount++

	// Connect to the bodies' doubly linked lists.
	bodyA := j.GetBodyA()
	bodyB := j.GetBodyB()

	edgeA := j.GetEdgeA()
	edgeA.Joint = j
	edgeA.Other = bodyB
	edgeA.Prev = nil
	edgeA.Next = bodyA.M_jointList
	if bodyA.M_jointList != nil {
		bodyA.M_jointList.Prev = edgeA
	}
	bodyA.M_jointList = edgeA

	edgeB := j.GetEdgeB()
	edgeB.Joint = j
	edgeB.Other = bodyA
	edgeB.Prev = nil
	edgeB.Next = bodyB.M_jointList
	if bodyB.M_jointList != nil {
		bodyB.M_jointList.Prev = edgeB
	}
	bodyB.M_jointList = edgeB

	// Existing contacts between the pair are refiltered on the next step.
	if !def.IsCollideConnected() {
		for edge := bodyB.GetContactList(); edge != nil; edge = edge.Next {
			if edge.Other == bodyA {
				edge.Contact.FlagForFiltering()
			}
		}
	}

	return j
}
