package cpengine

import (
	"fmt"

	"github.com/jakecoffman/cp"

	"github.com/warrenfalk/rope"
)

type Joint struct {
	cp   *cp.Constraint
	kind rope.JointKind
	a, b *Body

	// body-local anchors
	localA, localB rope.Vec2
	maxLength      float64
	index          int
}

var _ rope.Joint = (*Joint)(nil)

// CP exposes the underlying constraint.
func (j *Joint) CP() *cp.Constraint {
	return j.cp
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
	return j.a.WorldPoint(j.localA), j.b.WorldPoint(j.localB)
}

func (j *Joint) MaxLength() float64 {
	return j.maxLength
}

func (j *Joint) Destroyed() bool {
	return j.index < 0
}

func (s *Space) CreateJoint(def rope.JointDef) (rope.Joint, error) {
	a, err := s.body(def.BodyA)
	if err != nil {
		return nil, fmt.Errorf("body A: %w", err)
	}
	b, err := s.body(def.BodyB)
	if err != nil {
		return nil, fmt.Errorf("body B: %w", err)
	}
	if a == b {
		return nil, fmt.Errorf("%w: joint between a body and itself", rope.ErrUnsupported)
	}

	j := &Joint{kind: def.Kind, a: a, b: b}
	switch def.Kind {
	case rope.RotationalJoint:
		j.localA = a.LocalPoint(def.AnchorA)
		j.localB = b.LocalPoint(def.AnchorA)
		j.cp = cp.NewPivotJoint2(a.cp, b.cp, vec(j.localA), vec(j.localB))
	case rope.MaxDistanceJoint:
		j.localA = a.LocalPoint(def.AnchorA)
		j.localB = b.LocalPoint(def.AnchorB)
		j.maxLength = def.MaxLength
		j.cp = cp.NewSlideJoint(a.cp, b.cp, vec(j.localA), vec(j.localB), 0, def.MaxLength)
	case rope.FixedDistanceJoint:
		j.localA = a.LocalPoint(def.AnchorA)
		j.localB = b.LocalPoint(def.AnchorB)
		j.maxLength = rope.Distance(def.AnchorA, def.AnchorB)
		if def.MaxLength > 0 {
			j.maxLength = def.MaxLength
		}
		// a slide joint with equal limits holds the given length even when
		// the anchors start elsewhere
		j.cp = cp.NewSlideJoint(a.cp, b.cp, vec(j.localA), vec(j.localB), j.maxLength, j.maxLength)
	default:
		return nil, rope.ErrUnsupported
	}
	j.cp.SetCollideBodies(def.CollideConnected)

	s.space.AddConstraint(j.cp)
	j.index = len(s.joints)
	s.joints = append(s.joints, j)
	return j, nil
}

func (s *Space) DestroyJoint(rj rope.Joint) {
	j, ok := rj.(*Joint)
	if !ok || j == nil || j.index < 0 {
		panic("cpengine: joint does not belong to this space")
	}
	s.space.RemoveConstraint(j.cp)

	last := s.joints[len(s.joints)-1]
	s.joints[j.index] = last
	last.index = j.index
	s.joints = s.joints[:len(s.joints)-1]
	j.index = -1
}
