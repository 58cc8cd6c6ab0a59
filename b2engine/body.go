package b2engine

import (
	"github.com/ByteArena/box2d"

	"github.com/warrenfalk/rope"
)

// Body wraps a box2d body. The wrapper is stored as the body's user data so
// ray cast hits map back to it.
type Body struct {
	b2     *box2d.B2Body
	kind   rope.BodyKind
	shapes []rope.ShapeDef
	index  int
}

var _ rope.Body = (*Body)(nil)

// B2 exposes the underlying body.
func (b *Body) B2() *box2d.B2Body {
	return b.b2
}

func (b *Body) Kind() rope.BodyKind {
	return b.kind
}

func (b *Body) Position() rope.Vec2 {
	return unvec(b.b2.GetPosition())
}

func (b *Body) Angle() float64 {
	return b.b2.GetAngle()
}

func (b *Body) WorldPoint(local rope.Vec2) rope.Vec2 {
	return unvec(b.b2.GetWorldPoint(vec(local)))
}

func (b *Body) LocalPoint(world rope.Vec2) rope.Vec2 {
	return unvec(b.b2.GetLocalPoint(vec(world)))
}

func (b *Body) Shapes() []rope.ShapeDef {
	return b.shapes
}

// bodyOf recovers the wrapper from a box2d body.
func bodyOf(b2 *box2d.B2Body) *Body {
	if b2 == nil {
		return nil
	}
	b, _ := b2.GetUserData().(*Body)
	return b
}

func (b *Body) Destroyed() bool {
	return b.index < 0
}
