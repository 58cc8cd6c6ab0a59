package cpengine

import (
	"github.com/jakecoffman/cp"

	"github.com/warrenfalk/rope"
)

type Body struct {
	cp       *cp.Body
	kind     rope.BodyKind
	shapes   []rope.ShapeDef
	cpShapes []*cp.Shape
	index    int
}

var _ rope.Body = (*Body)(nil)

// CP exposes the underlying body.
func (b *Body) CP() *cp.Body {
	return b.cp
}

func (b *Body) Kind() rope.BodyKind {
	return b.kind
}

func (b *Body) Position() rope.Vec2 {
	return unvec(b.cp.Position())
}

func (b *Body) Angle() float64 {
	return b.cp.Angle()
}

func (b *Body) WorldPoint(local rope.Vec2) rope.Vec2 {
	return unvec(b.cp.LocalToWorld(vec(local)))
}

func (b *Body) LocalPoint(world rope.Vec2) rope.Vec2 {
	return unvec(b.cp.WorldToLocal(vec(world)))
}

func (b *Body) Shapes() []rope.ShapeDef {
	return b.shapes
}

func (b *Body) Destroyed() bool {
	return b.index < 0
}
