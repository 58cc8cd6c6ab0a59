package b2engine

import (
	"github.com/ByteArena/box2d"

	"github.com/warrenfalk/rope"
)

// RayCast reports the closest fixture accepted by filter along from..to.
// Returning the fraction from the callback clips the ray, so the last
// accepted report is the closest one.
func (w *World) RayCast(from, to rope.Vec2, filter rope.RayFilter) (rope.RayHit, bool) {
	var hit rope.RayHit
	found := false

	w.b2.RayCast(func(fixture *box2d.B2Fixture, point box2d.B2Vec2, normal box2d.B2Vec2, fraction float64) float64 {
		body := bodyOf(fixture.GetBody())
		if body == nil {
			return -1
		}
		fd := fixture.GetFilterData()
		if !filter.Accepts(body, rope.Filter{CategoryBits: fd.CategoryBits, MaskBits: fd.MaskBits}) {
			return -1
		}
		hit = rope.RayHit{
			Body:     body,
			Point:    unvec(point),
			Normal:   unvec(normal),
			Fraction: fraction,
		}
		found = true
		return fraction
	}, vec(from), vec(to))

	return hit, found
}
