package rope

// Probe is the result of casting a ray for a rope to strike.
type Probe struct {
	Origin    Vec2
	Direction Vec2
	MaxRange  float64

	// Hit is false when nothing was in range; Point is then the far end of
	// the ray and Body is nil.
	Hit      bool
	Body     Body
	Point    Vec2
	Normal   Vec2
	Fraction float64
}

// Distance from the origin to the strike point.
func (p Probe) Distance() float64 {
	return p.Fraction * p.MaxRange
}

// Cast sends a ray from origin along angle for up to maxRange and reports the
// first shape it strikes. A miss is not an error: the result points at the
// ray's far end.
func Cast(e Engine, origin Vec2, angle, maxRange float64, filter RayFilter) Probe {
	dir := FromAngle(angle)
	far := origin.Add(dir.Scale(maxRange))
	p := Probe{
		Origin:    origin,
		Direction: dir,
		MaxRange:  maxRange,
		Point:     far,
		Fraction:  1,
	}
	if maxRange <= 0 {
		p.Point = origin
		return p
	}

	hit, ok := e.RayCast(origin, far, filter)
	if !ok {
		return p
	}
	p.Hit = true
	p.Body = hit.Body
	p.Point = hit.Point
	p.Normal = hit.Normal
	p.Fraction = hit.Fraction
	return p
}

// Shoot fires a rope from localAnchor on fromBody toward angle and builds it
// to wherever the probe lands. On a miss the far end of the rope is left free
// at Config.MaxRange from the origin. The probe never strikes fromBody.
func (b *Builder) Shoot(fromBody Body, localAnchor Vec2, angle float64) (*Aggregate, Probe, error) {
	from := fromBody.WorldPoint(localAnchor)
	p := Cast(b.Engine, from, angle, b.Config.MaxRange, RayFilter{
		MaskBits: b.Config.ProbeMask,
		Skip:     fromBody,
	})

	agg, err := b.Build(Anchors{
		FromBody: fromBody,
		ToBody:   p.Body,
		From:     from,
		To:       p.Point,
	})
	return agg, p, err
}
