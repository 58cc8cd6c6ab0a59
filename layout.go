package rope

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrDegenerateSpan    = errors.New("rope: span between anchors is empty or not finite")
	ErrInvalidThickness  = errors.New("rope: thickness must be positive and finite")
	ErrInvalidResolution = errors.New("rope: resolution must be positive and finite")
)

// MaxLinks bounds the segments one layout may produce.
const MaxLinks = 1 << 16

// Variant selects how a span is divided into segments.
type Variant uint8

const (
	// ChainVariant keeps the requested spacing and rounds the segment count up,
	// so the last link may reach past the far anchor. Links are axis aligned.
	ChainVariant Variant = iota

	// RopeVariant rounds the segment count down and stretches the spacing so
	// the segments tile the span exactly. Links are oriented along the span.
	RopeVariant
)

func (v Variant) String() string {
	switch v {
	case ChainVariant:
		return "chain"
	case RopeVariant:
		return "rope"
	}
	return "unknown"
}

// quotients closer than this to an integer are treated as that integer
const countSnap = 1e-9

// Placement is where one segment goes.
type Placement struct {
	Index       int
	Position    Vec2
	Angle       float64
	HalfExtents Vec2

	// Start and End are the boundary points shared with the neighbours.
	Start Vec2
	End   Vec2
}

// Layout is the Segment Factory output for one span.
type Layout struct {
	Variant    Variant
	From       Vec2
	To         Vec2
	Direction  Vec2
	Length     float64
	Angle      float64
	Thickness  float64
	Resolution float64
	Count      int
	Placements []Placement
}

// NewLayout divides the span from..to into segments of roughly resolution
// length. It has no side effects.
func NewLayout(variant Variant, thickness, resolution float64, from, to Vec2) (Layout, error) {
	if !(thickness > 0) || math.IsInf(thickness, 1) {
		return Layout{}, fmt.Errorf("%w: %v", ErrInvalidThickness, thickness)
	}
	if !(resolution > 0) || math.IsInf(resolution, 1) {
		return Layout{}, fmt.Errorf("%w: %v", ErrInvalidResolution, resolution)
	}

	span := to.Sub(from)
	if !from.IsValid() || !to.IsValid() || !span.IsValid() {
		return Layout{}, fmt.Errorf("%w: %v -> %v", ErrDegenerateSpan, from, to)
	}
	direction, length := span.Normalize()
	if length < Epsilon || math.IsInf(length, 1) {
		return Layout{}, fmt.Errorf("%w: %v -> %v", ErrDegenerateSpan, from, to)
	}

	l := Layout{
		Variant:    variant,
		From:       from,
		To:         to,
		Direction:  direction,
		Length:     length,
		Angle:      direction.Angle(),
		Thickness:  thickness,
		Resolution: resolution,
	}

	q := snapCount(length / resolution)
	if q > MaxLinks {
		return Layout{}, fmt.Errorf("%w: %v is too fine for a span of %v", ErrInvalidResolution, resolution, length)
	}
	switch variant {
	case RopeVariant:
		l.Count = int(math.Floor(q))
		if l.Count < 1 {
			l.Count = 1
		}
		l.Resolution = length / float64(l.Count)
	default:
		l.Count = int(math.Ceil(q))
	}

	half := MakeVec2(l.Resolution/2, thickness/2)
	l.Placements = make([]Placement, l.Count)
	for i := range l.Placements {
		p := Placement{
			Index:       i,
			HalfExtents: half,
			Start:       l.Boundary(i),
			End:         l.Boundary(i + 1),
		}
		switch variant {
		case RopeVariant:
			p.Position = from.Add(direction.Scale(l.Resolution * (float64(i) + 0.5)))
			p.Angle = l.Angle
		default:
			p.Position = p.Start.Add(direction.Scale(l.Resolution * 0.5))
		}
		l.Placements[i] = p
	}

	return l, nil
}

// Boundary is the point between segment i-1 and segment i.
func (l Layout) Boundary(i int) Vec2 {
	return l.From.Add(l.Direction.Scale(l.Resolution * float64(i)))
}

// Reach is the distance from From to the far end of the last segment.
func (l Layout) Reach() float64 {
	return l.Resolution * float64(l.Count)
}

func snapCount(q float64) float64 {
	if r := math.Round(q); math.Abs(q-r) < countSnap {
		return r
	}
	return q
}
