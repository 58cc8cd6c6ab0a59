package rope

import (
	"errors"
	"math"
	"testing"
)

func TestLayoutChainKeepsResolution(t *testing.T) {
	l, err := NewLayout(ChainVariant, 0.2, 0.6, MakeVec2(0, 0), MakeVec2(18, 0))
	if err != nil {
		t.Fatal(err)
	}
	if l.Count != 30 {
		t.Fatalf("count = %d, want 30", l.Count)
	}
	if !near(l.Resolution, 0.6) {
		t.Fatalf("resolution = %v, want 0.6", l.Resolution)
	}
	first, last := l.Placements[0], l.Placements[29]
	if !nearVec(first.Position, MakeVec2(0.3, 0)) {
		t.Errorf("first link at %v", first.Position)
	}
	if !nearVec(last.Position, MakeVec2(17.7, 0)) {
		t.Errorf("last link at %v", last.Position)
	}
	if !nearVec(first.HalfExtents, MakeVec2(0.3, 0.1)) {
		t.Errorf("half extents %v", first.HalfExtents)
	}
	if !nearVec(last.End, MakeVec2(18, 0)) {
		t.Errorf("last link ends at %v", last.End)
	}
}

func TestLayoutChainRoundsUp(t *testing.T) {
	// 5 / 0.6 = 8.33
	l, err := NewLayout(ChainVariant, 0.2, 0.6, MakeVec2(0, 0), MakeVec2(3, 4))
	if err != nil {
		t.Fatal(err)
	}
	if l.Count != 9 {
		t.Fatalf("count = %d, want 9", l.Count)
	}
	if l.Reach() < l.Length {
		t.Fatalf("reach %v falls short of %v", l.Reach(), l.Length)
	}
	for _, p := range l.Placements {
		if p.Angle != 0 {
			t.Fatalf("chain link %d has angle %v", p.Index, p.Angle)
		}
	}
	// links sit on the line between the anchors
	mid := l.Placements[4].Position
	if !near(mid.Cross(MakeVec2(3, 4)), 0) {
		t.Fatalf("link 4 at %v is off the span", mid)
	}
}

func TestLayoutRopeTilesSpan(t *testing.T) {
	// 10 / 0.6 = 16.67
	l, err := NewLayout(RopeVariant, 0.2, 0.6, MakeVec2(0, 0), MakeVec2(10, 0))
	if err != nil {
		t.Fatal(err)
	}
	if l.Count != 16 {
		t.Fatalf("count = %d, want 16", l.Count)
	}
	if !near(l.Resolution, 0.625) {
		t.Fatalf("resolution = %v, want 0.625", l.Resolution)
	}
	if !near(l.Reach(), l.Length) {
		t.Fatalf("reach %v, length %v", l.Reach(), l.Length)
	}
	if !nearVec(l.Placements[15].End, MakeVec2(10, 0)) {
		t.Fatalf("last link ends at %v", l.Placements[15].End)
	}
}

func TestLayoutRopeIsOriented(t *testing.T) {
	l, err := NewLayout(RopeVariant, 0.2, 1, MakeVec2(1, 1), MakeVec2(4, 5))
	if err != nil {
		t.Fatal(err)
	}
	if l.Count != 5 {
		t.Fatalf("count = %d, want 5", l.Count)
	}
	want := math.Atan2(4, 3)
	for _, p := range l.Placements {
		if !near(p.Angle, want) {
			t.Fatalf("link %d angle %v, want %v", p.Index, p.Angle, want)
		}
	}
	if !nearVec(l.Placements[0].Position, MakeVec2(1.3, 1.4)) {
		t.Fatalf("first link at %v", l.Placements[0].Position)
	}
}

func TestLayoutShortRopeHasOneLink(t *testing.T) {
	l, err := NewLayout(RopeVariant, 0.2, 0.6, MakeVec2(0, 0), MakeVec2(0, 0.3))
	if err != nil {
		t.Fatal(err)
	}
	if l.Count != 1 || !near(l.Resolution, 0.3) {
		t.Fatalf("count %d resolution %v", l.Count, l.Resolution)
	}
}

func TestLayoutRejectsBadInput(t *testing.T) {
	origin := MakeVec2(0, 0)
	tests := []struct {
		name       string
		thickness  float64
		resolution float64
		to         Vec2
		want       error
	}{
		{"zero span", 0.2, 0.6, origin, ErrDegenerateSpan},
		{"zero thickness", 0, 0.6, MakeVec2(1, 0), ErrInvalidThickness},
		{"negative thickness", -1, 0.6, MakeVec2(1, 0), ErrInvalidThickness},
		{"zero resolution", 0.2, 0, MakeVec2(1, 0), ErrInvalidResolution},
		{"NaN resolution", 0.2, math.NaN(), MakeVec2(1, 0), ErrInvalidResolution},
		{"infinite resolution", 0.2, math.Inf(1), MakeVec2(1, 0), ErrInvalidResolution},
		{"infinite thickness", math.Inf(1), 0.6, MakeVec2(1, 0), ErrInvalidThickness},
		{"too fine", 0.2, 1e-9, MakeVec2(1, 0), ErrInvalidResolution},
		{"NaN span", 0.2, 0.6, MakeVec2(math.NaN(), 0), ErrDegenerateSpan},
		{"infinite span", 0.2, 0.6, MakeVec2(math.Inf(1), 0), ErrDegenerateSpan},
		{"overflowing span", 0.2, 0.6, MakeVec2(math.MaxFloat64, math.MaxFloat64), ErrDegenerateSpan},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, v := range []Variant{ChainVariant, RopeVariant} {
				_, err := NewLayout(v, tt.thickness, tt.resolution, origin, tt.to)
				if !errors.Is(err, tt.want) {
					t.Fatalf("%s: err = %v, want %v", v, err, tt.want)
				}
			}
		})
	}
}
