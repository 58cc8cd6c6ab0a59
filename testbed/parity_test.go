package testbed_test

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/warrenfalk/rope"
	"github.com/warrenfalk/rope/testbed"
)

func round(v float64) float64 {
	// adding zero turns -0 into 0
	return math.Round(v*1000)/1000 + 0
}

func vecString(v rope.Vec2) string {
	return fmt.Sprintf("(%.3f, %.3f)", round(v.X), round(v.Y))
}

// dump lists bodies and joints in creation order. Engines are expected to
// keep creation order until something is destroyed.
func dump(e rope.Engine) string {
	index := make(map[rope.Body]int)
	var b strings.Builder
	for i, body := range e.Bodies() {
		index[body] = i
		fmt.Fprintf(&b, "body %d %s %s angle %.3f", i, body.Kind(), vecString(body.Position()), round(body.Angle()))
		for _, s := range body.Shapes() {
			switch s.Kind {
			case rope.BoxShape:
				fmt.Fprintf(&b, " box %.3fx%.3f", s.HalfExtents.X, s.HalfExtents.Y)
			case rope.CircleShape:
				fmt.Fprintf(&b, " circle %.3f", s.Radius)
			}
		}
		b.WriteString("\n")
	}
	for _, j := range e.Joints() {
		a, c := j.Anchors()
		fmt.Fprintf(&b, "joint %s %d-%d %s %s limit %.3f\n", j.Kind(),
			index[j.BodyA()], index[j.BodyB()], vecString(a), vecString(c), round(j.MaxLength()))
	}
	return b.String()
}

func diff(t *testing.T, expected, current, from, to string) {
	t.Helper()
	if expected == current {
		return
	}
	d := difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(current),
		FromFile: from,
		ToFile:   to,
		Context:  0,
	}
	text, _ := difflib.GetUnifiedDiffString(d)
	t.Fatalf("topology differs:\n%s", text)
}

func TestChainTopologyGolden(t *testing.T) {
	expected := `body 0 dynamic (0.300, 0.000) angle 0.000 box 0.300x0.100
body 1 dynamic (0.900, 0.000) angle 0.000 box 0.300x0.100
body 2 dynamic (1.500, 0.000) angle 0.000 box 0.300x0.100
joint rotational 0-1 (0.600, 0.000) (0.600, 0.000) limit 0.000
joint rotational 1-2 (1.200, 0.000) (1.200, 0.000) limit 0.000
joint max-distance 0-2 (0.000, 0.000) (1.800, 0.000) limit 1.800
`
	for _, backend := range testbed.Backends() {
		e, err := testbed.NewEngine(backend, rope.MakeVec2(0, -10), 0, 0)
		if err != nil {
			t.Fatal(err)
		}
		_, err = rope.NewBuilder(e, rope.ChainConfig()).Build(rope.Anchors{To: rope.MakeVec2(1.8, 0)})
		if err != nil {
			t.Fatal(err)
		}
		diff(t, expected, dump(e), "Expected", backend)
	}
}

// Every scene must build the same structure on both engines.
func TestBackendParity(t *testing.T) {
	for _, entry := range testbed.Scenes() {
		t.Run(entry.Name, func(t *testing.T) {
			dumps := make([]string, 0, 2)
			for _, backend := range testbed.Backends() {
				s := testbed.DefaultSettings()
				s.Backend = backend
				s.Scene = entry.Name
				d, err := testbed.NewDriver(s, nil)
				if err != nil {
					t.Fatal(err)
				}
				if d.Aggregate() == nil {
					if err := d.Input(testbed.CommandToggle); err != nil {
						t.Fatal(err)
					}
				}
				dumps = append(dumps, dump(d.Engine()))
			}
			diff(t, dumps[0], dumps[1], testbed.BackendBox2D, testbed.BackendChipmunk)
		})
	}
}
