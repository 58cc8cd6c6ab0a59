package main

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/warrenfalk/rope"
	"github.com/warrenfalk/rope/testbed"
)

func screenText(s tcell.Screen) (string, map[rune]int) {
	w, h := s.Size()
	counts := make(map[rune]int)
	var b strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, _, _, _ := s.GetContent(x, y)
			counts[r]++
			b.WriteRune(r)
		}
		b.WriteRune('\n')
	}
	return b.String(), counts
}

func TestDrawScene(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(100, 40)

	s := testbed.DefaultSettings()
	d, err := testbed.NewDriver(s, nil)
	if err != nil {
		t.Fatal(err)
	}

	draw(screen, d, 2, rope.MakeVec2(0, 8))
	text, counts := screenText(screen)
	if !strings.Contains(text, "Rope | box2d | step 0") {
		t.Fatalf("status line missing:\n%s", text)
	}
	if counts[runeStatic] == 0 || counts[runeBody] == 0 {
		t.Fatalf("bodies not drawn:\n%s", text)
	}
	if counts[runeLink] != 0 {
		t.Fatal("links drawn before the rope exists")
	}

	d.Input(testbed.CommandToggle)
	draw(screen, d, 2, rope.MakeVec2(0, 8))
	text, counts = screenText(screen)
	if counts[runeLink] == 0 {
		t.Fatalf("rope not drawn:\n%s", text)
	}
	if !strings.Contains(text, "links") {
		t.Fatalf("rope missing from status line:\n%s", text)
	}
}

func TestGridRoundTrip(t *testing.T) {
	g := grid{width: 80, height: 24, scale: 2, center: rope.MakeVec2(0, 8)}
	for _, c := range [][2]int{{0, 0}, {40, 12}, {79, 23}, {13, 5}} {
		x, y := g.cell(g.world(c[0], c[1]))
		if x != c[0] || y != c[1] {
			t.Fatalf("cell %v maps back to %d,%d", c, x, y)
		}
	}
}

func TestCueFor(t *testing.T) {
	miss := &rope.Probe{}
	hit := &rope.Probe{Hit: true}
	if cueFor(testbed.Event{Kind: testbed.EventBuilt, Probe: miss}) != cueMiss {
		t.Error("miss")
	}
	if cueFor(testbed.Event{Kind: testbed.EventBuilt, Probe: hit}) != cueHit {
		t.Error("hit")
	}
	if cueFor(testbed.Event{Kind: testbed.EventBuilt}) != cueHit {
		t.Error("built without probe")
	}
	if cueFor(testbed.Event{Kind: testbed.EventDestroyed}) != cueCut {
		t.Error("cut")
	}
}
