package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/warrenfalk/rope"
	"github.com/warrenfalk/rope/testbed"
)

var (
	styleDefault = tcell.StyleDefault
	styleStatic  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleBody    = tcell.StyleDefault.Foreground(tcell.ColorLightSteelBlue)
	styleLink    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleJoint   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
)

const (
	runeStatic = '#'
	runeBody   = '@'
	runeLink   = '~'
	runeJoint  = '.'
)

// grid maps world space onto terminal cells. Cells are about twice as tall
// as they are wide.
type grid struct {
	width, height int
	scale         float64 // cells per meter, horizontally
	center        rope.Vec2
}

func (g grid) cell(p rope.Vec2) (int, int) {
	x := float64(g.width)/2 + (p.X-g.center.X)*g.scale
	y := float64(g.height)/2 - (p.Y-g.center.Y)*g.scale/2
	return int(math.Floor(x)), int(math.Floor(y))
}

func (g grid) world(x, y int) rope.Vec2 {
	return rope.MakeVec2(
		g.center.X+(float64(x)+0.5-float64(g.width)/2)/g.scale,
		g.center.Y-(float64(y)+0.5-float64(g.height)/2)*2/g.scale,
	)
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

// draw renders the driver's engine with a status line on top.
func draw(s tcell.Screen, d *testbed.Driver, scale float64, center rope.Vec2) {
	s.Clear()
	w, h := s.Size()
	g := grid{width: w, height: h, scale: scale, center: center}

	agg := d.Aggregate()
	for _, body := range d.Engine().Bodies() {
		r, style := runeBody, styleBody
		switch {
		case body.Kind() == rope.StaticBody:
			r, style = runeStatic, styleStatic
		case agg != nil && agg.Owns(body):
			r, style = runeLink, styleLink
		}
		for _, shape := range body.Shapes() {
			fillShape(s, g, body, shape, r, style)
		}
	}

	for _, j := range d.Engine().Joints() {
		if j.Kind() == rope.RotationalJoint {
			continue
		}
		a, b := j.Anchors()
		drawLine(s, g, a, b)
	}

	status := fmt.Sprintf(" %s | %s | step %d ", d.Scene().Name(), d.Settings.Backend, d.StepCount())
	if d.Paused() {
		status += "| paused "
	}
	if agg != nil {
		status += fmt.Sprintf("| %d links %d joints ", agg.BodyCount(), agg.JointCount())
	}
	drawText(s, 0, 0, styleStatus, status)
	drawText(s, 0, h-1, styleDefault, "j rope  p pause  o step  r restart  [ ] scene  q quit")
}

func fillShape(s tcell.Screen, g grid, body rope.Body, shape rope.ShapeDef, r rune, style tcell.Style) {
	reach := shape.Radius
	if shape.Kind == rope.BoxShape {
		reach = shape.HalfExtents.Length()
	}
	x0, y0 := g.cell(body.Position().Add(rope.MakeVec2(-reach, reach)))
	x1, y1 := g.cell(body.Position().Add(rope.MakeVec2(reach, -reach)))
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, g.width-1), min(y1, g.height-1)

	hit := false
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if covers(body, shape, g.world(x, y)) {
				s.SetContent(x, y, r, nil, style)
				hit = true
			}
		}
	}
	// too small to cover a cell centre
	if !hit {
		if x, y := g.cell(body.Position()); x >= 0 && y >= 0 && x < g.width && y < g.height {
			s.SetContent(x, y, r, nil, style)
		}
	}
}

func covers(body rope.Body, shape rope.ShapeDef, p rope.Vec2) bool {
	local := body.LocalPoint(p)
	switch shape.Kind {
	case rope.BoxShape:
		return math.Abs(local.X) <= shape.HalfExtents.X && math.Abs(local.Y) <= shape.HalfExtents.Y
	case rope.CircleShape:
		return local.LengthSquared() <= shape.Radius*shape.Radius
	}
	return false
}

func drawLine(s tcell.Screen, g grid, a, b rope.Vec2) {
	ax, ay := g.cell(a)
	bx, by := g.cell(b)
	n := max(abs(bx-ax), abs(by-ay))
	for i := 0; i <= n; i++ {
		t := 0.0
		if n > 0 {
			t = float64(i) / float64(n)
		}
		x, y := g.cell(a.Add(b.Sub(a).Scale(t)))
		if x < 0 || y < 0 || x >= g.width || y >= g.height {
			continue
		}
		// links win over joint lines
		if c, _, _, _ := s.GetContent(x, y); c != ' ' && c != 0 {
			continue
		}
		s.SetContent(x, y, runeJoint, nil, styleJoint)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
