// Command testbed is the interactive rope testbed.
//
// Keys: j shoots or cuts the rope, p pauses, o steps once, r restarts, [ and ]
// switch scenes.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/warrenfalk/rope"
	"github.com/warrenfalk/rope/testbed"
)

const (
	screenWidth  = 1280
	screenHeight = 720
	panelWidth   = 220
)

var (
	colorStatic = rl.NewColor(90, 158, 90, 255)
	colorBody   = rl.NewColor(179, 179, 230, 255)
	colorJoint  = rl.NewColor(230, 77, 77, 255)
	colorPivot  = rl.NewColor(77, 204, 204, 255)
	colorPanel  = rl.NewColor(40, 40, 48, 235)
)

type view struct {
	scale  float32 // pixels per meter
	center rope.Vec2
}

func (v view) toScreen(p rope.Vec2) rl.Vector2 {
	w := float32(rl.GetScreenWidth()-panelWidth) / 2
	h := float32(rl.GetScreenHeight()) / 2
	return rl.NewVector2(w+float32(p.X-v.center.X)*v.scale, h-float32(p.Y-v.center.Y)*v.scale)
}

func main() {
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	flags := testbed.RegisterFlags(fs)
	fs.Parse(os.Args[1:])

	settings, err := testbed.LoadFlags(flags)
	if err != nil {
		log.Fatalf("settings: %v", err)
	}

	logger := log.New(os.Stderr, "[testbed] ", log.LstdFlags)
	driver, err := testbed.NewDriver(settings, logger)
	if err != nil {
		log.Fatalf("start: %v", err)
	}

	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(screenWidth, screenHeight, "rope testbed")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(settings.Hz))

	v := view{scale: 12, center: rope.MakeVec2(0, 8)}
	drawJoints := true
	thickness := float32(settings.Thickness)
	resolution := float32(settings.Resolution)
	if thickness == 0 {
		thickness = rope.DefaultThickness
	}
	if resolution == 0 {
		resolution = rope.DefaultResolution
	}

	for !rl.WindowShouldClose() {
		for c := rl.GetCharPressed(); c != 0; c = rl.GetCharPressed() {
			// errors are logged by the driver
			driver.Input(testbed.Command(c))
		}
		driver.Step()

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(30, 30, 36, 255))
		drawEngine(driver.Engine(), v, drawJoints)

		// side panel
		px := int32(rl.GetScreenWidth() - panelWidth)
		rl.DrawRectangle(px, 0, panelWidth, int32(rl.GetScreenHeight()), colorPanel)
		x := float32(px + 10)
		rl.DrawText(driver.Scene().Name(), int32(x), 10, 20, rl.White)
		rl.DrawText(fmt.Sprintf("%s  step %d", settings.Backend, driver.StepCount()), int32(x), 36, 10, rl.LightGray)

		if gui.Button(rl.NewRectangle(x, 56, 60, 24), "<") {
			driver.Input(testbed.CommandPrev)
		}
		if gui.Button(rl.NewRectangle(x+70, 56, 60, 24), ">") {
			driver.Input(testbed.CommandNext)
		}
		if gui.Button(rl.NewRectangle(x+140, 56, 60, 24), "Restart") {
			driver.Input(testbed.CommandRestart)
		}

		paused := gui.CheckBox(rl.NewRectangle(x, 92, 16, 16), "Pause", driver.Paused())
		if paused != driver.Paused() {
			driver.Input(testbed.CommandPause)
		}
		drawJoints = gui.CheckBox(rl.NewRectangle(x, 116, 16, 16), "Joints", drawJoints)

		rl.DrawText("Thickness", int32(x), 144, 10, rl.LightGray)
		thickness = gui.Slider(rl.NewRectangle(x, 158, 150, 16), "", fmt.Sprintf("%.2f", thickness), thickness, 0.05, 1)
		rl.DrawText("Resolution", int32(x), 182, 10, rl.LightGray)
		resolution = gui.Slider(rl.NewRectangle(x, 196, 150, 16), "", fmt.Sprintf("%.2f", resolution), resolution, 0.2, 2)
		if gui.Button(rl.NewRectangle(x, 222, 200, 24), "Apply (restarts)") {
			driver.Settings.Thickness = float64(thickness)
			driver.Settings.Resolution = float64(resolution)
			driver.Input(testbed.CommandRestart)
		}
		v.scale = gui.Slider(rl.NewRectangle(x, 256, 150, 16), "", "zoom", v.scale, 4, 40)

		if agg := driver.Aggregate(); agg != nil {
			counts := agg.CountJoints()
			rl.DrawText(fmt.Sprintf("links %d", agg.BodyCount()), int32(x), 286, 10, rl.LightGray)
			rl.DrawText(fmt.Sprintf("joints %d (braces %d)", agg.JointCount(), len(agg.Braces)), int32(x), 300, 10, rl.LightGray)
			rl.DrawText(fmt.Sprintf("rot %d  max %d  fixed %d", counts[rope.RotationalJoint],
				counts[rope.MaxDistanceJoint], counts[rope.FixedDistanceJoint]), int32(x), 314, 10, rl.LightGray)
		}
		rl.DrawText("j rope  p pause  o step", int32(x), int32(rl.GetScreenHeight()-40), 10, rl.Gray)
		rl.DrawText("r restart  [ ] scene", int32(x), int32(rl.GetScreenHeight()-26), 10, rl.Gray)
		rl.DrawFPS(10, 10)
		rl.EndDrawing()
	}
}

func drawEngine(e rope.Engine, v view, joints bool) {
	for _, body := range e.Bodies() {
		col := colorBody
		if body.Kind() == rope.StaticBody {
			col = colorStatic
		}
		center := v.toScreen(body.Position())
		for _, s := range body.Shapes() {
			switch s.Kind {
			case rope.BoxShape:
				w := float32(2*s.HalfExtents.X) * v.scale
				h := float32(2*s.HalfExtents.Y) * v.scale
				rl.DrawRectanglePro(rl.NewRectangle(center.X, center.Y, w, h), rl.NewVector2(w/2, h/2),
					float32(-body.Angle()*180/math.Pi), col)
			case rope.CircleShape:
				rl.DrawCircleV(center, float32(s.Radius)*v.scale, col)
			}
		}
	}
	if !joints {
		return
	}
	for _, j := range e.Joints() {
		a, b := j.Anchors()
		if j.Kind() == rope.RotationalJoint {
			rl.DrawCircleV(v.toScreen(a), 2, colorPivot)
			continue
		}
		rl.DrawLineEx(v.toScreen(a), v.toScreen(b), 1, colorJoint)
	}
}
