// Package snapshot renders an engine's bodies and joints to an image and
// writes it as PNG, WebP or TGA.
package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/warrenfalk/rope"
)

// Options place the camera. Scale is pixels per meter; the image is drawn
// Supersample times larger and filtered down.
type Options struct {
	Width       int
	Height      int
	Scale       float64
	Supersample int
	Center      rope.Vec2
}

var (
	Background  = color.RGBA{0x1e, 0x1e, 0x24, 0xff}
	StaticColor = color.RGBA{0x5a, 0x9e, 0x5a, 0xff}
	BodyColor   = color.RGBA{0xb3, 0xb3, 0xe6, 0xff}
	JointColor  = color.RGBA{0xe6, 0x4d, 0x4d, 0xff}
	PivotColor  = color.RGBA{0x4d, 0xcc, 0xcc, 0xff}
)

const circleSides = 24

type canvas struct {
	img    *image.RGBA
	z      *vector.Rasterizer
	scale  float64
	center rope.Vec2
}

func (c *canvas) point(v rope.Vec2) (float32, float32) {
	b := c.img.Bounds()
	x := (v.X-c.center.X)*c.scale + float64(b.Dx())/2
	y := float64(b.Dy())/2 - (v.Y-c.center.Y)*c.scale
	return float32(x), float32(y)
}

func (c *canvas) fill(col color.Color, pts []rope.Vec2) {
	if len(pts) < 3 {
		return
	}
	b := c.img.Bounds()
	c.z.Reset(b.Dx(), b.Dy())
	c.z.DrawOp = draw.Over
	x, y := c.point(pts[0])
	c.z.MoveTo(x, y)
	for _, p := range pts[1:] {
		x, y = c.point(p)
		c.z.LineTo(x, y)
	}
	c.z.ClosePath()
	c.z.Draw(c.img, b, image.NewUniform(col), image.Point{})
}

// line strokes a segment width meters wide.
func (c *canvas) line(col color.Color, a, b rope.Vec2, width float64) {
	dir, l := b.Sub(a).Normalize()
	if l == 0 {
		return
	}
	n := rope.MakeVec2(-dir.Y, dir.X).Scale(width / 2)
	c.fill(col, []rope.Vec2{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)})
}

func (c *canvas) disc(col color.Color, center rope.Vec2, radius float64) {
	pts := make([]rope.Vec2, circleSides)
	for i := range pts {
		pts[i] = center.Add(rope.FromAngle(2 * math.Pi * float64(i) / circleSides).Scale(radius))
	}
	c.fill(col, pts)
}

// Render draws every body and joint of e.
func Render(e rope.Engine, opt Options) *image.RGBA {
	ss := opt.Supersample
	if ss < 1 {
		ss = 1
	}
	c := &canvas{
		img:    image.NewRGBA(image.Rect(0, 0, opt.Width*ss, opt.Height*ss)),
		z:      vector.NewRasterizer(opt.Width*ss, opt.Height*ss),
		scale:  opt.Scale * float64(ss),
		center: opt.Center,
	}
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)

	for _, body := range e.Bodies() {
		col := BodyColor
		if body.Kind() == rope.StaticBody {
			col = StaticColor
		}
		for _, s := range body.Shapes() {
			switch s.Kind {
			case rope.BoxShape:
				h := s.HalfExtents
				c.fill(col, []rope.Vec2{
					body.WorldPoint(rope.MakeVec2(-h.X, -h.Y)),
					body.WorldPoint(rope.MakeVec2(h.X, -h.Y)),
					body.WorldPoint(rope.MakeVec2(h.X, h.Y)),
					body.WorldPoint(rope.MakeVec2(-h.X, h.Y)),
				})
			case rope.CircleShape:
				c.disc(col, body.Position(), s.Radius)
			}
		}
	}

	width := 1.5 / c.scale
	for _, j := range e.Joints() {
		a, b := j.Anchors()
		if j.Kind() == rope.RotationalJoint {
			c.disc(PivotColor, a, 2*width)
			continue
		}
		c.line(JointColor, a, b, width)
	}

	if ss == 1 {
		return c.img
	}
	dst := image.NewRGBA(image.Rect(0, 0, opt.Width, opt.Height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), c.img, c.img.Bounds(), draw.Src, nil)
	return dst
}

// Encode writes img in format: "png", "webp" or "tga".
func Encode(w io.Writer, format string, img image.Image) error {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "png":
		return png.Encode(w, img)
	case "webp":
		return nativewebp.Encode(w, img, nil)
	case "tga":
		return tga.Encode(w, img)
	}
	return fmt.Errorf("snapshot: unknown format %q", format)
}

// Save writes img to path, choosing the format from its extension.
func Save(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, filepath.Ext(path), img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
