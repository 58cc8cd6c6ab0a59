package snapshot_test

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ftrvxmtrx/tga"

	"github.com/warrenfalk/rope"
	"github.com/warrenfalk/rope/b2engine"
	"github.com/warrenfalk/rope/testbed/snapshot"
)

func scene(t *testing.T) rope.Engine {
	t.Helper()
	w := b2engine.New(rope.MakeVec2(0, -10))
	base, err := w.CreateBody(rope.BodyDef{Kind: rope.StaticBody})
	if err != nil {
		t.Fatal(err)
	}
	if err := w.AttachShape(base, rope.ShapeDef{Kind: rope.BoxShape, HalfExtents: rope.MakeVec2(4, 2), Filter: rope.DefaultFilter}); err != nil {
		t.Fatal(err)
	}
	_, err = rope.NewBuilder(w, rope.DefaultConfig()).Build(rope.Anchors{
		FromBody: base,
		From:     rope.MakeVec2(0, 0),
		To:       rope.MakeVec2(10, 10),
	})
	if err != nil {
		t.Fatal(err)
	}
	return w
}

var opts = snapshot.Options{Width: 160, Height: 120, Scale: 6, Supersample: 2, Center: rope.MakeVec2(4, 4)}

func TestRenderDrawsBodies(t *testing.T) {
	img := snapshot.Render(scene(t), opts)
	if img.Bounds().Dx() != 160 || img.Bounds().Dy() != 120 {
		t.Fatalf("bounds %v", img.Bounds())
	}

	// (-3, -1) is inside the base and clear of the rope
	r, g, b, _ := img.At(38, 90).RGBA()
	if !(g > r && g > b) {
		t.Fatalf("base pixel is %v", img.At(38, 90))
	}
	r, g, b, _ = img.At(2, 2).RGBA()
	br, bg, bb, _ := snapshot.Background.RGBA()
	if diff(r, br) > 0x200 || diff(g, bg) > 0x200 || diff(b, bb) > 0x200 {
		t.Fatalf("corner pixel is %v, want background", img.At(2, 2))
	}
}

func diff(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}

func TestEncodeFormats(t *testing.T) {
	img := snapshot.Render(scene(t), opts)
	// tga registers no magic, so each format is decoded by its own package
	decoders := map[string]func(io.Reader) (image.Image, error){
		"png": png.Decode,
		"tga": tga.Decode,
	}
	for format, decode := range decoders {
		var buf bytes.Buffer
		if err := snapshot.Encode(&buf, format, img); err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		decoded, err := decode(&buf)
		if err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		if decoded.Bounds() != img.Bounds() {
			t.Fatalf("%s decoded to %v", format, decoded.Bounds())
		}
		r, g, b, _ := decoded.At(38, 90).RGBA()
		if !(g > r && g > b) {
			t.Fatalf("%s: base pixel is %v", format, decoded.At(38, 90))
		}
	}

	var buf bytes.Buffer
	if err := snapshot.Encode(&buf, "webp", img); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("RIFF")) {
		t.Fatal("webp output lacks a RIFF header")
	}
	if err := snapshot.Encode(&buf, "gif", img); err == nil {
		t.Fatal("gif accepted")
	}
}

func TestSaveByExtension(t *testing.T) {
	dir := t.TempDir()
	img := snapshot.Render(scene(t), opts)
	for _, name := range []string{"out.png", "nested/out.webp", "out.TGA"} {
		path := filepath.Join(dir, name)
		if err := snapshot.Save(path, img); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
			t.Fatalf("%s not written", name)
		}
	}
}
