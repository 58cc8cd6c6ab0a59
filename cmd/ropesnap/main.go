// Command ropesnap runs a scene without a window and writes a picture of it.
// The output format follows the file extension: .png, .webp or .tga.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/warrenfalk/rope"
	"github.com/warrenfalk/rope/testbed"
	"github.com/warrenfalk/rope/testbed/snapshot"
)

func main() {
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	flags := testbed.RegisterFlags(fs)
	out := fs.String("o", "", "output file (overrides the settings file)")
	steps := fs.Int("steps", -1, "steps to simulate before the picture")
	fire := fs.Bool("fire", true, "toggle the scene's rope before stepping")
	fs.Parse(os.Args[1:])

	settings, err := testbed.LoadFlags(flags)
	if err != nil {
		log.Fatalf("settings: %v", err)
	}
	if *out != "" {
		settings.Snapshot.Output = *out
	}
	if *steps >= 0 {
		settings.Snapshot.Steps = *steps
	}

	driver, err := testbed.NewDriver(settings, log.Default())
	if err != nil {
		log.Fatalf("start: %v", err)
	}
	if *fire {
		if err := driver.Input(testbed.CommandToggle); err != nil {
			log.Fatalf("toggle: %v", err)
		}
	}
	for i := 0; i < settings.Snapshot.Steps; i++ {
		driver.Step()
	}

	img := snapshot.Render(driver.Engine(), snapshot.Options{
		Width:       settings.Snapshot.Width,
		Height:      settings.Snapshot.Height,
		Scale:       settings.Snapshot.Scale,
		Supersample: settings.Snapshot.Supersample,
		Center:      rope.MakeVec2(0, 8),
	})
	if err := snapshot.Save(settings.Snapshot.Output, img); err != nil {
		log.Fatalf("save: %v", err)
	}
	log.Printf("wrote %s after %d steps (%d bodies, %d joints)", settings.Snapshot.Output,
		driver.StepCount(), driver.Engine().BodyCount(), driver.Engine().JointCount())
}
