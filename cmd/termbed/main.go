// Command termbed runs the rope testbed in a terminal, with short tones when
// a rope is fired or cut.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/warrenfalk/rope"
	"github.com/warrenfalk/rope/testbed"
)

func main() {
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	flags := testbed.RegisterFlags(fs)
	logPath := fs.String("log", "termbed.log", "log file")
	scale := fs.Float64("scale", 2, "cells per meter")
	mute := fs.Bool("mute", false, "disable sound")
	fs.Parse(os.Args[1:])

	settings, err := testbed.LoadFlags(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "settings: %v\n", err)
		os.Exit(1)
	}

	// the terminal belongs to tcell, so logging goes to a file
	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := log.New(logFile, "[termbed] ", log.LstdFlags)
	log.SetOutput(logFile)

	driver, err := testbed.NewDriver(settings, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "start: %v\n", err)
		os.Exit(1)
	}

	snd := &sounds{}
	if !*mute {
		if snd, err = initSounds(); err != nil {
			// Non-fatal, the testbed runs without sound
			logger.Printf("audio initialization failed: %v", err)
		}
	}
	defer snd.close()
	driver.Listener = func(ev testbed.Event) {
		snd.play(cueFor(ev))
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "screen: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	run(screen, driver, *scale)
}

func run(screen tcell.Screen, driver *testbed.Driver, scale float64) {
	ticker := time.NewTicker(time.Duration(float64(time.Second) / driver.Settings.Hz))
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	center := rope.MakeVec2(0, 8)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					return
				}
				if ev.Key() == tcell.KeyRune {
					// errors are logged by the driver
					driver.Input(testbed.Command(ev.Rune()))
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-ticker.C:
			driver.Step()
			draw(screen, driver, scale, center)
			screen.Show()
		}
	}
}
