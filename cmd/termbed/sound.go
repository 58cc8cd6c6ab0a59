package main

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/warrenfalk/rope/testbed"
)

const sampleRate = beep.SampleRate(44100)

// cue is a short tone.
type cue struct {
	freq     float64
	duration time.Duration
}

var (
	cueHit  = cue{880, 60 * time.Millisecond}
	cueMiss = cue{220, 150 * time.Millisecond}
	cueCut  = cue{440, 40 * time.Millisecond}
)

// cueFor picks the tone for a build or teardown.
func cueFor(ev testbed.Event) cue {
	switch {
	case ev.Kind == testbed.EventDestroyed:
		return cueCut
	case ev.Probe != nil && !ev.Probe.Hit:
		return cueMiss
	}
	return cueHit
}

type sounds struct {
	enabled bool
}

func initSounds() (*sounds, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return &sounds{}, err
	}
	return &sounds{enabled: true}, nil
}

func (s *sounds) play(c cue) {
	if !s.enabled {
		return
	}
	sine, err := generators.SineTone(sampleRate, c.freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(c.duration), sine))
}

func (s *sounds) close() {
	if s.enabled {
		speaker.Close()
	}
}
