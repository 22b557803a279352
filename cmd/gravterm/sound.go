package main

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// blip pitches in Hz
const (
	placedTone  = 660.0
	thrownTone  = 880.0
	orbitTone   = 990.0
	refusedTone = 220.0
)

const blipLength = 50 * time.Millisecond

type sound struct {
	ready bool
}

func newSound() *sound { return &sound{} }

func (s *sound) start() error {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	s.ready = true
	return nil
}

// play is a no-op until start succeeds.
func (s *sound) play(freq float64) {
	if !s.ready {
		return
	}
	blip, err := blipStreamer(freq)
	if err != nil {
		return
	}
	speaker.Play(blip)
}

func (s *sound) close() {
	if s.ready {
		speaker.Close()
		s.ready = false
	}
}

func blipStreamer(freq float64) (beep.Streamer, error) {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return nil, err
	}
	return beep.Take(sampleRate.N(blipLength), sine), nil
}
