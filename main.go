// runs a scripted gravity scenario without a window, recording trajectories
// and frame images.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sync"
	"time"

	kitlog "github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/quillaja/gravsim/internal/body"
	"github.com/quillaja/gravsim/internal/config"
	"github.com/quillaja/gravsim/internal/input"
	"github.com/quillaja/gravsim/internal/inspect"
	"github.com/quillaja/gravsim/internal/logging"
	"github.com/quillaja/gravsim/internal/placement"
	"github.com/quillaja/gravsim/internal/sim"
	"github.com/quillaja/gravsim/internal/vec"
)

// a snapshot of every mass after a frame.
type frameJob struct {
	Frame  int
	Masses []body.Mass
}

func main() {
	configPath := flag.String("config", "", "scenario file or directory containing gravsim.toml")
	frames := flag.Int("frames", -1, "number of frames to run (default from run.frames)")
	fps := flag.Float64("fps", -1, "frame rate used to derive the timestep (default from run.fps)")
	dsn := flag.String("db", "", "record trajectories to this database (default from record.dsn)")
	pngDir := flag.String("png", "", "write a png per frame into this directory (default from record.png_dir)")
	chunkDir := flag.String("chunks", "", "write compressed frame chunks into this directory (default from record.chunk_dir)")
	workers := flag.Int("workers", 2, "image output workers")
	quiet := flag.Bool("q", false, "do not print progress")
	seedN := flag.Int("seed", 0, "start with a resting core and this many masses orbiting it")
	seedRadius := flag.Float64("seedr", 300, "radius of the seeded disk, km")
	seedCore := flag.Float64("seedcore", 1000, "mass of the seeded core, Yg")
	seedRand := flag.Int64("rand", 1, "random source seed for -seed")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *frames >= 0 {
		cfg.Run.Frames = *frames
	}
	if *fps >= 0 {
		cfg.Run.FPS = *fps
	}
	if *dsn != "" {
		cfg.Record.DSN = *dsn
	}
	if *pngDir != "" {
		cfg.Record.PNGDir = *pngDir
	}
	if *chunkDir != "" {
		cfg.Record.ChunkDir = *chunkDir
	}

	logger := logging.New(os.Stderr, cfg.Log.Level)
	s := sim.New(sim.NewControls(cfg.NewMass, cfg.CircularOrbit), logging.Component(logger, "sim"))

	// setup output workers
	var sinks []chan *frameJob
	wg := sync.WaitGroup{}
	if cfg.Record.DSN != "" {
		db, err := opendb(cfg.Record.Driver, cfg.Record.DSN)
		if err != nil {
			level.Error(logger).Log("msg", "opening database", "err", err)
			os.Exit(1)
		}
		defer db.Close()
		ch := make(chan *frameJob, 32)
		sinks = append(sinks, ch)
		// one writer; sqlite allows only one at a time anyway
		wg.Add(1)
		go frameToDatabase(db, cfg.Record.Driver, &wg, ch, logging.Component(logger, "record"))
	}
	if cfg.Record.PNGDir != "" {
		if err := os.MkdirAll(cfg.Record.PNGDir, 0755); err != nil {
			level.Error(logger).Log("msg", "creating image directory", "err", err)
			os.Exit(1)
		}
		ch := make(chan *frameJob, 32)
		sinks = append(sinks, ch)
		view := input.NewViewport(cfg.View.Scale, float64(cfg.View.Height))
		film := filmSize{cfg.View.Width, cfg.View.Height}
		wg.Add(*workers)
		for i := 0; i < *workers; i++ {
			go frameToImages(cfg.Record.PNGDir, view, film, &wg, ch, logging.Component(logger, "render"))
		}
	}
	if cfg.Record.ChunkDir != "" {
		if err := os.MkdirAll(cfg.Record.ChunkDir, 0755); err != nil {
			level.Error(logger).Log("msg", "creating chunk directory", "err", err)
			os.Exit(1)
		}
		ch := make(chan *frameJob, 32)
		sinks = append(sinks, ch)
		wg.Add(1)
		go frameToChunks(cfg.Record.ChunkDir, cfg.Record.ChunkFrames, &wg, ch, logging.Component(logger, "chunks"))
	}

	if *seedN > 0 {
		center := vec.New(
			float64(cfg.View.Width)/2*cfg.View.Scale,
			float64(cfg.View.Height)/2*cfg.View.Scale)
		rng := rand.New(rand.NewSource(*seedRand))
		if err := seedSystem(s, center, *seedN, *seedRadius, *seedCore, rng); err != nil {
			level.Error(logger).Log("msg", "seeding", "err", err)
			os.Exit(1)
		}
	}

	// print parameters
	level.Info(logger).Log(
		"msg", "starting",
		"frames", cfg.Run.Frames,
		"fps", cfg.Run.FPS,
		"dt", sim.Timestep(cfg.Run.FPS),
		"events", len(cfg.Events),
		"seeded", s.Len(),
		"db", cfg.Record.DSN != "",
		"png", cfg.Record.PNGDir,
		"chunks", cfg.Record.ChunkDir)

	queue := newEventQueue(cfg.Events)
	start := time.Now()
	for frame := 0; frame < cfg.Run.Frames; frame++ {
		if ev, ok := queue.next(frame); ok {
			apply(s, ev, logger)
		}
		s.Advance(cfg.Run.FPS)

		if len(sinks) > 0 {
			job := &frameJob{
				Frame:  frame,
				Masses: append([]body.Mass(nil), s.Masses()...),
			}
			for _, ch := range sinks {
				ch <- job
			}
		}

		// progress
		if !*quiet {
			avgTimePerFrame := time.Since(start) / time.Duration(frame+1)
			estTimeLeft := avgTimePerFrame * time.Duration(cfg.Run.Frames-frame-1)
			fmt.Printf("%.1f%%, %d masses, %s/frame, %s remaining, %s elapsed                    \r",
				100*float64(frame+1)/float64(cfg.Run.Frames),
				s.Len(),
				avgTimePerFrame.Truncate(time.Microsecond),
				estTimeLeft.Truncate(time.Second),
				time.Since(start).Truncate(time.Second),
			)
		}
	}
	for _, ch := range sinks {
		close(ch)
	}
	wg.Wait()

	if queue.pending() > 0 {
		level.Warn(logger).Log("msg", "scenario ended with undelivered events", "events", queue.pending())
	}

	tot := inspect.Measure(s.Masses())
	if !*quiet {
		fmt.Printf("\nDone. Took %s, simulated %.2f s\n", time.Since(start).Truncate(time.Millisecond), s.Elapsed())
		for _, row := range inspect.Rows(s.Masses()) {
			for _, line := range row.Lines() {
				fmt.Println(line)
			}
		}
	}
	level.Info(logger).Log(
		"msg", "done",
		"masses", tot.Count,
		"active", tot.Active,
		"energy", tot.Energy(),
		"px", tot.Momentum[0],
		"py", tot.Momentum[1])
}

// applies settings from ev, then clears or clicks.
func apply(s *sim.Simulator, ev config.Event, logger kitlog.Logger) {
	if ev.NewMass != nil {
		s.Controls().SetNewMassValue(*ev.NewMass)
	}
	if ev.CircularOrbit != nil {
		s.Controls().SetCircularOrbit(*ev.CircularOrbit)
	}
	if ev.Clear {
		s.ClearAll()
		return
	}
	button, _ := ev.ButtonValue() // validated on load
	if _, err := s.Click(placement.Click{Pos: vec.New(ev.X, ev.Y), Button: button, Count: ev.ClickCount()}); err != nil {
		level.Warn(logger).Log("msg", "scenario click failed", "frame", ev.Frame, "err", err)
	}
}

// scenario events in frame order. at most one event is released per frame,
// so events due on the same frame spill into the following frames.
type eventQueue struct {
	events []config.Event
}

func newEventQueue(events []config.Event) *eventQueue {
	return &eventQueue{events: events}
}

func (q *eventQueue) next(frame int) (config.Event, bool) {
	if len(q.events) == 0 || q.events[0].Frame > frame {
		return config.Event{}, false
	}
	ev := q.events[0]
	q.events = q.events[1:]
	return ev, true
}

func (q *eventQueue) pending() int {
	return len(q.events)
}
