// gravterm runs the simulator in a terminal. Mouse clicks place and throw
// masses the same way as the windowed frontend.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-kit/kit/log/level"
	"github.com/quillaja/gravsim/internal/config"
	"github.com/quillaja/gravsim/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "config file or directory containing gravsim.toml")
	logPath := flag.String("log", "", "write logs to this file (the terminal is busy)")
	mute := flag.Bool("mute", false, "no sound")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logOut := os.Stderr
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	} else {
		// stderr would scribble over the screen
		cfg.Log.Level = "none"
	}
	logger := logging.New(logOut, cfg.Log.Level)

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()
	screen.Clear()

	t := newTerm(screen, cfg, logger)
	if !*mute {
		if err := t.sound.start(); err != nil {
			// non-fatal, runs silent
			level.Warn(logger).Log("msg", "audio init failed", "err", err)
		}
	}
	defer t.cleanup()

	t.run(time.Second / frameRate)
}
