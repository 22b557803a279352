// gravsim is the windowed frontend: click to place masses, click again to
// throw them.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"

	"github.com/go-kit/kit/log/level"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quillaja/gravsim/internal/config"
	"github.com/quillaja/gravsim/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "config file or directory containing gravsim.toml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := logging.New(os.Stderr, cfg.Log.Level)

	game := newGame(cfg, logger)
	ebiten.SetWindowSize(cfg.View.Width, cfg.View.Height)
	ebiten.SetWindowTitle("Gravity Simulator")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	level.Info(logger).Log("msg", "window", "width", cfg.View.Width, "height", cfg.View.Height, "scale", cfg.View.Scale)
	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		level.Error(logger).Log("msg", "run", "err", err)
		os.Exit(1)
	}
}

var (
	background = color.RGBA{25, 25, 25, 255}
	velocityC  = color.RGBA{0, 0, 255, 255}
	accelC     = color.RGBA{255, 0, 0, 255}
	panelBG    = color.RGBA{8, 8, 16, 200}
	textC      = color.RGBA{230, 230, 230, 255}
)
