// Package config loads gravsim settings and scenarios with viper.
//
// Every key has a default, and GRAVSIM_* environment variables override file
// values (GRAVSIM_NEW_MASS, GRAVSIM_VIEW_SCALE, GRAVSIM_LOG_LEVEL, ...).
package config

import (
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/quillaja/gravsim/internal/placement"
	"github.com/spf13/viper"
)

// ErrInvalid is the cause of every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the full gravsim configuration.
type Config struct {
	NewMass       float64 `mapstructure:"new_mass"` // Yg, for the next placed mass
	CircularOrbit bool    `mapstructure:"circular_orbit"`
	View          View    `mapstructure:"view"`
	Run           Run     `mapstructure:"run"`
	Record        Record  `mapstructure:"record"`
	Log           Log     `mapstructure:"log"`
	Events        []Event `mapstructure:"events"`
}

// View sets the window and the world scale.
type View struct {
	Scale  float64 `mapstructure:"scale"` // km per pixel
	Width  int     `mapstructure:"width"`
	Height int     `mapstructure:"height"`
}

// Run controls headless runs.
type Run struct {
	FPS    float64 `mapstructure:"fps"`
	Frames int     `mapstructure:"frames"`
}

// Record selects trajectory and image output.
type Record struct {
	Driver string `mapstructure:"driver"` // sqlite3 or postgres
	DSN    string `mapstructure:"dsn"`
	PNGDir string `mapstructure:"png_dir"`
	// compressed frame chunks
	ChunkDir    string `mapstructure:"chunk_dir"`
	ChunkFrames int    `mapstructure:"chunk_frames"`
}

// Log sets the log level.
type Log struct {
	Level string `mapstructure:"level"`
}

// Event is one scripted input of a scenario. Settings are applied before
// the click; a clear event clears and does not click.
type Event struct {
	Frame         int      `mapstructure:"frame"`
	X             float64  `mapstructure:"x"` // km
	Y             float64  `mapstructure:"y"` // km
	Button        string   `mapstructure:"button"`
	Clicks        int      `mapstructure:"clicks"`
	NewMass       *float64 `mapstructure:"new_mass"`
	CircularOrbit *bool    `mapstructure:"circular_orbit"`
	Clear         bool     `mapstructure:"clear"`
}

// ButtonValue parses the event's button name.
func (e Event) ButtonValue() (placement.Button, error) {
	return placement.ParseButton(e.Button)
}

// ClickCount is the event's click count, at least 1.
func (e Event) ClickCount() int {
	if e.Clicks < 1 {
		return 1
	}
	return e.Clicks
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("new_mass", 100.0)
	v.SetDefault("circular_orbit", false)
	v.SetDefault("view.scale", 1.0)
	v.SetDefault("view.width", 1280)
	v.SetDefault("view.height", 720)
	v.SetDefault("run.fps", 60.0)
	v.SetDefault("run.frames", 600)
	v.SetDefault("record.driver", "sqlite3")
	v.SetDefault("record.dsn", "")
	v.SetDefault("record.png_dir", "")
	v.SetDefault("record.chunk_dir", "")
	v.SetDefault("record.chunk_frames", 100)
	v.SetDefault("log.level", "info")
}

// Default is the configuration with no file and no environment.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var c Config
	_ = v.Unmarshal(&c)
	return c
}

// Load reads the configuration at path. A directory is searched for a file
// named gravsim.{toml,yaml,json}; an empty path uses defaults and the
// environment only.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("GRAVSIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			v.SetConfigName("gravsim")
			v.AddConfigPath(path)
		} else {
			v.SetConfigFile(path)
		}
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "reading config %s", path)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "decoding config")
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	sort.SliceStable(c.Events, func(i, j int) bool { return c.Events[i].Frame < c.Events[j].Frame })
	return c, nil
}

// Validate checks ranges and event fields.
func (c Config) Validate() error {
	switch {
	case c.NewMass <= 0:
		return errors.Wrapf(ErrInvalid, "new_mass must be positive, got %g", c.NewMass)
	case c.View.Scale <= 0:
		return errors.Wrapf(ErrInvalid, "view.scale must be positive, got %g", c.View.Scale)
	case c.View.Width <= 0 || c.View.Height <= 0:
		return errors.Wrapf(ErrInvalid, "view size %dx%d", c.View.Width, c.View.Height)
	case c.Run.FPS < 0:
		return errors.Wrapf(ErrInvalid, "run.fps must not be negative, got %g", c.Run.FPS)
	case c.Run.Frames < 0:
		return errors.Wrapf(ErrInvalid, "run.frames must not be negative, got %d", c.Run.Frames)
	case c.Record.ChunkFrames <= 0:
		return errors.Wrapf(ErrInvalid, "record.chunk_frames must be positive, got %d", c.Record.ChunkFrames)
	}
	switch c.Record.Driver {
	case "sqlite3", "postgres":
	default:
		return errors.Wrapf(ErrInvalid, "record.driver %q", c.Record.Driver)
	}
	for i, e := range c.Events {
		if e.Frame < 0 {
			return errors.Wrapf(ErrInvalid, "event %d: negative frame", i)
		}
		if _, err := e.ButtonValue(); err != nil {
			return errors.Wrapf(ErrInvalid, "event %d: %v", i, err)
		}
		if e.NewMass != nil && *e.NewMass <= 0 {
			return errors.Wrapf(ErrInvalid, "event %d: new_mass must be positive", i)
		}
	}
	return nil
}
