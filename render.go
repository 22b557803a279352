package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"sync"

	kitlog "github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/pkg/errors"
	"github.com/quillaja/gravsim/internal/input"
	"github.com/quillaja/gravsim/internal/sim"
	"github.com/quillaja/gravsim/internal/vec"
)

/*

image output section

*/

const (
	massRadius = 5  // px
	margin     = 64 // px drawn around the film
)

var (
	background = color.RGBA{25, 25, 25, 255}
	red        = color.RGBA{255, 0, 0, 255}
	blue       = color.RGBA{0, 0, 255, 255}
)

type filmSize struct {
	width, height int
}

// writes a png per frame from ch into dir.
func frameToImages(dir string, view input.Viewport, size filmSize, wg *sync.WaitGroup, ch chan *frameJob, logger kitlog.Logger) {
	defer wg.Done()
	for job := range ch {
		film := renderFrame(view, size, sim.FeedOf(job.Masses))
		name := filepath.Join(dir, fmt.Sprintf("%010d.png", job.Frame))
		if err := savePNG(name, film); err != nil {
			level.Error(logger).Log("msg", "writing image", "frame", job.Frame, "err", err)
		}
	}
}

// draws the render feed: acceleration (red) and velocity (blue) vectors for
// active masses, then every mass as a disc in its tag colour.
func renderFrame(view input.Viewport, size filmSize, sprites []sim.Sprite) *image.RGBA {
	film := image.NewRGBA(image.Rect(0, 0, size.width, size.height))
	draw.Draw(film, film.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	for _, s := range sprites {
		x, y := view.Screen(s.Position)
		if !onFilm(size, x, y) {
			continue
		}
		if !s.Pending {
			plotvector(film, red, view, x, y, s.Acceleration)
			plotvector(film, blue, view, x, y, s.Velocity)
		}
		plotcirclefilled(film, s.Tag.Color(), round(x), round(y), massRadius)
	}
	return film
}

// is (x,y) finite and within margin of the film?
func onFilm(size filmSize, x, y float64) bool {
	return x >= -margin && x <= float64(size.width+margin) &&
		y >= -margin && y <= float64(size.height+margin)
}

func savePNG(name string, img image.Image) error {
	file, err := os.Create(name)
	if err != nil {
		return errors.Wrap(err, "creating image")
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return errors.Wrapf(err, "encoding %s", name)
	}
	return errors.Wrap(file.Close(), "closing image")
}

// plotvector draws d (in world units) from screen point (x,y) with a two
// stroke arrow head. non-finite vectors are skipped.
func plotvector(img draw.Image, c color.Color, view input.Viewport, x, y float64, d vec.Vec2) {
	const (
		tipSize  = 10.0
		tipAngle = math.Pi / 8
	)
	dx, dy := view.Length(d)
	if math.IsNaN(dx+dy) || math.IsInf(dx+dy, 0) || (dx == 0 && dy == 0) {
		return
	}
	// keep lines on a sane canvas
	if math.Hypot(dx, dy) > 1e4 {
		s := 1e4 / math.Hypot(dx, dy)
		dx, dy = dx*s, dy*s
	}
	ex, ey := x+dx, y+dy
	plotline(img, c, round(x), round(y), round(ex), round(ey))

	back := math.Atan2(-dy, -dx)
	for _, a := range []float64{back + tipAngle, back - tipAngle} {
		plotline(img, c, round(ex), round(ey), round(ex+tipSize*math.Cos(a)), round(ey+tipSize*math.Sin(a)))
	}
}

func round(x float64) int {
	return int(math.Round(x))
}

// plotline sets every pixel of the segment (x0,y0)-(x1,y1), endpoints
// included. integer error stepping, any slope.
func plotline(img draw.Image, c color.Color, x0, y0, x1, y1 int) {
	stepX, stepY := sign(x1-x0), sign(y1-y0)
	runX, runY := stepX*(x1-x0), stepY*(y1-y0)

	x, y := x0, y0
	slack := runX - runY
	for {
		img.Set(x, y, c)
		if x == x1 && y == y1 {
			return
		}
		twice := 2 * slack
		if twice >= -runY {
			slack -= runY
			x += stepX
		}
		if twice <= runX {
			slack += runX
			y += stepY
		}
	}
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}

// plotcirclefilled fills a disc of radius r centred on (cx,cy), one
// horizontal span per row.
func plotcirclefilled(img draw.Image, c color.Color, cx, cy, r int) {
	for dy := -r; dy <= r; dy++ {
		half := int(math.Sqrt(float64(r*r - dy*dy)))
		for x := cx - half; x <= cx+half; x++ {
			img.Set(x, cy+dy, c)
		}
	}
}
