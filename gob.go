package main

import (
	"compress/zlib"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	kitlog "github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/pkg/errors"
	"github.com/quillaja/gravsim/internal/palette"
)

// frames by number; one chunk is one zlib compressed gob file.
type chunk map[uint32][]chunkMass

// what a viewer needs to replay a frame. gob skips zero fields, so resting
// and pending masses cost less.
type chunkMass struct {
	X, Y    float32
	Vx, Vy  float32
	Mass    float32
	Tag     palette.Tag
	Pending bool
}

// collects consecutive frames and dumps them when the chunk is full.
type chunker struct {
	dir    string
	size   int
	last   int
	frames chunk
}

func newChunker(dir string, framesPerChunk int) *chunker {
	return &chunker{
		dir:    dir,
		size:   framesPerChunk,
		frames: make(chunk, framesPerChunk),
	}
}

func (c *chunker) add(job *frameJob) error {
	masses := make([]chunkMass, len(job.Masses))
	for i, m := range job.Masses {
		masses[i] = chunkMass{
			X:       float32(m.Position[0]),
			Y:       float32(m.Position[1]),
			Vx:      float32(m.Velocity[0]),
			Vy:      float32(m.Velocity[1]),
			Mass:    float32(m.Mass),
			Tag:     m.Tag,
			Pending: m.Pending,
		}
	}
	c.frames[uint32(job.Frame)] = masses
	c.last = job.Frame
	if len(c.frames) >= c.size {
		return c.flush()
	}
	return nil
}

// flush writes the collected frames to <dir>/<last frame>.chunk.
func (c *chunker) flush() error {
	if len(c.frames) == 0 {
		return nil
	}
	frames := c.frames
	c.frames = make(chunk, c.size)

	name := filepath.Join(c.dir, fmt.Sprintf("%010d.chunk", c.last))
	file, err := os.Create(name)
	if err != nil {
		return errors.Wrap(err, "creating chunk")
	}
	defer file.Close()

	zw, err := zlib.NewWriterLevel(file, zlib.DefaultCompression)
	if err != nil {
		return errors.Wrap(err, "compressing chunk")
	}
	if err := gob.NewEncoder(zw).Encode(frames); err != nil {
		zw.Close()
		return errors.Wrapf(err, "encoding %s", name)
	}
	if err := zw.Close(); err != nil {
		return errors.Wrapf(err, "writing %s", name)
	}
	return file.Close()
}

func frameToChunks(dir string, framesPerChunk int, wg *sync.WaitGroup, ch chan *frameJob, logger kitlog.Logger) {
	defer wg.Done()
	c := newChunker(dir, framesPerChunk)
	for job := range ch {
		if err := c.add(job); err != nil {
			level.Error(logger).Log("msg", "chunk", "frame", job.Frame, "err", err)
		}
	}
	if err := c.flush(); err != nil {
		level.Error(logger).Log("msg", "last chunk", "err", err)
	}
}
