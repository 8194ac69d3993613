// Package source decodes input clips into frame sequences.
package source

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/nfnt/resize"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/framemix/internal/frames"
	"github.com/ivlev/framemix/internal/system"
)

// Source is a random-access clip.
type Source interface {
	FrameCount() int
	FrameDimensions(index int) (width, height int, err error)
	RenderFrame(index int) (image.Image, error)
	Close() error
}

// SyntheticScheme prefixes Open paths that describe a generated clip:
// "synthetic:<label>[:<frames>]".
const SyntheticScheme = "synthetic:"

// DefaultSyntheticFrames is the length of a synthetic clip opened without a frame count.
const DefaultSyntheticFrames = 100

// Options tune how Open decodes a clip.
type Options struct {
	// DPI is the rasterization resolution for PDF pages.
	DPI float64
	// SyntheticSize is the frame side of synthetic clips.
	SyntheticSize int
}

// Option sets a field of Options.
type Option func(*Options)

// WithDPI sets the PDF rasterization resolution. Values below 1 keep DefaultDPI.
func WithDPI(dpi float64) Option {
	return func(o *Options) {
		if dpi >= 1 {
			o.DPI = dpi
		}
	}
}

// Open picks a Source implementation for path: a synthetic clip, a PDF document, or a
// directory (or single file) of still frames.
func Open(path string, opts ...Option) (Source, error) {
	o := Options{DPI: DefaultDPI, SyntheticSize: 256}
	for _, opt := range opts {
		opt(&o)
	}

	if rest, ok := strings.CutPrefix(path, SyntheticScheme); ok {
		label, count := rest, DefaultSyntheticFrames
		if i := strings.LastIndexByte(rest, ':'); i >= 0 {
			n, err := strconv.Atoi(rest[i+1:])
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("synthetic clip %q: bad frame count", path)
			}
			label, count = rest[:i], n
		}
		return NewSyntheticSource(label, count, o.SyntheticSize, o.SyntheticSize), nil
	}

	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return NewFitzPDFSource(path, o.DPI)
	}
	return NewImageSource(path)
}

// Discover lists the clips under root. A PDF or image file is a clip; so is a directory
// holding image files directly. Directories are searched recursively and the result is
// sorted.
func Discover(root string) ([]string, error) {
	if strings.HasPrefix(root, SyntheticScheme) {
		return []string{root}, nil
	}
	fi, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return []string{root}, nil
	}

	var clips []string
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			if strings.EqualFold(filepath.Ext(path), ".pdf") {
				clips = append(clips, path)
			}
			return nil
		}
		imgs, err := listImages(path)
		if err != nil {
			return err
		}
		if len(imgs) > 0 {
			clips = append(clips, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(clips)
	return clips, nil
}

// Load decodes count frames starting at start and scales each to width x height.
// Frames are decoded on up to system.DefaultWorkers goroutines.
func Load(ctx context.Context, src Source, start, count, width, height int) (frames.Sequence, error) {
	if start < 0 || count <= 0 || start+count > src.FrameCount() {
		return nil, fmt.Errorf("frame window [%d,%d) outside clip of %d frames", start, start+count, src.FrameCount())
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("target size %dx%d must be positive", width, height)
	}

	seq := make(frames.Sequence, count)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(system.DefaultWorkers())
	for i := 0; i < count; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := src.RenderFrame(start + i)
			if err != nil {
				return fmt.Errorf("frame %d: %w", start+i, err)
			}
			if b := img.Bounds(); b.Dx() != width || b.Dy() != height {
				img = resize.Resize(uint(width), uint(height), img, resize.Bilinear)
			}
			seq[i] = frames.FromImage(img)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return seq, nil
}
