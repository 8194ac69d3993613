// Package engine drives batch dataset generation: it samples clip windows, perturbs
// them, composites a transition and writes every sample with its labels.
package engine

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"math/rand"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/framemix/internal/augment"
	"github.com/ivlev/framemix/internal/config"
	"github.com/ivlev/framemix/internal/dataset"
	"github.com/ivlev/framemix/internal/frames"
	"github.com/ivlev/framemix/internal/logging"
	"github.com/ivlev/framemix/internal/source"
	"github.com/ivlev/framemix/internal/system"
	"github.com/ivlev/framemix/internal/transition"
	"github.com/ivlev/framemix/internal/video"
)

// PreviewFile is the name of the optional mp4 rendered next to a sample's frames.
const PreviewFile = "preview.mp4"

// Generator produces Config.Samples samples from a set of clips.
type Generator struct {
	Config  *config.Config
	Clips   []string
	Writer  *dataset.Writer
	Encoder video.SequenceEncoder // nil disables previews

	log zerolog.Logger
}

func NewGenerator(cfg *config.Config, clips []string, w *dataset.Writer, enc video.SequenceEncoder) *Generator {
	return &Generator{
		Config:  cfg,
		Clips:   clips,
		Writer:  w,
		Encoder: enc,
		log:     logging.WithComponent("generator"),
	}
}

type clip struct {
	path string
	src  source.Source
}

// Run generates every sample and writes the manifest. Sample i depends only on the seed
// and i, so the output does not depend on the worker count.
func (g *Generator) Run(ctx context.Context) (*dataset.Manifest, error) {
	cfg := g.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	startTime := time.Now()

	clips, err := g.openClips()
	if err != nil {
		return nil, err
	}
	defer func() {
		for _, c := range clips {
			c.src.Close()
		}
	}()

	sampler := cfg.Sampler()
	workers := system.ResolveWorkers(cfg.Workers)
	g.log.Info().
		Int("clips", len(clips)).
		Int("samples", cfg.Samples).
		Int("workers", workers).
		Str("output", g.Writer.Root()).
		Msg("generation started")

	entries := make([]dataset.Entry, cfg.Samples)
	var done atomic.Int64

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i := 0; i < cfg.Samples; i++ {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			entry, err := g.sample(ctx, i, clips, sampler)
			if err != nil {
				return fmt.Errorf("sample %d: %w", i, err)
			}
			entries[i] = *entry
			g.log.Info().
				Str("sample", entry.ID).
				Str("kind", entry.Kind).
				Int64("done", done.Add(1)).
				Int("of", cfg.Samples).
				Msg("sample ready")
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	manifest := &dataset.Manifest{Seed: cfg.Seed, Samples: entries}
	if err := g.Writer.WriteManifest(manifest); err != nil {
		return nil, err
	}

	elapsed := time.Since(startTime)
	g.log.Info().
		Dur("elapsed", elapsed).
		Float64("samples_per_sec", float64(cfg.Samples)/elapsed.Seconds()).
		Msg("generation finished")
	return manifest, nil
}

func (g *Generator) openClips() ([]clip, error) {
	if len(g.Clips) == 0 {
		return nil, errors.New("no input clips")
	}

	var clips []clip
	for _, path := range g.Clips {
		src, err := source.Open(path, source.WithDPI(g.Config.PDFDPI))
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		if n := src.FrameCount(); n < g.Config.ClipLength {
			g.log.Warn().Str("clip", path).Int("frames", n).Msg("clip shorter than clip_length, skipped")
			src.Close()
			continue
		}
		clips = append(clips, clip{path: path, src: src})
	}
	if len(clips) == 0 {
		return nil, fmt.Errorf("no clip has at least %d frames", g.Config.ClipLength)
	}
	return clips, nil
}

// sample builds and writes sample i.
func (g *Generator) sample(ctx context.Context, i int, clips []clip, sampler *transition.Sampler) (*dataset.Entry, error) {
	cfg := g.Config
	rng := rand.New(rand.NewSource(sampleSeed(cfg.Seed, i)))

	// with a single clip it serves as both inputs
	first := clips[rng.Intn(len(clips))]
	second := clips[rng.Intn(len(clips))]

	a, srcA, err := g.window(ctx, first, rng)
	if err != nil {
		return nil, err
	}
	b, srcB, err := g.window(ctx, second, rng)
	if err != nil {
		return nil, err
	}

	kernel := transition.NewKernel(rng, transition.WithWorkers(1))
	res, err := sampler.Generate(kernel, a, b)
	if err != nil {
		return nil, err
	}

	sources := []dataset.Source{srcA, srcB}
	if res.Spec.Kind == transition.CropSplit {
		sources = sources[:1]
	}

	id := dataset.SampleID(cfg.Seed, i)
	labels, err := g.Writer.WriteSample(id, res, sources)
	if err != nil {
		return nil, err
	}
	g.log.Debug().
		Str("sample", id).
		Str("kind", labels.Kind).
		Int("variant", labels.Variant).
		Int("frames", labels.Frames).
		Int("transition_len", labels.TransitionLen).
		Msg("composited")

	if g.Encoder != nil && cfg.Preview.Enabled {
		path := filepath.Join(g.Writer.SampleDir(id), PreviewFile)
		if err := g.Encoder.EncodeSequence(ctx, res.Frames, path, cfg.Preview.FPS, cfg.Preview.Encoder); err != nil {
			return nil, fmt.Errorf("preview: %w", err)
		}
	}

	return &dataset.Entry{ID: id, Dir: id, Kind: labels.Kind, Frames: labels.Frames}, nil
}

// window loads a random clip_length window of c and applies the configured
// augmentations.
func (g *Generator) window(ctx context.Context, c clip, rng *rand.Rand) (frames.Sequence, dataset.Source, error) {
	cfg := g.Config
	start := rng.Intn(c.src.FrameCount() - cfg.ClipLength + 1)
	info := dataset.Source{Path: c.path, Start: start}

	seq, err := source.Load(ctx, c.src, start, cfg.ClipLength, cfg.Width, cfg.Height)
	if err != nil {
		return nil, info, fmt.Errorf("load %s: %w", c.path, err)
	}

	if rng.Float64() < cfg.Augment.Darken {
		if seq, err = augment.Darken(seq, augment.DefaultDarken); err != nil {
			return nil, info, err
		}
		info.Augment = append(info.Augment, "darken")
	}
	if rng.Float64() < cfg.Augment.Glare {
		if seq, err = augment.Glare(seq, transition.Random, rng); err != nil {
			return nil, info, err
		}
		info.Augment = append(info.Augment, "glare")
	}
	if rng.Float64() < cfg.Augment.Crop {
		loc := rng.Intn(frames.NumLocations)
		window, err := frames.CropWindow(loc, cfg.Crop.Ratio, cfg.Width, cfg.Height)
		if err != nil {
			return nil, info, err
		}
		if seq, err = augment.Crop(seq, window, frames.BilinearResizer{}); err != nil {
			return nil, info, err
		}
		info.Augment = append(info.Augment, fmt.Sprintf("crop:%d", loc))
	}
	if gap := cfg.Augment.ExtractGap; gap > 1 {
		if seq, err = augment.Extract(seq, gap); err != nil {
			return nil, info, err
		}
		info.Augment = append(info.Augment, fmt.Sprintf("extract:%d", gap))
	}
	return seq, info, nil
}

// sampleSeed mixes the batch seed and the sample index into an independent stream seed.
func sampleSeed(seed int64, index int) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d/%d", seed, index)
	return int64(h.Sum64())
}
