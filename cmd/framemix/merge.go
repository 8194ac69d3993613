package main

import (
	"context"
	"fmt"
	"math/rand"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ivlev/framemix/internal/config"
	"github.com/ivlev/framemix/internal/dataset"
	"github.com/ivlev/framemix/internal/engine"
	"github.com/ivlev/framemix/internal/frames"
	"github.com/ivlev/framemix/internal/source"
	"github.com/ivlev/framemix/internal/transition"
	"github.com/ivlev/framemix/internal/video"
)

// sampleOpts are shared by the single-sample commands.
type sampleOpts struct {
	output  string
	seed    int64
	length  int
	preview bool
}

func (o *sampleOpts) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&o.output, "output", "o", "sample", "output directory")
	f.Int64Var(&o.seed, "seed", 1, "random seed")
	f.IntVarP(&o.length, "length", "l", 0, "frames taken from each clip (0 = config clip_length)")
	f.BoolVar(&o.preview, "preview", false, "render an mp4 preview")
}

var mergeOpts struct {
	sampleOpts
	kind           string
	frames         transition.Choice
	variant        transition.Choice
	startA, startB int
}

var mergeCmd = &cobra.Command{
	Use:   "merge <clip-a> <clip-b>",
	Short: "Composite two clips with one transition",
	Long: "Composite the windows of two clips. --kind random draws the kind from the configured\n" +
		"probabilities; a named kind (none, gradual, push, wipe) uses --frames and --variant.",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())
		o := &mergeOpts
		rng := rand.New(rand.NewSource(o.seed))

		a, err := loadWindow(cmd.Context(), cfg, args[0], o.startA, o.length)
		if err != nil {
			return err
		}
		b, err := loadWindow(cmd.Context(), cfg, args[1], o.startB, o.length)
		if err != nil {
			return err
		}

		kernel := transition.NewKernel(rng, transition.WithWorkers(cfg.Workers))
		var res *transition.Result
		if o.kind == "random" {
			s := cfg.Sampler()
			s.FrameCount = choiceOr(o.frames, s.FrameCount)
			res, err = s.Generate(kernel, a, b)
		} else {
			res, err = mergeKind(kernel, rng, a, b)
		}
		if err != nil {
			return err
		}

		sources := []dataset.Source{{Path: args[0], Start: o.startA}, {Path: args[1], Start: o.startB}}
		if res.Spec.Kind == transition.CropSplit {
			sources = sources[:1]
		}
		return writeResult(cmd.Context(), cfg, &o.sampleOpts, res, sources)
	},
}

func mergeKind(kernel *transition.Kernel, rng transition.Rand, a, b frames.Sequence) (*transition.Result, error) {
	kind, err := transition.ParseKind(mergeOpts.kind)
	if err != nil {
		return nil, err
	}
	if kind == transition.CropSplit {
		return nil, fmt.Errorf("%w: use the cropsplit command", transition.ErrInvalidArgument)
	}
	spec, err := transition.Request{Kind: kind, FrameCount: mergeOpts.frames, Variant: mergeOpts.variant}.Resolve(rng)
	if err != nil {
		return nil, err
	}
	if _, fixed := mergeOpts.frames.Value(); !fixed && kind != transition.None {
		spec.FrameCount = min(spec.FrameCount, len(a), len(b))
	}
	return kernel.Merge(a, b, spec)
}

func choiceOr(c, fallback transition.Choice) transition.Choice {
	if _, fixed := c.Value(); fixed {
		return c
	}
	return fallback
}

var cropSplitOpts struct {
	sampleOpts
	location transition.Choice
	ratio    float64
	start    int
}

var cropSplitCmd = &cobra.Command{
	Use:   "cropsplit <clip>",
	Short: "Simulate a cut inside one clip by switching to a zoomed crop",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())
		o := &cropSplitOpts

		seq, err := loadWindow(cmd.Context(), cfg, args[0], o.start, o.length)
		if err != nil {
			return err
		}
		ratio := cfg.Crop.Ratio
		if cmd.Flags().Changed("ratio") {
			ratio = o.ratio
		}

		kernel := transition.NewKernel(rand.New(rand.NewSource(o.seed)), transition.WithWorkers(cfg.Workers))
		res, err := kernel.CropSplit(seq, choiceOr(o.location, cfg.Crop.Location), ratio)
		if err != nil {
			return err
		}
		return writeResult(cmd.Context(), cfg, &o.sampleOpts, res, []dataset.Source{{Path: args[0], Start: o.start}})
	},
}

func init() {
	mergeOpts.register(mergeCmd)
	f := mergeCmd.Flags()
	f.StringVarP(&mergeOpts.kind, "kind", "k", "random", "none, gradual, push, wipe or random")
	f.Var(&mergeOpts.frames, "frames", "transition frames (integer or random)")
	f.Var(&mergeOpts.variant, "variant", "variant code (integer or random)")
	f.IntVar(&mergeOpts.startA, "start-a", 0, "first frame taken from clip a")
	f.IntVar(&mergeOpts.startB, "start-b", 0, "first frame taken from clip b")

	cropSplitOpts.register(cropSplitCmd)
	f = cropSplitCmd.Flags()
	f.Var(&cropSplitOpts.location, "location", "crop location 0-8 (integer or random)")
	f.Float64Var(&cropSplitOpts.ratio, "ratio", transition.DefaultCropRatio, "fraction of each side kept")
	f.IntVar(&cropSplitOpts.start, "start", 0, "first frame taken from the clip")
}

// loadWindow decodes length frames of path from start, at the configured frame size.
func loadWindow(ctx context.Context, cfg *config.Config, path string, start, length int) (frames.Sequence, error) {
	if length <= 0 {
		length = cfg.ClipLength
	}
	src, err := source.Open(path, source.WithDPI(cfg.PDFDPI))
	if err != nil {
		return nil, err
	}
	defer src.Close()

	if n := src.FrameCount(); start+length > n {
		length = n - start
	}
	return source.Load(ctx, src, start, length, cfg.Width, cfg.Height)
}

func writeResult(ctx context.Context, cfg *config.Config, o *sampleOpts, res *transition.Result, sources []dataset.Source) error {
	w, err := dataset.NewWriter(filepath.Dir(filepath.Clean(o.output)))
	if err != nil {
		return err
	}
	id := filepath.Base(filepath.Clean(o.output))
	labels, err := w.WriteSample(id, res, sources)
	if err != nil {
		return err
	}

	if o.preview {
		enc := &video.FFmpegEncoder{}
		path := filepath.Join(w.SampleDir(id), engine.PreviewFile)
		if err := enc.EncodeSequence(ctx, res.Frames, path, cfg.Preview.FPS, cfg.Preview.Encoder); err != nil {
			return err
		}
	}

	log.Info().
		Str("dir", w.SampleDir(id)).
		Str("kind", labels.Kind).
		Int("variant", labels.Variant).
		Int("frames", labels.Frames).
		Int("transition_len", labels.TransitionLen).
		Msg("sample written")
	return nil
}
