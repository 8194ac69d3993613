package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ivlev/framemix/internal/config"
	"github.com/ivlev/framemix/internal/dataset"
	"github.com/ivlev/framemix/internal/engine"
	"github.com/ivlev/framemix/internal/source"
	"github.com/ivlev/framemix/internal/video"
)

var generateOpts struct {
	output  string
	samples int
	seed    int64
	workers int
	preview bool
}

var generateCmd = &cobra.Command{
	Use:   "generate [inputs...]",
	Short: "Generate a labelled transition dataset",
	Long: "Generate samples from clips found under the given inputs (or the config's inputs).\n" +
		"An input is a directory of frames, a PDF, a directory tree of those, or synthetic:<label>[:<frames>].",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())
		applyGenerateFlags(cmd, cfg)
		if len(args) > 0 {
			cfg.Inputs = args
		}

		var clips []string
		for _, in := range cfg.Inputs {
			found, err := source.Discover(in)
			if err != nil {
				return err
			}
			clips = append(clips, found...)
		}

		w, err := dataset.NewWriter(cfg.OutputDir)
		if err != nil {
			return err
		}

		var enc video.SequenceEncoder
		if cfg.Preview.Enabled {
			enc = &video.FFmpegEncoder{}
		}

		m, err := engine.NewGenerator(cfg, clips, w, enc).Run(cmd.Context())
		if err != nil {
			return err
		}
		log.Info().Int("samples", len(m.Samples)).Str("output", cfg.OutputDir).Msg("dataset ready")
		return nil
	},
}

func applyGenerateFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.OutputDir = generateOpts.output
	}
	if flags.Changed("samples") {
		cfg.Samples = generateOpts.samples
	}
	if flags.Changed("seed") {
		cfg.Seed = generateOpts.seed
	}
	if flags.Changed("workers") {
		cfg.Workers = generateOpts.workers
	}
	if flags.Changed("preview") {
		cfg.Preview.Enabled = generateOpts.preview
	}
}

func init() {
	f := generateCmd.Flags()
	f.StringVarP(&generateOpts.output, "output", "o", "", "output directory")
	f.IntVarP(&generateOpts.samples, "samples", "n", 0, "number of samples")
	f.Int64Var(&generateOpts.seed, "seed", 0, "random seed")
	f.IntVarP(&generateOpts.workers, "workers", "w", 0, "parallel samples (0 = physical cores)")
	f.BoolVar(&generateOpts.preview, "preview", false, "render an mp4 preview per sample")
}
