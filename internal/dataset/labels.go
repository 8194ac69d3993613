// Package dataset stores generated samples on disk: one directory of PNG frames plus a
// labels.yaml per sample, and a manifest.yaml indexing the whole batch.
package dataset

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ivlev/framemix/internal/transition"
)

// Version is written into every manifest.
const Version = "1.0"

// File names inside the dataset tree.
const (
	LabelsFile   = "labels.yaml"
	ManifestFile = "manifest.yaml"
	FramePattern = "%05d.png"
)

// namespace scopes sample IDs so that the same seed and index always name the same sample.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/ivlev/framemix/sample"))

// Labels describes one generated sample.
type Labels struct {
	ID      string `yaml:"id"`
	Kind    string `yaml:"kind"`
	Variant int    `yaml:"variant"`
	// FrameCount is the requested transition length (0 for a hard cut or crop split).
	FrameCount int `yaml:"frame_count"`
	// TransitionLen is the number of synthesized frames; a plateau adds hold frames.
	TransitionLen int      `yaml:"transition_len"`
	Cut           int      `yaml:"cut,omitempty"`
	Frames        int      `yaml:"frames"`
	OneHot        []int    `yaml:"one_hot,flow"`
	MultiHot      []int    `yaml:"multi_hot,flow"`
	Sources       []Source `yaml:"sources"`
}

// Source records where an input clip window came from.
type Source struct {
	Path    string   `yaml:"path"`
	Start   int      `yaml:"start"`
	Augment []string `yaml:"augment,omitempty"`
}

// Manifest indexes a generated batch.
type Manifest struct {
	Version string  `yaml:"version"`
	Seed    int64   `yaml:"seed"`
	Samples []Entry `yaml:"samples"`
}

// Entry is one manifest line.
type Entry struct {
	ID     string `yaml:"id"`
	Dir    string `yaml:"dir"`
	Kind   string `yaml:"kind"`
	Frames int    `yaml:"frames"`
}

// SampleID derives the ID of sample index of a batch generated with seed.
func SampleID(seed int64, index int) string {
	return uuid.NewSHA1(namespace, []byte(fmt.Sprintf("%d/%d", seed, index))).String()
}

// NewLabels converts a transition result into its on-disk labels.
func NewLabels(id string, res *transition.Result, sources []Source) *Labels {
	return &Labels{
		ID:            id,
		Kind:          res.Spec.Kind.String(),
		Variant:       res.Spec.Variant,
		FrameCount:    res.Spec.FrameCount,
		TransitionLen: res.TransitionLen,
		Cut:           res.Cut,
		Frames:        len(res.Frames),
		OneHot:        widen(res.OneHot),
		MultiHot:      widen(res.MultiHot),
		Sources:       sources,
	}
}

func widen(v []uint8) []int {
	out := make([]int, len(v))
	for i, x := range v {
		out[i] = int(x)
	}
	return out
}
