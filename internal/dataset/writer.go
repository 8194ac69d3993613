package dataset

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/ivlev/framemix/internal/frames"
	"github.com/ivlev/framemix/internal/logging"
	"github.com/ivlev/framemix/internal/transition"
)

// Writer lays samples out under a root directory. Distinct samples may be written
// concurrently.
type Writer struct {
	root string
	log  zerolog.Logger
}

// NewWriter creates root if needed.
func NewWriter(root string) (*Writer, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("create dataset dir: %w", err)
	}
	return &Writer{root: root, log: logging.WithComponent("dataset")}, nil
}

// Root returns the dataset directory.
func (w *Writer) Root() string {
	return w.root
}

// SampleDir returns the directory of sample id.
func (w *Writer) SampleDir(id string) string {
	return filepath.Join(w.root, id)
}

// WriteSample writes the frames of res as PNG files and its labels as labels.yaml.
func (w *Writer) WriteSample(id string, res *transition.Result, sources []Source) (*Labels, error) {
	dir := w.SampleDir(id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	for i, f := range res.Frames {
		if err := writeFrame(filepath.Join(dir, fmt.Sprintf(FramePattern, i)), f); err != nil {
			return nil, fmt.Errorf("sample %s frame %d: %w", id, i, err)
		}
	}

	labels := NewLabels(id, res, sources)
	if err := writeYAML(filepath.Join(dir, LabelsFile), labels); err != nil {
		return nil, err
	}

	w.log.Debug().
		Str("sample", id).
		Str("kind", labels.Kind).
		Int("variant", labels.Variant).
		Int("frames", labels.Frames).
		Msg("sample written")
	return labels, nil
}

// WriteManifest writes manifest.yaml with entries sorted by directory.
func (w *Writer) WriteManifest(m *Manifest) error {
	if m.Version == "" {
		m.Version = Version
	}
	sort.Slice(m.Samples, func(i, j int) bool {
		return m.Samples[i].Dir < m.Samples[j].Dir
	})
	return writeYAML(filepath.Join(w.root, ManifestFile), m)
}

func writeFrame(path string, f *frames.Frame) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(out, f.Image()); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func writeYAML(path string, v interface{}) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLabels reads a labels.yaml file
func ReadLabels(path string) (*Labels, error) {
	var labels Labels
	if err := readYAML(path, &labels); err != nil {
		return nil, err
	}
	return &labels, nil
}

// ReadManifest reads a manifest.yaml file
func ReadManifest(path string) (*Manifest, error) {
	var m Manifest
	if err := readYAML(path, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func readYAML(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
