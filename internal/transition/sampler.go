package transition

import (
	"fmt"
	"math"

	"github.com/ivlev/framemix/internal/frames"
)

// DefaultProbabilities weights none, gradual, push, wipe and crop split.
var DefaultProbabilities = []float64{0.36, 0.36, 0.10, 0.06, 0.12}

// Sampler picks a transition kind from a probability vector and runs it with the
// configured per-kind parameters.
type Sampler struct {
	// Probabilities has one non-negative weight per kind, in Kind order. It is
	// normalized before sampling.
	Probabilities []float64
	FrameCount    Choice
	Gradual       Choice
	Push          Choice
	Wipe          Choice
	CropLocation  Choice
	CropRatio     float64
}

// NewSampler returns a sampler with the default probabilities, all parameters random
// and the default crop ratio.
func NewSampler() *Sampler {
	probs := make([]float64, len(DefaultProbabilities))
	copy(probs, DefaultProbabilities)
	return &Sampler{Probabilities: probs, CropRatio: DefaultCropRatio}
}

// Normalized validates the probability vector and scales it to sum to 1.
func Normalized(probs []float64) ([]float64, error) {
	if len(probs) != int(numKinds) {
		return nil, fmt.Errorf("%w: need %d probabilities, got %d", ErrInvalidArgument, numKinds, len(probs))
	}
	sum := 0.0
	for i, p := range probs {
		if p < 0 || math.IsNaN(p) || math.IsInf(p, 0) {
			return nil, fmt.Errorf("%w: probability %d is %v", ErrInvalidArgument, i, p)
		}
		sum += p
	}
	if sum == 0 {
		return nil, fmt.Errorf("%w: probabilities sum to zero", ErrInvalidArgument)
	}
	out := make([]float64, len(probs))
	for i, p := range probs {
		out[i] = p / sum
	}
	return out, nil
}

// PickKind draws a kind using the normalized probabilities.
func (s *Sampler) PickKind(rng Rand) (Kind, error) {
	probs, err := Normalized(s.Probabilities)
	if err != nil {
		return None, err
	}
	u := rng.Float64()
	acc := 0.0
	last := None
	for k, p := range probs {
		if p == 0 {
			continue
		}
		last = Kind(k)
		acc += p
		if u < acc {
			return Kind(k), nil
		}
	}
	return last, nil
}

// Request returns the transition request for kind k.
func (s *Sampler) Request(k Kind) Request {
	r := Request{Kind: k, FrameCount: s.FrameCount}
	switch k {
	case Gradual:
		r.Variant = s.Gradual
	case Push:
		r.Variant = s.Push
	case Wipe:
		r.Variant = s.Wipe
	}
	return r
}

// Generate picks a kind and applies it to a and b. A crop split only uses a.
func (s *Sampler) Generate(k *Kernel, a, b frames.Sequence) (*Result, error) {
	kind, err := s.PickKind(k.rng)
	if err != nil {
		return nil, err
	}
	if kind == CropSplit {
		return k.CropSplit(a, s.CropLocation, s.CropRatio)
	}

	spec, err := s.Request(kind).Resolve(k.rng)
	if err != nil {
		return nil, err
	}
	// A drawn length must still fit short clips; a fixed one is the caller's problem.
	if _, fixed := s.FrameCount.Value(); !fixed && spec.Kind != None {
		spec.FrameCount = min(spec.FrameCount, len(a), len(b))
	}
	return k.Merge(a, b, spec)
}
