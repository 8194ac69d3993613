package transition

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/framemix/internal/frames"
	"github.com/ivlev/framemix/internal/system"
)

// Result is a composited sequence with its transition labels.
type Result struct {
	Frames frames.Sequence
	// OneHot marks the single representative frame of the transition.
	OneHot []uint8
	// MultiHot marks the contiguous span of frames belonging to the transition.
	MultiHot []uint8
	Spec     Spec
	// TransitionLen is the number of synthesized frames. A plateau gradual transition
	// reports more frames than Spec.FrameCount.
	TransitionLen int
	// Cut is the first cropped frame of a crop split, 0 otherwise.
	Cut int
}

// Kernel runs transitions. Every random draw comes from the injected source, so a Kernel
// seeded identically produces identical output. A Kernel must not be shared between
// goroutines.
type Kernel struct {
	rng     Rand
	resizer Resizer
	workers int
}

// Option configures a Kernel.
type Option func(*Kernel)

// WithWorkers bounds the goroutines used for pixel loops. Values below 1 select
// system.DefaultWorkers.
func WithWorkers(n int) Option {
	return func(k *Kernel) {
		k.workers = system.ResolveWorkers(n)
	}
}

// WithResizer replaces the bilinear resizer used by crop splits.
func WithResizer(r Resizer) Option {
	return func(k *Kernel) {
		k.resizer = r
	}
}

// NewKernel returns a Kernel drawing from rng.
func NewKernel(rng Rand, opts ...Option) *Kernel {
	k := &Kernel{
		rng:     rng,
		resizer: frames.BilinearResizer{},
		workers: system.DefaultWorkers(),
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// Merge composites b after a using spec. With kind None the sequences are concatenated
// as a hard cut. Otherwise the last spec.FrameCount frames of a and the first
// spec.FrameCount frames of b are replaced by the synthesized transition.
func (k *Kernel) Merge(a, b frames.Sequence, spec Spec) (*Result, error) {
	if err := frames.SameSize(a, b); err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	if spec.Kind == None {
		oneHot, multiHot := Labels(len(a), len(b), 0)
		return &Result{
			Frames:   frames.Concat(a, b),
			OneHot:   oneHot,
			MultiHot: multiHot,
			Spec:     spec,
		}, nil
	}

	n := spec.FrameCount
	if n > len(a) || n > len(b) {
		return nil, fmt.Errorf("%w: %d transition frames exceed input lengths %d and %d",
			ErrInvalidArgument, n, len(a), len(b))
	}
	len1 := len(a) - n
	len2 := len(b) - n
	slice1 := a[len1:]
	slice2 := b[:n]

	var mixed frames.Sequence
	var err error
	switch spec.Kind {
	case Gradual:
		mixed, err = k.gradual(slice1, slice2, spec.Variant)
	case Push:
		mixed, err = k.push(slice1, slice2, spec.Variant)
	case Wipe:
		mixed, err = k.wipe(slice1, slice2, spec.Variant)
	}
	if err != nil {
		return nil, err
	}

	oneHot, multiHot := Labels(len1, len2, len(mixed))
	return &Result{
		Frames:        frames.Concat(a[:len1], mixed, b[len(b)-len2:]),
		OneHot:        oneHot,
		MultiHot:      multiHot,
		Spec:          spec,
		TransitionLen: len(mixed),
	}, nil
}

// parallel calls fn for 0..n-1 on at most k.workers goroutines.
func (k *Kernel) parallel(n int, fn func(i int)) {
	if k.workers <= 1 || n <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(k.workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	g.Wait()
}
