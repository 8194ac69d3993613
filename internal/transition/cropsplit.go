package transition

import (
	"fmt"
	"image"

	"github.com/ivlev/framemix/internal/frames"
)

// DefaultCropRatio is the fraction of each side kept by a crop split.
const DefaultCropRatio = 0.8

// CropSplit simulates a shot change inside a single clip: from a random cut frame on,
// every frame is replaced by a zoomed crop of itself. The cut is drawn from
// [0.25n, 0.75n) and the crop window from location (0-8, see frames.CropWindow) and ratio.
func (k *Kernel) CropSplit(seq frames.Sequence, location Choice, ratio float64) (*Result, error) {
	if err := seq.Validate(); err != nil {
		return nil, err
	}
	if len(seq) < 2 {
		return nil, fmt.Errorf("%w: crop split needs at least 2 frames, got %d", ErrInvalidArgument, len(seq))
	}

	loc, err := location.resolve(k.rng, 0, frames.NumLocations-1, "crop location")
	if err != nil {
		return nil, err
	}
	w, h := seq.Size()
	window, err := frames.CropWindow(loc, ratio, w, h)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	cut := int((k.rng.Float64()*0.5 + 0.25) * float64(len(seq)))
	if cut < 1 {
		cut = 1
	}

	res, err := k.CropSplitAt(seq, window, cut)
	if err != nil {
		return nil, err
	}
	res.Spec.Variant = loc
	return res, nil
}

// CropSplitAt crops and rescales every frame from cut on. The one-hot and multi-hot
// labels both mark frame cut-1, the last frame of the original framing.
func (k *Kernel) CropSplitAt(seq frames.Sequence, window image.Rectangle, cut int) (*Result, error) {
	if err := seq.Validate(); err != nil {
		return nil, err
	}
	if cut < 1 || cut >= len(seq) {
		return nil, fmt.Errorf("%w: cut %d out of range [1,%d)", ErrInvalidArgument, cut, len(seq))
	}
	w, h := seq.Size()
	if window.Empty() || !window.In(image.Rect(0, 0, w, h)) {
		return nil, fmt.Errorf("%w: crop window %v outside %dx%d frame", ErrInvalidArgument, window, w, h)
	}

	out := make(frames.Sequence, len(seq))
	copy(out, seq[:cut])
	k.parallel(len(seq)-cut, func(i int) {
		out[cut+i] = k.resizer.Resize(seq[cut+i].Crop(window), w, h)
	})

	oneHot := make([]uint8, len(seq))
	oneHot[cut-1] = 1
	multiHot := make([]uint8, len(seq))
	copy(multiHot, oneHot)

	return &Result{
		Frames:   out,
		OneHot:   oneHot,
		MultiHot: multiHot,
		Spec:     Spec{Kind: CropSplit},
		Cut:      cut,
	}, nil
}
