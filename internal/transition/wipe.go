package transition

import (
	"fmt"

	"github.com/ivlev/framemix/internal/frames"
	"github.com/ivlev/framemix/internal/geometry"
	"github.com/ivlev/framemix/internal/system"
)

// wipe reveals b through a growing shape pattern. Even codes reveal the inside of the
// pattern as it grows; odd codes reveal the outside as it shrinks. A revealed pixel stays
// revealed for the rest of the call.
func (k *Kernel) wipe(a, b frames.Sequence, code int) (frames.Sequence, error) {
	if code < 0 || code >= WipeVariants {
		return nil, fmt.Errorf("%w: wipe code %d", ErrInvalidArgument, code)
	}
	w, h := a.Size()
	set, err := wipePattern(code/2, w, h, k.rng)
	if err != nil {
		return nil, err
	}
	outside := code%2 == 1

	revealed := system.GetMask(w * h)
	defer system.PutMask(revealed)

	n := len(a)
	out := make(frames.Sequence, n)
	for i := 0; i < n; i++ {
		lambda := progress(i, n)
		if outside {
			lambda = 1 - lambda
		}
		dst := frames.NewFrame(w, h)
		from, to := a[i], b[i]

		// Rows touch disjoint parts of the mask, so they can run concurrently. Frames
		// cannot: each one starts from the mask left by the previous frame.
		k.parallel(h, func(row int) {
			for col := 0; col < w; col++ {
				idx := row*w + col
				if !revealed[idx] {
					covered := set.Covers(geometry.Point{X: float64(row), Y: float64(col)}, lambda)
					revealed[idx] = covered != outside
				}
				src := from
				if revealed[idx] {
					src = to
				}
				o := dst.Offset(row, col)
				copy(dst.Pix[o:o+frames.Channels], src.Pix[o:o+frames.Channels])
			}
		})
		out[i] = dst
	}
	return out, nil
}
