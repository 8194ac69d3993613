package transition

import (
	"fmt"
	"math"

	"github.com/ivlev/framemix/internal/frames"
)

// Plateau hold length for gradual transitions through black or white
// (about 0.5s to 1.2s at 25 fps).
const (
	MinHoldFrames = 12
	MaxHoldFrames = 30
)

// gradual cross-fades a into b. The via-black and via-white variants fade a to the
// plateau, hold it, then fade the plateau into b, so they return 2n+hold frames.
func (k *Kernel) gradual(a, b frames.Sequence, variant int) (frames.Sequence, error) {
	n := len(a)
	w, h := a.Size()

	switch variant {
	case Linear:
		out := make(frames.Sequence, n)
		k.parallel(n, func(i int) {
			out[i] = blend(a[i], b[i], progress(i, n))
		})
		return out, nil

	case ViaBlack, ViaWhite:
		level := uint8(0x00)
		if variant == ViaWhite {
			level = 0xFF
		}
		plateau := frames.Solid(w, h, level)
		hold := randInt(k.rng, MinHoldFrames, MaxHoldFrames)

		out := make(frames.Sequence, 2*n+hold)
		k.parallel(n, func(i int) {
			lambda := progress(i, n)
			out[i] = blend(a[i], plateau, lambda)
			out[n+hold+i] = blend(plateau, b[i], lambda)
		})
		for i := n; i < n+hold; i++ {
			out[i] = plateau.Clone()
		}
		return out, nil

	default:
		return nil, fmt.Errorf("%w: gradual variant %d", ErrInvalidArgument, variant)
	}
}

// progress is the blend weight of frame i of n: (i+1)/(n+1).
func progress(i, n int) float64 {
	return float64(i+1) / float64(n+1)
}

// blend returns from*(1-lambda) + to*lambda, rounded half to even.
func blend(from, to *frames.Frame, lambda float64) *frames.Frame {
	out := frames.NewFrame(from.Width, from.Height)
	for i := range out.Pix {
		v := float64(from.Pix[i])*(1-lambda) + float64(to.Pix[i])*lambda
		out.Pix[i] = uint8(math.RoundToEven(v))
	}
	return out
}
