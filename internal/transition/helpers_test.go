package transition

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/framemix/internal/frames"
)

// solidSeq returns n frames of the given size filled with v.
func solidSeq(n, w, h int, v uint8) frames.Sequence {
	seq := make(frames.Sequence, n)
	for i := range seq {
		seq[i] = frames.Solid(w, h, v)
	}
	return seq
}

// rampSeq returns n frames whose pixel values encode the frame index and position.
func rampSeq(n, w, h int, base uint8) frames.Sequence {
	seq := make(frames.Sequence, n)
	for i := range seq {
		f := frames.NewFrame(w, h)
		for p := range f.Pix {
			f.Pix[p] = base + uint8(i*7+p%13)
		}
		seq[i] = f
	}
	return seq
}

func newTestKernel(seed int64, opts ...Option) *Kernel {
	return NewKernel(rand.New(rand.NewSource(seed)), opts...)
}

// onesSpan returns the first and last index of the contiguous block of ones in v.
func onesSpan(t *testing.T, v []uint8) (first, last int) {
	t.Helper()
	first, last = -1, -1
	for i, x := range v {
		require.LessOrEqual(t, x, uint8(1))
		if x == 1 {
			if first == -1 {
				first = i
			} else {
				require.Equal(t, last+1, i, "ones are not contiguous in %v", v)
			}
			last = i
		}
	}
	return first, last
}

func sum(v []uint8) int {
	s := 0
	for _, x := range v {
		s += int(x)
	}
	return s
}

func assertLabelInvariants(t *testing.T, res *Result) {
	t.Helper()
	require.Len(t, res.OneHot, len(res.Frames))
	require.Len(t, res.MultiHot, len(res.Frames))
	assert.Equal(t, 1, sum(res.OneHot))

	hot, _ := onesSpan(t, res.OneHot)
	first, last := onesSpan(t, res.MultiHot)
	assert.GreaterOrEqual(t, hot, first)
	assert.LessOrEqual(t, hot, last)
}
