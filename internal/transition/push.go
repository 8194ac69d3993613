package transition

import (
	"fmt"
	"math"

	"github.com/ivlev/framemix/internal/frames"
)

// pushDirections holds the (row, column) unit offsets for push variants 0-7:
// up, down, right, left, up-right, up-left, down-left, down-right.
var pushDirections = [PushVariants][2]float64{
	{1, 0}, {-1, 0}, {0, -1}, {0, 1},
	{1, -1}, {1, 1}, {-1, 1}, {-1, -1},
}

// push slides b in over a. The offset of b shrinks from nearly a full frame to nothing
// as the transition progresses.
func (k *Kernel) push(a, b frames.Sequence, direction int) (frames.Sequence, error) {
	if direction < 0 || direction >= PushVariants {
		return nil, fmt.Errorf("%w: push direction %d", ErrInvalidArgument, direction)
	}
	d := pushDirections[direction]

	n := len(a)
	out := make(frames.Sequence, n)
	k.parallel(n, func(i int) {
		lambda := float64(n-i) / float64(n+1)
		out[i] = pushFrame(a[i], b[i], d[0]*lambda, d[1]*lambda)
	})
	return out, nil
}

// pushFrame samples to shifted by (dy*height, dx*width) and falls back to from where the
// shifted coordinate leaves the frame.
func pushFrame(from, to *frames.Frame, dy, dx float64) *frames.Frame {
	w, h := from.Width, from.Height
	out := frames.NewFrame(w, h)
	shiftRow := dy * float64(h)
	shiftCol := dx * float64(w)

	for row := 0; row < h; row++ {
		srcRow := int(math.RoundToEven(float64(row) - shiftRow))
		for col := 0; col < w; col++ {
			srcCol := int(math.RoundToEven(float64(col) - shiftCol))
			o := out.Offset(row, col)
			if srcRow >= 0 && srcRow < h && srcCol >= 0 && srcCol < w {
				s := to.Offset(srcRow, srcCol)
				copy(out.Pix[o:o+frames.Channels], to.Pix[s:s+frames.Channels])
			} else {
				copy(out.Pix[o:o+frames.Channels], from.Pix[o:o+frames.Channels])
			}
		}
	}
	return out
}
