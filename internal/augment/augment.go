// Package augment applies whole-sequence photometric and temporal perturbations to a
// clip before it is composited.
package augment

import (
	"fmt"
	"image"
	"image/color"

	"github.com/ivlev/framemix/internal/frames"
	"github.com/ivlev/framemix/internal/transition"
)

// GlareColors are the glare tints, indexed by the glare colour choice.
var GlareColors = [...]color.RGBA{
	{R: 0xFF, A: 0xFF},                 // red
	{G: 0xFF, A: 0xFF},                 // green
	{B: 0xFF, A: 0xFF},                 // blue
	{R: 0xFF, G: 0xFF, A: 0xFF},        // yellow
	{G: 0xFF, B: 0xFF, A: 0xFF},        // cyan
	{R: 0xFF, G: 97, A: 0xFF},          // orange
	{R: 0xFF, G: 192, B: 203, A: 0xFF}, // pink
	{R: 160, G: 32, B: 240, A: 0xFF},   // purple
}

// Glare parameters: the frame keeps coef of its own colour, coef in
// [MinGlareCoef, MaxGlareCoef). A random colour is redrawn every MinGlarePiece to
// MaxGlarePiece frames.
const (
	MinGlareCoef  = 0.55
	MaxGlareCoef  = 0.70
	MinGlarePiece = 10
	MaxGlarePiece = 25
)

// DefaultDarken is the darkening coefficient used when none is configured.
const DefaultDarken = 0.85

// Darken mixes every frame with black, keeping 1-coef of the original intensity.
func Darken(seq frames.Sequence, coef float64) (frames.Sequence, error) {
	if err := seq.Validate(); err != nil {
		return nil, err
	}
	if !(coef >= 0 && coef <= 1) {
		return nil, fmt.Errorf("%w: darken coefficient %v out of range [0,1]", transition.ErrInvalidArgument, coef)
	}

	keep := 1 - coef
	out := make(frames.Sequence, len(seq))
	for i, f := range seq {
		g := frames.NewFrame(f.Width, f.Height)
		for p, v := range f.Pix {
			g.Pix[p] = clampByte(float64(v) * keep)
		}
		out[i] = g
	}
	return out, nil
}

// Glare tints every frame towards one of GlareColors. A fixed colour is applied to the
// whole clip with a single coefficient; a random colour and coefficient change every
// few frames.
func Glare(seq frames.Sequence, colour transition.Choice, rng transition.Rand) (frames.Sequence, error) {
	if err := seq.Validate(); err != nil {
		return nil, err
	}
	idx, fixed := colour.Value()
	if fixed && (idx < 0 || idx >= len(GlareColors)) {
		return nil, fmt.Errorf("%w: glare colour %d out of range [0,%d]", transition.ErrInvalidArgument, idx, len(GlareColors)-1)
	}

	piece := MinGlarePiece + rng.Intn(MaxGlarePiece-MinGlarePiece+1)
	if !fixed {
		idx = rng.Intn(len(GlareColors))
	}
	coef := glareCoef(rng)

	out := make(frames.Sequence, len(seq))
	count := 0
	for i, f := range seq {
		out[i] = tint(f, GlareColors[idx], coef)
		count++
		if !fixed && count == piece {
			count = 0
			idx = rng.Intn(len(GlareColors))
			coef = glareCoef(rng)
		}
	}
	return out, nil
}

func glareCoef(rng transition.Rand) float64 {
	return MinGlareCoef + rng.Float64()*(MaxGlareCoef-MinGlareCoef)
}

func tint(f *frames.Frame, c color.RGBA, coef float64) *frames.Frame {
	rest := 1 - coef
	layer := [frames.Channels]float64{float64(c.R) * rest, float64(c.G) * rest, float64(c.B) * rest}
	g := frames.NewFrame(f.Width, f.Height)
	for p, v := range f.Pix {
		g.Pix[p] = clampByte(float64(v)*coef + layer[p%frames.Channels])
	}
	return g
}

// Extract simulates a lower frame rate: frame i repeats frame i/gap*gap. The output
// shares frames with seq.
func Extract(seq frames.Sequence, gap int) (frames.Sequence, error) {
	if err := seq.Validate(); err != nil {
		return nil, err
	}
	if gap < 1 {
		return nil, fmt.Errorf("%w: extract gap %d must be positive", transition.ErrInvalidArgument, gap)
	}
	out := make(frames.Sequence, len(seq))
	for i := range seq {
		out[i] = seq[i/gap*gap]
	}
	return out, nil
}

// Crop replaces every frame with window scaled back to the frame size.
func Crop(seq frames.Sequence, window image.Rectangle, resizer transition.Resizer) (frames.Sequence, error) {
	if err := seq.Validate(); err != nil {
		return nil, err
	}
	w, h := seq.Size()
	if window.Empty() || !window.In(image.Rect(0, 0, w, h)) {
		return nil, fmt.Errorf("%w: crop window %v outside %dx%d frame", transition.ErrInvalidArgument, window, w, h)
	}
	out := make(frames.Sequence, len(seq))
	for i, f := range seq {
		out[i] = resizer.Resize(f.Crop(window), w, h)
	}
	return out, nil
}

// clampByte truncates v towards zero into [0, 255].
func clampByte(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}
