package frames

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// Channels is the number of bytes per pixel (R, G, B).
const Channels = 3

// ErrShapeMismatch is returned when a frame or sequence does not have the expected layout.
var ErrShapeMismatch = errors.New("shape mismatch")

// Frame is a row-major RGB image, three bytes per pixel.
type Frame struct {
	Width  int
	Height int
	Pix    []uint8
}

// Sequence is an ordered list of frames sharing the same size.
type Sequence []*Frame

// NewFrame allocates a black frame.
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*Channels),
	}
}

// Solid returns a frame where every channel of every pixel equals v.
func Solid(width, height int, v uint8) *Frame {
	f := NewFrame(width, height)
	if v != 0 {
		for i := range f.Pix {
			f.Pix[i] = v
		}
	}
	return f
}

// Offset returns the index of the first channel of pixel (row, col) in Pix.
func (f *Frame) Offset(row, col int) int {
	return (row*f.Width + col) * Channels
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	pix := make([]uint8, len(f.Pix))
	copy(pix, f.Pix)
	return &Frame{Width: f.Width, Height: f.Height, Pix: pix}
}

// Validate checks that Pix matches Width x Height x Channels.
func (f *Frame) Validate() error {
	if f == nil {
		return fmt.Errorf("%w: nil frame", ErrShapeMismatch)
	}
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("%w: frame size %dx%d", ErrShapeMismatch, f.Width, f.Height)
	}
	if len(f.Pix) != f.Width*f.Height*Channels {
		return fmt.Errorf("%w: %d bytes for %dx%d frame, want %d channels per pixel",
			ErrShapeMismatch, len(f.Pix), f.Width, f.Height, Channels)
	}
	return nil
}

// Image converts the frame to an opaque *image.RGBA.
func (f *Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for i, j := 0, 0; i < len(f.Pix); i, j = i+Channels, j+4 {
		img.Pix[j] = f.Pix[i]
		img.Pix[j+1] = f.Pix[i+1]
		img.Pix[j+2] = f.Pix[i+2]
		img.Pix[j+3] = 0xFF
	}
	return img
}

// FromImage converts any image to a Frame, dropping alpha.
func FromImage(img image.Image) *Frame {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Rect.Min.X != 0 || rgba.Rect.Min.Y != 0 || rgba.Stride != bounds.Dx()*4 {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}

	f := NewFrame(bounds.Dx(), bounds.Dy())
	for i, j := 0, 0; i < len(f.Pix); i, j = i+Channels, j+4 {
		f.Pix[i] = rgba.Pix[j]
		f.Pix[i+1] = rgba.Pix[j+1]
		f.Pix[i+2] = rgba.Pix[j+2]
	}
	return f
}

// RGB returns the colour of pixel (row, col).
func (f *Frame) RGB(row, col int) color.RGBA {
	o := f.Offset(row, col)
	return color.RGBA{R: f.Pix[o], G: f.Pix[o+1], B: f.Pix[o+2], A: 0xFF}
}

// Validate checks that the sequence is non-empty and that all frames share one size.
func (s Sequence) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("%w: empty sequence", ErrShapeMismatch)
	}
	for i, f := range s {
		if err := f.Validate(); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		if f.Width != s[0].Width || f.Height != s[0].Height {
			return fmt.Errorf("%w: frame %d is %dx%d, frame 0 is %dx%d",
				ErrShapeMismatch, i, f.Width, f.Height, s[0].Width, s[0].Height)
		}
	}
	return nil
}

// Size returns the width and height of the first frame.
func (s Sequence) Size() (width, height int) {
	if len(s) == 0 {
		return 0, 0
	}
	return s[0].Width, s[0].Height
}

// SameSize validates both sequences and checks they share width and height.
func SameSize(a, b Sequence) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if err := b.Validate(); err != nil {
		return err
	}
	aw, ah := a.Size()
	bw, bh := b.Size()
	if aw != bw || ah != bh {
		return fmt.Errorf("%w: sequences are %dx%d and %dx%d", ErrShapeMismatch, aw, ah, bw, bh)
	}
	return nil
}

// Concat joins sequences without copying frames.
func Concat(parts ...Sequence) Sequence {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make(Sequence, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
