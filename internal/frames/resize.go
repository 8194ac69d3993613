package frames

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"
)

// BilinearResizer scales frames with bilinear interpolation.
type BilinearResizer struct{}

// Resize returns f scaled to width x height.
func (BilinearResizer) Resize(f *Frame, width, height int) *Frame {
	if f.Width == width && f.Height == height {
		return f.Clone()
	}
	src := f.Image()
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return FromImage(dst)
}

// Crop copies the pixels inside r. r must lie within the frame.
func (f *Frame) Crop(r image.Rectangle) *Frame {
	out := NewFrame(r.Dx(), r.Dy())
	rowBytes := r.Dx() * Channels
	for row := 0; row < r.Dy(); row++ {
		src := f.Offset(r.Min.Y+row, r.Min.X)
		copy(out.Pix[row*rowBytes:(row+1)*rowBytes], f.Pix[src:src+rowBytes])
	}
	return out
}

// Window locations for CropWindow.
const (
	Center = iota
	Top
	Left
	Right
	Bottom
	TopLeft
	TopRight
	BottomLeft
	BottomRight
	NumLocations
)

// CropWindow returns the rectangle retaining ratio of each side of a width x height frame,
// anchored at the given location. The result is clamped to the frame.
func CropWindow(location int, ratio float64, width, height int) (image.Rectangle, error) {
	if location < 0 || location >= NumLocations {
		return image.Rectangle{}, fmt.Errorf("crop location %d out of range [0,%d]", location, NumLocations-1)
	}
	if !(ratio > 0 && ratio <= 1) {
		return image.Rectangle{}, fmt.Errorf("crop ratio %v out of range (0,1]", ratio)
	}

	r := ratio / 2
	bias := (1 - ratio) / 2
	// row fraction, column fraction of the window centre
	centres := [NumLocations][2]float64{
		{0.5, 0.5},
		{0.5 - bias, 0.5}, {0.5, 0.5 - bias}, {0.5, 0.5 + bias}, {0.5 + bias, 0.5},
		{0.5 - bias, 0.5 - bias}, {0.5 - bias, 0.5 + bias}, {0.5 + bias, 0.5 - bias}, {0.5 + bias, 0.5 + bias},
	}
	c := centres[location]

	sy := int((c[0] - r) * float64(height))
	sx := int((c[1] - r) * float64(width))
	ly := int(math.Ceil(ratio * float64(height)))
	lx := int(math.Ceil(ratio * float64(width)))

	rect := image.Rect(sx, sy, sx+lx, sy+ly).Intersect(image.Rect(0, 0, width, height))
	if rect.Empty() {
		return image.Rectangle{}, fmt.Errorf("crop window is empty for %dx%d frame", width, height)
	}
	return rect, nil
}
