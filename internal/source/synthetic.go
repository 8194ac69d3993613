package source

import (
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"image/draw"

	"github.com/skip2/go-qrcode"
)

// SyntheticSource generates frames without any input file: a solid background derived
// from the label, carrying a QR code of "label#index" that drifts across the frame.
// Every frame is distinct and decodable, which makes it useful for dry runs and tests.
type SyntheticSource struct {
	label         string
	count         int
	width, height int
	background    color.RGBA
}

func NewSyntheticSource(label string, count, width, height int) *SyntheticSource {
	h := fnv.New32a()
	h.Write([]byte(label))
	sum := h.Sum32()
	bg := color.RGBA{R: uint8(sum), G: uint8(sum >> 8), B: uint8(sum >> 16), A: 0xFF}
	return &SyntheticSource{label: label, count: count, width: width, height: height, background: bg}
}

func (s *SyntheticSource) FrameCount() int {
	return s.count
}

func (s *SyntheticSource) FrameDimensions(index int) (int, int, error) {
	if index < 0 || index >= s.count {
		return 0, 0, fmt.Errorf("frame %d out of range [0,%d)", index, s.count)
	}
	return s.width, s.height, nil
}

// Content returns the QR payload of frame index.
func (s *SyntheticSource) Content(index int) string {
	return fmt.Sprintf("%s#%d", s.label, index)
}

func (s *SyntheticSource) RenderFrame(index int) (image.Image, error) {
	if index < 0 || index >= s.count {
		return nil, fmt.Errorf("frame %d out of range [0,%d)", index, s.count)
	}

	q, err := qrcode.New(s.Content(index), qrcode.Medium)
	if err != nil {
		return nil, err
	}
	q.BackgroundColor = color.White
	q.ForegroundColor = color.Black

	side := min(s.width, s.height) / 2
	code := q.Image(side)

	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: s.background}, image.Point{}, draw.Src)

	// the code slides one pixel right per frame and wraps around
	span := s.width - code.Bounds().Dx()
	x := 0
	if span > 0 {
		x = index % span
	}
	y := (s.height - code.Bounds().Dy()) / 2
	at := image.Rect(x, y, x+code.Bounds().Dx(), y+code.Bounds().Dy())
	draw.Draw(img, at, code, code.Bounds().Min, draw.Src)
	return img, nil
}

func (s *SyntheticSource) Close() error {
	return nil
}
