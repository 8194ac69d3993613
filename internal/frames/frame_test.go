package frames

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequenceValidate(t *testing.T) {
	tests := []struct {
		name    string
		seq     Sequence
		wantErr bool
	}{
		{"ok", Sequence{NewFrame(4, 3), NewFrame(4, 3)}, false},
		{"empty", Sequence{}, true},
		{"nil frame", Sequence{nil}, true},
		{"four channels", Sequence{{Width: 2, Height: 2, Pix: make([]uint8, 16)}}, true},
		{"mixed sizes", Sequence{NewFrame(4, 3), NewFrame(3, 4)}, true},
		{"zero size", Sequence{{Width: 0, Height: 3}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.seq.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrShapeMismatch)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSameSize(t *testing.T) {
	a := Sequence{NewFrame(4, 3)}
	b := Sequence{NewFrame(4, 4)}
	assert.ErrorIs(t, SameSize(a, b), ErrShapeMismatch)
	assert.NoError(t, SameSize(a, Sequence{NewFrame(4, 3), NewFrame(4, 3)}))
}

func TestImageRoundTrip(t *testing.T) {
	f := NewFrame(3, 2)
	for i := range f.Pix {
		f.Pix[i] = uint8(i * 7)
	}

	img := f.Image()
	assert.Equal(t, uint8(0xFF), img.Pix[3])

	back := FromImage(img)
	assert.Equal(t, f.Pix, back.Pix)
	assert.Equal(t, f.RGB(1, 2), back.RGB(1, 2))
}

func TestFromImageOffsetBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	img.Pix[img.PixOffset(5, 6)] = 200
	sub := img.SubImage(image.Rect(4, 4, 8, 8))

	f := FromImage(sub)
	require.Equal(t, 4, f.Width)
	require.Equal(t, 4, f.Height)
	assert.Equal(t, uint8(200), f.Pix[f.Offset(2, 1)])
}

func TestCrop(t *testing.T) {
	f := NewFrame(4, 4)
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			f.Pix[f.Offset(row, col)] = uint8(row*10 + col)
		}
	}

	c := f.Crop(image.Rect(1, 2, 3, 4))
	require.Equal(t, 2, c.Width)
	require.Equal(t, 2, c.Height)
	assert.Equal(t, uint8(21), c.Pix[c.Offset(0, 0)])
	assert.Equal(t, uint8(32), c.Pix[c.Offset(1, 1)])
}

func TestCropWindow(t *testing.T) {
	tests := []struct {
		name     string
		location int
		ratio    float64
		want     image.Rectangle
	}{
		{"full frame", Center, 1, image.Rect(0, 0, 100, 50)},
		{"centre half", Center, 0.5, image.Rect(25, 12, 75, 37)},
		{"top", Top, 0.5, image.Rect(25, 0, 75, 25)},
		{"left", Left, 0.5, image.Rect(0, 12, 50, 37)},
		{"bottom right", BottomRight, 0.5, image.Rect(50, 25, 100, 50)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CropWindow(tt.location, tt.ratio, 100, 50)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := CropWindow(NumLocations, 0.5, 10, 10)
	assert.Error(t, err)
	_, err = CropWindow(Center, 0, 10, 10)
	assert.Error(t, err)
	_, err = CropWindow(Center, 1.5, 10, 10)
	assert.Error(t, err)
}

func TestBilinearResize(t *testing.T) {
	f := Solid(4, 4, 90)
	out := BilinearResizer{}.Resize(f, 8, 6)
	require.Equal(t, 8, out.Width)
	require.Equal(t, 6, out.Height)
	for _, v := range out.Pix {
		assert.Equal(t, uint8(90), v)
	}

	same := BilinearResizer{}.Resize(f, 4, 4)
	assert.Equal(t, f.Pix, same.Pix)
	same.Pix[0] = 1
	assert.Equal(t, uint8(90), f.Pix[0])
}
