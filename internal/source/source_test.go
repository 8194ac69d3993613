package source

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, w, h int, c color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestImageSourceOrdersFrames(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "002.png"), 4, 3, color.RGBA{R: 20, A: 0xFF})
	writePNG(t, filepath.Join(dir, "000.PNG"), 4, 3, color.RGBA{R: 0, A: 0xFF})
	writePNG(t, filepath.Join(dir, "001.png"), 4, 3, color.RGBA{R: 10, A: 0xFF})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	src, err := NewImageSource(dir)
	require.NoError(t, err)
	defer src.Close()

	require.Equal(t, 3, src.FrameCount())
	w, h, err := src.FrameDimensions(1)
	require.NoError(t, err)
	assert.Equal(t, 4, w)
	assert.Equal(t, 3, h)

	seq, err := Load(context.Background(), src, 0, 3, 4, 3)
	require.NoError(t, err)
	for i, f := range seq {
		assert.Equal(t, uint8(i*10), f.Pix[0], "frame %d", i)
	}
}

func TestImageSourceEmptyDir(t *testing.T) {
	_, err := NewImageSource(t.TempDir())
	assert.Error(t, err)
}

func TestLoadResizes(t *testing.T) {
	src := NewSyntheticSource("clip", 10, 64, 48)
	seq, err := Load(context.Background(), src, 2, 5, 32, 24)
	require.NoError(t, err)
	require.Len(t, seq, 5)
	for _, f := range seq {
		require.NoError(t, f.Validate())
		assert.Equal(t, 32, f.Width)
		assert.Equal(t, 24, f.Height)
	}

	_, err = Load(context.Background(), src, 8, 5, 32, 24)
	assert.Error(t, err)
	_, err = Load(context.Background(), src, 0, 5, 0, 24)
	assert.Error(t, err)
}

func TestLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Load(ctx, NewSyntheticSource("clip", 10, 16, 16), 0, 10, 16, 16)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSyntheticFramesDiffer(t *testing.T) {
	src := NewSyntheticSource("a", 3, 80, 60)
	assert.Equal(t, "a#2", src.Content(2))

	first, err := src.RenderFrame(0)
	require.NoError(t, err)
	second, err := src.RenderFrame(1)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 80, 60), first.Bounds())
	assert.NotEqual(t, first.(*image.RGBA).Pix, second.(*image.RGBA).Pix)

	_, err = src.RenderFrame(3)
	assert.Error(t, err)

	other := NewSyntheticSource("b", 1, 80, 60)
	assert.NotEqual(t, src.background, other.background)
}

func TestOpen(t *testing.T) {
	src, err := Open("synthetic:intro:12")
	require.NoError(t, err)
	assert.Equal(t, 12, src.FrameCount())
	assert.Equal(t, "intro#0", src.(*SyntheticSource).Content(0))

	src, err = Open("synthetic:host:port:3")
	require.NoError(t, err)
	assert.Equal(t, "host:port#1", src.(*SyntheticSource).Content(1))

	src, err = Open("synthetic:plain")
	require.NoError(t, err)
	assert.Equal(t, "plain", src.(*SyntheticSource).label)
	assert.Equal(t, DefaultSyntheticFrames, src.FrameCount())

	_, err = Open("synthetic:x:0")
	assert.Error(t, err)

	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "0.jpg.png"), 2, 2, color.RGBA{A: 0xFF})
	src, err = Open(dir)
	require.NoError(t, err)
	assert.IsType(t, &ImageSource{}, src)

	_, err = Open(filepath.Join(dir, "missing.pdf"))
	assert.Error(t, err)
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	for _, dir := range []string{"b", "a", "a/nested", "empty"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0755))
	}
	writePNG(t, filepath.Join(root, "a", "0.png"), 2, 2, color.RGBA{A: 0xFF})
	writePNG(t, filepath.Join(root, "a", "nested", "0.png"), 2, 2, color.RGBA{A: 0xFF})
	writePNG(t, filepath.Join(root, "b", "0.png"), 2, 2, color.RGBA{A: 0xFF})
	require.NoError(t, os.WriteFile(filepath.Join(root, "doc.PDF"), []byte("%PDF"), 0644))

	clips, err := Discover(root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a"),
		filepath.Join(root, "a", "nested"),
		filepath.Join(root, "b"),
		filepath.Join(root, "doc.PDF"),
	}, clips)

	single, err := Discover(filepath.Join(root, "doc.PDF"))
	require.NoError(t, err)
	assert.Len(t, single, 1)

	synthetic, err := Discover("synthetic:x")
	require.NoError(t, err)
	assert.Equal(t, []string{"synthetic:x"}, synthetic)
}
