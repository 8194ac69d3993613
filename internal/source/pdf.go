package source

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// DefaultDPI rasterizes a page at one pixel per PDF point.
const DefaultDPI = 72

// FitzPDFSource treats every page of a PDF document as a frame, so a slide deck or a
// scanned storyboard can feed the generator like any other clip.
type FitzPDFSource struct {
	doc   *fitz.Document
	path  string
	dpi   float64
	pages int
}

// NewFitzPDFSource opens path and rasterizes pages at dpi.
func NewFitzPDFSource(path string, dpi float64) (*FitzPDFSource, error) {
	if dpi < 1 {
		return nil, fmt.Errorf("%s: dpi %v must be at least 1", path, dpi)
	}
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	pages := doc.NumPage()
	if pages == 0 {
		doc.Close()
		return nil, fmt.Errorf("%s: document has no pages", path)
	}
	return &FitzPDFSource{doc: doc, path: path, dpi: dpi, pages: pages}, nil
}

func (f *FitzPDFSource) FrameCount() int {
	return f.pages
}

// FrameDimensions returns the pixel size page index renders to at the source DPI.
func (f *FitzPDFSource) FrameDimensions(index int) (int, int, error) {
	if index < 0 || index >= f.pages {
		return 0, 0, fmt.Errorf("page %d out of range [0,%d)", index, f.pages)
	}
	rect, err := f.doc.Bound(index)
	if err != nil {
		return 0, 0, err
	}
	scale := f.dpi / DefaultDPI
	return int(float64(rect.Dx()) * scale), int(float64(rect.Dy()) * scale), nil
}

// RenderFrame opens a document handle per call; Load renders pages concurrently and a
// fitz.Document must not be shared between goroutines.
func (f *FitzPDFSource) RenderFrame(index int) (image.Image, error) {
	if index < 0 || index >= f.pages {
		return nil, fmt.Errorf("page %d out of range [0,%d)", index, f.pages)
	}
	doc, err := fitz.New(f.path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	img, err := doc.ImageDPI(index, f.dpi)
	if err != nil {
		return nil, fmt.Errorf("render page %d: %w", index, err)
	}
	return img, nil
}

func (f *FitzPDFSource) Close() error {
	return f.doc.Close()
}
