package engines

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// FitzRasterizer renders PDF pages through MuPDF at an explicit DPI.
type FitzRasterizer struct{}

func NewFitzRasterizer() *FitzRasterizer { return &FitzRasterizer{} }

// Render rasterizes the first page of the PDF at path.
func (r *FitzRasterizer) Render(path string, dpi int) (image.Image, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return nil, fmt.Errorf("pdf has no pages")
	}
	img, err := doc.ImageDPI(0, float64(dpi))
	if err != nil {
		return nil, fmt.Errorf("render page at %d dpi: %w", dpi, err)
	}
	return img, nil
}
