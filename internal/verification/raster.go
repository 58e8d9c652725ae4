package verification

import (
	"image"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"go.uber.org/zap"
)

// ImageSource normalizes an input document (image file or PDF) into a
// single rasterized frame.
type ImageSource struct {
	rasterizer Rasterizer
	dpis       []int
	logger     *zap.Logger
}

// NewImageSource creates an adapter that renders PDFs at each resolution in
// dpis, in order, until one succeeds.
func NewImageSource(rasterizer Rasterizer, dpis []int, logger *zap.Logger) *ImageSource {
	return &ImageSource{rasterizer: rasterizer, dpis: dpis, logger: logger}
}

// Normalize returns the decoded raster for path. PDFs produced by different
// issuing systems need different DPI for legible QR and text, so a fixed
// resolution is not enough; the descending sequence is tried until a render
// succeeds.
func (s *ImageSource) Normalize(path string, trail *AuditTrail) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return s.renderPDF(path, trail)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &UnreadableImageError{Path: path, Err: err}
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		trail.Append("IMAGE_DECODE", StepError, map[string]any{"error": err.Error()})
		return nil, &UnreadableImageError{Path: path, Err: err}
	}
	trail.Append("IMAGE_DECODE", StepSuccess, map[string]any{"format": format})
	return img, nil
}

func (s *ImageSource) renderPDF(path string, trail *AuditTrail) (image.Image, error) {
	var lastErr error
	for _, dpi := range s.dpis {
		img, err := s.rasterizer.Render(path, dpi)
		if err != nil {
			lastErr = err
			s.logger.Debug("pdf render attempt failed",
				zap.String("path", path), zap.Int("dpi", dpi), zap.Error(err))
			continue
		}
		trail.Append("PDF_RENDER", StepSuccess, map[string]any{"dpi": dpi})
		return img, nil
	}
	trail.Append("PDF_RENDER", StepFailed, map[string]any{
		"resolutions_tried": len(s.dpis),
	})
	return nil, &RenderError{Path: path, Err: lastErr}
}
