package verification

import (
	"context"
	"image"
)

// Capability interfaces consumed by the pipeline. Production
// implementations live in internal/verification/engines; tests substitute
// in-memory fakes.

// Rasterizer renders one page of a PDF at the given resolution.
type Rasterizer interface {
	Render(path string, dpi int) (image.Image, error)
}

// BarcodeDecoder is the general-purpose barcode decoding primitive. It
// returns the payload of the first QR symbol found in the frame.
type BarcodeDecoder interface {
	Decode(img image.Image) ([]byte, error)
}

// QRDetector is the QR-specific detector primitive.
type QRDetector interface {
	DetectAndDecode(img image.Image) ([]byte, error)
}

// TextRecognizer runs OCR over a frame with a language pack such as
// "eng+hin".
type TextRecognizer interface {
	Recognize(img image.Image, langs string) (string, error)
}

// Transliterator renders text phonetically in a target script. It is
// network-dependent; implementations must degrade to returning the input
// text on failure rather than erroring the pipeline.
type Transliterator interface {
	Transliterate(ctx context.Context, text, targetScript string) ([]string, error)
}

// RegistryClient checks a certificate QR payload against the issuing
// registry. The default implementation is a mock pending API Setu
// onboarding.
type RegistryClient interface {
	VerifyCertificate(ctx context.Context, payload []byte, docType DocumentType) (bool, error)
}
