package verification

import (
	"image"

	"go.uber.org/zap"
)

// Locator finds and decodes a QR payload in a rasterized frame by running a
// fixed cascade of preprocessing transforms against two independent
// decoding backends. First qualifying hit wins; the cascade does not keep
// searching for a better one.
type Locator struct {
	decoder    BarcodeDecoder
	detector   QRDetector
	minPayload int
	logger     *zap.Logger
}

// NewLocator wires the two decode backends. minPayload filters out noise
// decodes: a genuine Aadhaar QR payload is always substantial.
func NewLocator(decoder BarcodeDecoder, detector QRDetector, minPayload int, logger *zap.Logger) *Locator {
	return &Locator{decoder: decoder, detector: detector, minPayload: minPayload, logger: logger}
}

type frameTransform struct {
	name  string
	apply func(image.Image) image.Image
}

func identity(img image.Image) image.Image { return img }

var cascade = []frameTransform{
	{"original", identity},
	{"grayscale", grayscale},
	{"adaptive_threshold", adaptiveThreshold},
	{"otsu_threshold", otsuThreshold},
	{"inverted", invert},
	{"equalized", equalizeLocalContrast},
	{"upscaled_2x", upscale2x},
}

// Locate returns the first decoded payload longer than the plausibility
// minimum, or ErrQRNotFound once every transform/backend combination has
// been exhausted.
func (l *Locator) Locate(frame image.Image, trail *AuditTrail) ([]byte, error) {
	trail.Append("QR_EXTRACTION", StepStarted, nil)

	for _, tf := range cascade {
		candidate := tf.apply(frame)

		for _, backend := range []struct {
			name   string
			decode func(image.Image) ([]byte, error)
		}{
			{"barcode_reader", l.decoder.Decode},
			{"qr_detector", l.detector.DetectAndDecode},
		} {
			payload, err := backend.decode(candidate)
			if err != nil {
				l.logger.Debug("qr decode miss",
					zap.String("transform", tf.name),
					zap.String("backend", backend.name),
					zap.Error(err))
				continue
			}
			if len(payload) < l.minPayload {
				// Too short to be a real document payload; treat as noise
				// and keep cascading.
				trail.Append("QR_EXTRACTION", StepFailed, map[string]any{
					"transform":      tf.name,
					"backend":        backend.name,
					"payload_length": len(payload),
					"note":           "decode below plausibility minimum",
				})
				continue
			}
			trail.Append("QR_EXTRACTION", StepSuccess, map[string]any{
				"transform":      tf.name,
				"backend":        backend.name,
				"payload_length": len(payload),
			})
			return payload, nil
		}
	}

	trail.Append("QR_EXTRACTION", StepFailed, map[string]any{
		"transforms_tried": len(cascade),
		"note":             "qr not detected by any transform/backend combination",
	})
	return nil, ErrQRNotFound
}
