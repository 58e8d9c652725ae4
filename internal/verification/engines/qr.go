package engines

import (
	"fmt"
	"image"

	"github.com/liyue201/goqr"
	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// ZXingDecoder is the general-purpose barcode decoding backend.
type ZXingDecoder struct{}

func NewZXingDecoder() *ZXingDecoder { return &ZXingDecoder{} }

func (d *ZXingDecoder) Decode(img image.Image) ([]byte, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return nil, fmt.Errorf("binary bitmap: %w", err)
	}
	reader := qrcode.NewQRCodeReader()
	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}
	result, err := reader.Decode(bmp, hints)
	if err != nil {
		return nil, err
	}
	return []byte(result.GetText()), nil
}

// QuircDetector is the QR-specific detector backend, independent of the
// zxing pipeline so the two fail on different artifacts.
type QuircDetector struct{}

func NewQuircDetector() *QuircDetector { return &QuircDetector{} }

func (d *QuircDetector) DetectAndDecode(img image.Image) ([]byte, error) {
	codes, err := goqr.Recognize(img)
	if err != nil {
		return nil, err
	}
	for _, code := range codes {
		if len(code.Payload) > 0 {
			return code.Payload, nil
		}
	}
	return nil, fmt.Errorf("no qr symbol recognized")
}
