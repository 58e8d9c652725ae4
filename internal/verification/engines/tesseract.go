package engines

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// TesseractRecognizer runs OCR through the Tesseract engine. A fresh client
// is created per call: gosseract clients are not safe for concurrent reuse
// and language packs change between attempts.
type TesseractRecognizer struct{}

func NewTesseractRecognizer() *TesseractRecognizer { return &TesseractRecognizer{} }

// Recognize OCRs the frame with a "+"-joined language pack such as
// "eng+hin".
func (r *TesseractRecognizer) Recognize(img image.Image, langs string) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode frame: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(strings.Split(langs, "+")...); err != nil {
		return "", fmt.Errorf("set languages %q: %w", langs, err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize: %w", err)
	}
	return text, nil
}
