package verification

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubDecoder struct {
	payload []byte
	err     error
	calls   int
}

func (d *stubDecoder) Decode(img image.Image) ([]byte, error) {
	d.calls++
	if d.err != nil {
		return nil, d.err
	}
	return d.payload, nil
}

type stubDetector struct {
	payload []byte
	err     error
	calls   int
}

func (d *stubDetector) DetectAndDecode(img image.Image) ([]byte, error) {
	d.calls++
	if d.err != nil {
		return nil, d.err
	}
	return d.payload, nil
}

func testFrame() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.Set(x, y, color.RGBA{uint8(x * 8), uint8(y * 8), 128, 255})
		}
	}
	return img
}

func longPayload() []byte {
	out := make([]byte, 120)
	for i := range out {
		out[i] = byte('0' + i%10)
	}
	return out
}

func TestLocateFirstBackendWins(t *testing.T) {
	decoder := &stubDecoder{payload: longPayload()}
	detector := &stubDetector{err: errors.New("should not be reached")}
	l := NewLocator(decoder, detector, 50, zap.NewNop())

	payload, err := l.Locate(testFrame(), &AuditTrail{})

	require.NoError(t, err)
	assert.Equal(t, longPayload(), payload)
	assert.Equal(t, 1, decoder.calls)
	assert.Equal(t, 0, detector.calls)
}

func TestLocateFallsToSecondBackend(t *testing.T) {
	decoder := &stubDecoder{err: errors.New("no barcode")}
	detector := &stubDetector{payload: longPayload()}
	l := NewLocator(decoder, detector, 50, zap.NewNop())

	payload, err := l.Locate(testFrame(), &AuditTrail{})

	require.NoError(t, err)
	assert.Equal(t, longPayload(), payload)
	assert.Equal(t, 1, decoder.calls)
	assert.Equal(t, 1, detector.calls)
}

func TestLocateSkipsShortDecodes(t *testing.T) {
	// A decode below the plausibility minimum is noise, not a hit.
	decoder := &stubDecoder{payload: []byte("tiny")}
	detector := &stubDetector{err: errors.New("nothing")}
	l := NewLocator(decoder, detector, 50, zap.NewNop())

	_, err := l.Locate(testFrame(), &AuditTrail{})

	assert.ErrorIs(t, err, ErrQRNotFound)
	assert.Equal(t, len(cascade), decoder.calls)
}

func TestLocateExhaustsCascade(t *testing.T) {
	decoder := &stubDecoder{err: errors.New("no barcode")}
	detector := &stubDetector{err: errors.New("no qr")}
	l := NewLocator(decoder, detector, 50, zap.NewNop())

	trail := &AuditTrail{}
	_, err := l.Locate(testFrame(), trail)

	assert.ErrorIs(t, err, ErrQRNotFound)
	assert.Equal(t, len(cascade), decoder.calls)
	assert.Equal(t, len(cascade), detector.calls)
	assert.NotEmpty(t, trail.Steps())
}

func TestLocateIsDeterministic(t *testing.T) {
	decoder := &stubDecoder{err: errors.New("no barcode")}
	detector := &stubDetector{payload: longPayload()}
	l := NewLocator(decoder, detector, 50, zap.NewNop())
	frame := testFrame()

	first, err1 := l.Locate(frame, &AuditTrail{})
	second, err2 := l.Locate(frame, &AuditTrail{})

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)
}

func TestTransformsPreserveSourceFrame(t *testing.T) {
	frame := testFrame()
	before := frame.(*image.RGBA).Pix[0]

	for _, tf := range cascade {
		_ = tf.apply(frame)
	}

	assert.Equal(t, before, frame.(*image.RGBA).Pix[0])
}
