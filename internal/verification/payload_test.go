package verification

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identityXML(uid, name string) []byte {
	return []byte(fmt.Sprintf(
		`<PrintLetterBarcodeData uid=%q name=%q dob="01-01-1990" gender="F" co="D/O Ram Lal" loc="Shastri Nagar" vtc="Jaipur" dist="Jaipur" state="Rajasthan" pc="302016"/>`,
		uid, name))
}

func deflate(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// buildSecureQRPayload assembles the numeric binary container around the
// given identity.
func buildSecureQRPayload(t *testing.T, uid, name string) []byte {
	t.Helper()
	compressed := deflate(t, identityXML(uid, name))
	photo := []byte{0xAB, 0xCD, 0xEF}
	signature := []byte{0x01, 0x02, 0x03, 0x04}

	raw := []byte{2}
	var be16 [2]byte
	binary.BigEndian.PutUint16(be16[:], uint16(len(compressed)))
	raw = append(raw, be16[:]...)
	var be32 [4]byte
	binary.BigEndian.PutUint32(be32[:], uint32(len(photo)))
	raw = append(raw, be32[:]...)
	raw = append(raw, compressed...)
	raw = append(raw, photo...)
	binary.BigEndian.PutUint16(be16[:], uint16(len(signature)))
	raw = append(raw, be16[:]...)
	raw = append(raw, signature...)

	return encodeNumeric(raw)
}

func TestNumericRoundTrip(t *testing.T) {
	data := []byte{0, 1, 9, 10, 99, 100, 128, 254, 255}

	encoded := encodeNumeric(data)
	decoded, err := decodeNumeric(encoded)

	require.NoError(t, err)
	assert.Equal(t, data, decoded)
}

func TestDecodeNumericRejectsOutOfRangeGroup(t *testing.T) {
	_, err := decodeNumeric([]byte("999"))
	assert.Error(t, err)
}

func TestDecodeNumericRejectsNonNumeric(t *testing.T) {
	_, err := decodeNumeric([]byte("12a"))
	assert.Error(t, err)

	_, err = decodeNumeric([]byte("1234"))
	assert.Error(t, err)
}

func TestParseSecureQRPayload(t *testing.T) {
	payload := buildSecureQRPayload(t, "123456789012", "Asha Devi")

	rec, err := ParsePayload(payload)

	require.NoError(t, err)
	assert.Equal(t, "123456789012", rec.Identifier)
	assert.Equal(t, "Asha Devi", rec.FullName)
	assert.Equal(t, "01-01-1990", rec.DateOfBirth)
	assert.Equal(t, "F", rec.Gender)
	assert.Equal(t, SourceQR, rec.Source)
	assert.NotEmpty(t, rec.EmbeddedPhoto)
	assert.NotEmpty(t, rec.Signature)
	assert.Contains(t, rec.Address, "Jaipur")
}

func TestParsePlainXMLPayload(t *testing.T) {
	rec, err := ParsePayload(identityXML("123456789012", "Asha Devi"))

	require.NoError(t, err)
	assert.Equal(t, "123456789012", rec.Identifier)
	assert.Equal(t, "Asha Devi", rec.FullName)
}

func TestParseZlibXMLPayload(t *testing.T) {
	payload := deflate(t, identityXML("123456789012", "Asha Devi"))

	rec, err := ParsePayload(payload)

	require.NoError(t, err)
	assert.Equal(t, "123456789012", rec.Identifier)
}

func TestParseBase64ZlibXMLPayload(t *testing.T) {
	compressed := deflate(t, identityXML("123456789012", "Asha Devi"))
	payload := []byte(base64.StdEncoding.EncodeToString(compressed))

	rec, err := ParsePayload(payload)

	require.NoError(t, err)
	assert.Equal(t, "123456789012", rec.Identifier)
	assert.Equal(t, "Asha Devi", rec.FullName)
}

func TestParsePayloadRejectsImplausibleRecord(t *testing.T) {
	// Parses as XML but the identifier is not 12 digits.
	payload := identityXML("1234", "Asha Devi")

	_, err := ParsePayload(payload)

	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestParsePayloadRejectsEmptyName(t *testing.T) {
	_, err := ParsePayload(identityXML("123456789012", ""))

	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestParsePayloadRejectsGarbage(t *testing.T) {
	_, err := ParsePayload([]byte("https://example.com/not-an-identity-qr"))

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.NotEmpty(t, parseErr.Reason)
}

func TestYearOfBirthFallback(t *testing.T) {
	payload := []byte(`<PrintLetterBarcodeData uid="123456789012" name="Asha Devi" yob="1990" gender="F"/>`)

	rec, err := ParsePayload(payload)

	require.NoError(t, err)
	assert.Equal(t, "1990", rec.DateOfBirth)
}
