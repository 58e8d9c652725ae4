package verification

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"encoding/binary"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// QR payload parsing. Aadhaar cards in circulation carry one of four
// payload encodings depending on print vintage: a numeric "secure QR"
// binary container, plain XML, zlib-compressed XML, and base64-wrapped
// zlib XML. Candidates are tried in that priority order and a candidate is
// accepted only when it yields a plausible record (12-digit identifier and
// a non-empty name), not merely when it parses.

var identifier12 = regexp.MustCompile(`^\d{12}$`)

// barcodeData mirrors the PrintLetterBarcodeData attribute set.
type barcodeData struct {
	XMLName  xml.Name
	UID      string `xml:"uid,attr"`
	Name     string `xml:"name,attr"`
	DOB      string `xml:"dob,attr"`
	YOB      string `xml:"yob,attr"`
	Gender   string `xml:"gender,attr"`
	CareOf   string `xml:"co,attr"`
	Locality string `xml:"loc,attr"`
	VTC      string `xml:"vtc,attr"`
	District string `xml:"dist,attr"`
	State    string `xml:"state,attr"`
	Pincode  string `xml:"pc,attr"`
}

func (d *barcodeData) address() string {
	parts := make([]string, 0, 6)
	for _, p := range []string{d.CareOf, d.Locality, d.VTC, d.District, d.State, d.Pincode} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func (d *barcodeData) record() *IdentityRecord {
	dob := d.DOB
	if dob == "" {
		dob = d.YOB
	}
	return &IdentityRecord{
		Identifier:  strings.TrimSpace(d.UID),
		FullName:    strings.TrimSpace(d.Name),
		DateOfBirth: dob,
		Gender:      d.Gender,
		Address:     d.address(),
		Source:      SourceQR,
	}
}

// ParsePayload classifies the payload encoding by trial and extracts an
// identity record. A *ParseError triggers the OCR fallback upstream.
func ParsePayload(payload []byte) (*IdentityRecord, error) {
	type attempt struct {
		name  string
		parse func([]byte) (*IdentityRecord, error)
	}
	attempts := []attempt{
		{"secure_qr_numeric", parseSecureQR},
		{"plain_xml", parsePlainXML},
		{"zlib_xml", parseZlibXML},
		{"base64_zlib_xml", parseBase64ZlibXML},
	}

	var reasons []string
	for _, a := range attempts {
		rec, err := a.parse(payload)
		if err != nil {
			reasons = append(reasons, fmt.Sprintf("%s: %v", a.name, err))
			continue
		}
		if err := validateRecord(rec); err != nil {
			reasons = append(reasons, fmt.Sprintf("%s: %v", a.name, err))
			continue
		}
		return rec, nil
	}
	return nil, &ParseError{Reason: strings.Join(reasons, "; ")}
}

// validateRecord is the post-parse plausibility gate: without it, a payload
// can "parse" under the wrong encoding and yield garbage fields.
func validateRecord(rec *IdentityRecord) error {
	if !identifier12.MatchString(rec.Identifier) {
		return fmt.Errorf("identifier %q is not 12 digits", rec.Identifier)
	}
	if rec.FullName == "" {
		return fmt.Errorf("empty name")
	}
	return nil
}

// --- secure QR (numeric/binary container) ---

func isNumericPayload(payload []byte) bool {
	if len(payload) == 0 || len(payload)%3 != 0 {
		return false
	}
	for _, b := range payload {
		if b < '0' || b > '9' {
			return false
		}
	}
	return true
}

// decodeNumeric interprets each 3-digit ASCII group as one byte's decimal
// value.
func decodeNumeric(payload []byte) ([]byte, error) {
	if !isNumericPayload(payload) {
		return nil, fmt.Errorf("payload is not a 3-digit-per-byte numeric stream")
	}
	out := make([]byte, 0, len(payload)/3)
	for i := 0; i < len(payload); i += 3 {
		v := int(payload[i]-'0')*100 + int(payload[i+1]-'0')*10 + int(payload[i+2]-'0')
		if v > 255 {
			return nil, fmt.Errorf("group %q exceeds byte range", payload[i:i+3])
		}
		out = append(out, byte(v))
	}
	return out, nil
}

// encodeNumeric is the inverse of decodeNumeric.
func encodeNumeric(data []byte) []byte {
	out := make([]byte, 0, len(data)*3)
	for _, b := range data {
		out = append(out, '0'+b/100, '0'+(b/10)%10, '0'+b%10)
	}
	return out
}

// parseSecureQR unpacks the binary container: 1-byte version, 2-byte
// big-endian compressed-XML length, 4-byte big-endian photo length, the
// zlib XML block, the photo bytes, a 2-byte signature length, and the
// signature bytes.
func parseSecureQR(payload []byte) (*IdentityRecord, error) {
	raw, err := decodeNumeric(payload)
	if err != nil {
		return nil, err
	}
	if len(raw) < 7 {
		return nil, fmt.Errorf("container too short: %d bytes", len(raw))
	}

	xmlLen := int(binary.BigEndian.Uint16(raw[1:3]))
	photoLen := int(binary.BigEndian.Uint32(raw[3:7]))
	offset := 7

	if len(raw) < offset+xmlLen+photoLen+2 {
		return nil, fmt.Errorf("container truncated: need %d bytes, have %d",
			offset+xmlLen+photoLen+2, len(raw))
	}

	xmlBytes, err := inflate(raw[offset : offset+xmlLen])
	if err != nil {
		return nil, fmt.Errorf("inflate identity block: %w", err)
	}
	offset += xmlLen

	photo := raw[offset : offset+photoLen]
	offset += photoLen

	sigLen := int(binary.BigEndian.Uint16(raw[offset : offset+2]))
	offset += 2
	if len(raw) < offset+sigLen {
		return nil, fmt.Errorf("signature truncated")
	}
	signature := raw[offset : offset+sigLen]

	var data barcodeData
	if err := xml.Unmarshal(xmlBytes, &data); err != nil {
		return nil, fmt.Errorf("identity block xml: %w", err)
	}

	rec := data.record()
	if len(photo) > 0 {
		rec.EmbeddedPhoto = append([]byte(nil), photo...)
	}
	if len(signature) > 0 {
		rec.Signature = append([]byte(nil), signature...)
	}
	return rec, nil
}

// --- XML-family encodings ---

func parsePlainXML(payload []byte) (*IdentityRecord, error) {
	idx := bytes.IndexByte(payload, '<')
	if idx < 0 || idx > 16 {
		return nil, fmt.Errorf("no early xml marker")
	}
	var data barcodeData
	if err := xml.Unmarshal(payload[idx:], &data); err != nil {
		return nil, err
	}
	return data.record(), nil
}

func parseZlibXML(payload []byte) (*IdentityRecord, error) {
	xmlBytes, err := inflate(payload)
	if err != nil {
		return nil, err
	}
	return parsePlainXML(xmlBytes)
}

func parseBase64ZlibXML(payload []byte) (*IdentityRecord, error) {
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(payload)))
	if err != nil {
		return nil, err
	}
	return parseZlibXML(decoded)
}

func inflate(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
