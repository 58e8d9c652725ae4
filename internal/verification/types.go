package verification

import (
	"time"
)

// DocumentType selects the verification strategy for an uploaded document.
type DocumentType string

const (
	DocumentAadhaar           DocumentType = "aadhaar"
	DocumentCasteCertificate  DocumentType = "caste_certificate"
	DocumentIncomeCertificate DocumentType = "income_certificate"
	DocumentFIRCopy           DocumentType = "fir_copy"
)

// RecordSource indicates how an identity record was recovered.
type RecordSource string

const (
	SourceQR  RecordSource = "QR"
	SourceOCR RecordSource = "OCR"
)

// IdentityRecord is the structured identity extracted from a document,
// either from a decoded QR payload or from OCR text.
type IdentityRecord struct {
	Identifier    string       `json:"identifier"`
	FullName      string       `json:"full_name"`
	DateOfBirth   string       `json:"date_of_birth,omitempty"`
	Gender        string       `json:"gender,omitempty"`
	Address       string       `json:"address,omitempty"`
	Source        RecordSource `json:"source"`
	EmbeddedPhoto []byte       `json:"-"`
	Signature     []byte       `json:"-"`
}

// ClaimedIdentity is the caller-supplied expected identity. It is never
// mutated by the pipeline.
type ClaimedIdentity struct {
	Identifier string
	FullName   string
	RegionHint string
}

// Method identifies which strategy produced a verdict.
type Method string

const (
	MethodQRExact            Method = "QR_EXACT"
	MethodQRPartialTolerated Method = "QR_PARTIAL_TOLERATED"
	MethodOCRFallback        Method = "OCR_FALLBACK"
	MethodKeywordMatch       Method = "KEYWORD_MATCH"
)

// Outcome is the terminal state of one verification run.
type Outcome string

const (
	OutcomeVerified     Outcome = "VERIFIED"
	OutcomeRejected     Outcome = "REJECTED"
	OutcomeInconclusive Outcome = "INCONCLUSIVE"
)

// StepStatus is the status of a single audit step.
type StepStatus string

const (
	StepStarted StepStatus = "started"
	StepSuccess StepStatus = "success"
	StepFailed  StepStatus = "failed"
	StepError   StepStatus = "error"
)

// AuditStep is one append-only entry in the verification audit trail.
type AuditStep struct {
	Step      string         `json:"step"`
	Status    StepStatus     `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	Detail    map[string]any `json:"detail,omitempty"`
}

// AuditTrail records steps in causal order. Steps are appended and never
// edited; the full sequence is returned to the caller regardless of outcome.
type AuditTrail struct {
	steps []AuditStep
}

// Append records a step with optional detail.
func (t *AuditTrail) Append(step string, status StepStatus, detail map[string]any) {
	t.steps = append(t.steps, AuditStep{
		Step:      step,
		Status:    status,
		Timestamp: time.Now().UTC(),
		Detail:    detail,
	})
}

// Steps returns a copy of the recorded steps.
func (t *AuditTrail) Steps() []AuditStep {
	out := make([]AuditStep, len(t.steps))
	copy(out, t.steps)
	return out
}

// VerificationVerdict is the pipeline output for one document.
type VerificationVerdict struct {
	Verified      bool        `json:"verified"`
	Outcome       Outcome     `json:"outcome"`
	Confidence    float64     `json:"confidence"`
	Method        Method      `json:"verification_method,omitempty"`
	Reason        string      `json:"reason,omitempty"`
	Warning       string      `json:"warning,omitempty"`
	SecurityAlert bool        `json:"security_alert"`
	MatchedFields []string    `json:"matched_fields,omitempty"`
	NameScore     float64     `json:"name_match_score,omitempty"`
	Extracted     *RecordView `json:"extracted_data,omitempty"`
	AuditTrail    []AuditStep `json:"audit_trail"`
}

// RecordView is the caller-facing projection of an IdentityRecord with the
// identifier masked down to its last four digits.
type RecordView struct {
	Name           string `json:"name"`
	IdentifierLast string `json:"identifier_last_4,omitempty"`
	DateOfBirth    string `json:"dob,omitempty"`
	Gender         string `json:"gender,omitempty"`
	Source         string `json:"source"`
}

func viewOf(rec *IdentityRecord) *RecordView {
	if rec == nil {
		return nil
	}
	v := &RecordView{
		Name:        rec.FullName,
		DateOfBirth: rec.DateOfBirth,
		Gender:      rec.Gender,
		Source:      string(rec.Source),
	}
	if len(rec.Identifier) >= 4 {
		v.IdentifierLast = rec.Identifier[len(rec.Identifier)-4:]
	}
	return v
}

// Config carries pipeline policy knobs.
type Config struct {
	// AllowPartialAadhaar accepts an identifier whose last four digits match
	// the claimed one. Weakens fraud protection; off unless explicitly
	// enabled in configuration.
	AllowPartialAadhaar bool
	// MinQRPayloadLen is the minimum decoded length considered a real
	// payload. Shorter decodes are treated as noise.
	MinQRPayloadLen int
	// RenderDPIs is the descending resolution sequence tried for PDFs.
	RenderDPIs []int
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		AllowPartialAadhaar: false,
		MinQRPayloadLen:     50,
		RenderDPIs:          []int{600, 500, 400, 300},
	}
}
