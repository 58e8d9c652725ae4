package verification

import (
	"context"
	"image"
	"strings"

	"go.uber.org/zap"
)

// Keyword strategies for lower-assurance document types. Certificates carry
// no machine-readable identity, so the check is keyword evidence plus name
// presence, with confidence scaled by the matched-keyword ratio.

const (
	casteKeywordThreshold  = 30.0
	basicKeywordThreshold  = 40.0
	casteConfidenceCeiling = 75.0
	// certificateQRConfidence applies when a certificate QR validates
	// against the registry.
	certificateQRConfidence = 85.0
)

var casteKeywordsEnglish = []string{
	"caste", "certificate", "scheduled caste", "scheduled tribe", "sc", "st", "government",
}

var casteKeywordsHindi = []string{"जाति", "प्रमाण", "अनुसूचित", "सरकार"}

var basicKeywords = map[DocumentType][]string{
	DocumentIncomeCertificate: {
		"income", "certificate", "annual income", "government", "revenue",
		"district", "magistrate", "financial year",
	},
	DocumentFIRCopy: {
		"fir", "first information report", "police station", "complaint",
		"case", "section", "ipc", "accused",
	},
}

// stateLanguage maps an issuing state to the language pack most likely to
// recognize its certificates.
var stateLanguage = map[string]string{
	"tamil nadu":     "eng+tam",
	"telangana":      "eng+tel",
	"andhra pradesh": "eng+tel",
	"karnataka":      "eng+kan",
	"kerala":         "eng+mal",
	"maharashtra":    "eng+mar",
	"gujarat":        "eng+guj",
	"punjab":         "eng+pan",
	"west bengal":    "eng+ben",
}

// KeywordMatcher verifies certificates by OCR keyword evidence.
type KeywordMatcher struct {
	recognizer TextRecognizer
	logger     *zap.Logger
}

func NewKeywordMatcher(recognizer TextRecognizer, logger *zap.Logger) *KeywordMatcher {
	return &KeywordMatcher{recognizer: recognizer, logger: logger}
}

// VerifyCaste runs the regional-language keyword check for caste
// certificates.
func (m *KeywordMatcher) VerifyCaste(ctx context.Context, frame image.Image, claim ClaimedIdentity, trail *AuditTrail) *VerificationVerdict {
	langs := stateLanguage[strings.ToLower(strings.TrimSpace(claim.RegionHint))]
	if langs == "" {
		langs = "eng+hin"
	}

	text, err := m.recognizer.Recognize(frame, langs)
	if err != nil {
		trail.Append("KEYWORD_OCR", StepError, map[string]any{"error": err.Error(), "languages": langs})
		return inconclusive(err.Error())
	}
	textLower := strings.ToLower(text)

	matches := 0
	for _, kw := range append(append([]string{}, casteKeywordsEnglish...), casteKeywordsHindi...) {
		if strings.Contains(textLower, kw) {
			matches++
		}
	}
	// The ratio is over the English list only, so a bilingual certificate
	// matching both lists can exceed 100; clamp to keep confidence in [0,100].
	confidence := float64(matches) / float64(len(casteKeywordsEnglish)) * 100
	if confidence > 100 {
		confidence = 100
	}
	nameFound := nameVariantPresent(textLower, claim.FullName)

	trail.Append("KEYWORD_OCR", StepSuccess, map[string]any{
		"languages":        langs,
		"keywords_matched": matches,
		"confidence":       confidence,
		"name_matched":     nameFound,
	})

	if confidence >= casteKeywordThreshold && nameFound {
		if confidence > casteConfidenceCeiling {
			confidence = casteConfidenceCeiling
		}
		return &VerificationVerdict{
			Verified:      true,
			Outcome:       OutcomeVerified,
			Confidence:    confidence,
			Method:        MethodKeywordMatch,
			Warning:       "Medium confidence. Upload a certificate with a QR code for registry verification.",
			MatchedFields: []string{"keywords", "name"},
		}
	}

	reason := "document type unclear"
	if !nameFound {
		reason = "insufficient evidence"
	}
	return &VerificationVerdict{
		Verified:   false,
		Outcome:    OutcomeRejected,
		Confidence: confidence,
		Method:     MethodKeywordMatch,
		Reason:     reason,
	}
}

// VerifyBasic is the keyword-only path for income certificates and FIR
// copies.
func (m *KeywordMatcher) VerifyBasic(ctx context.Context, frame image.Image, docType DocumentType, claim ClaimedIdentity, trail *AuditTrail) *VerificationVerdict {
	keywords := basicKeywords[docType]

	text, err := m.recognizer.Recognize(frame, certificateLanguagePack)
	if err != nil {
		trail.Append("KEYWORD_OCR", StepError, map[string]any{"error": err.Error()})
		return inconclusive(err.Error())
	}
	textLower := strings.ToLower(text)

	matches := 0
	for _, kw := range keywords {
		if strings.Contains(textLower, kw) {
			matches++
		}
	}
	confidence := 0.0
	if len(keywords) > 0 {
		confidence = float64(matches) / float64(len(keywords)) * 100
	}
	nameFound := strings.Contains(textLower, strings.ToLower(claim.FullName))

	trail.Append("KEYWORD_OCR", StepSuccess, map[string]any{
		"document_type":    string(docType),
		"keywords_matched": matches,
		"total_keywords":   len(keywords),
		"confidence":       confidence,
		"name_matched":     nameFound,
	})

	if confidence >= basicKeywordThreshold && nameFound {
		return &VerificationVerdict{
			Verified:      true,
			Outcome:       OutcomeVerified,
			Confidence:    confidence,
			Method:        MethodKeywordMatch,
			MatchedFields: []string{"keywords", "name"},
		}
	}
	return &VerificationVerdict{
		Verified:   false,
		Outcome:    OutcomeRejected,
		Confidence: confidence,
		Method:     MethodKeywordMatch,
		Reason:     "insufficient evidence",
	}
}

// nameVariantPresent checks the full name, first token, and last token.
func nameVariantPresent(textLower, fullName string) bool {
	name := strings.ToLower(strings.TrimSpace(fullName))
	if name == "" {
		return false
	}
	tokens := strings.Fields(name)
	variants := []string{name}
	if len(tokens) > 0 {
		variants = append(variants, tokens[0], tokens[len(tokens)-1])
	}
	for _, v := range variants {
		if v != "" && strings.Contains(textLower, v) {
			return true
		}
	}
	return false
}

func inconclusive(reason string) *VerificationVerdict {
	return &VerificationVerdict{
		Verified: false,
		Outcome:  OutcomeInconclusive,
		Reason:   reason,
	}
}
