package verification

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"go.uber.org/zap"
)

// Identity cross-verification policy: a numeric-identifier rule, a fuzzy
// name rule, and tiered confidence per extraction method.

const (
	nameSimilarityThreshold = 0.65

	confidenceQRExact     = 95.0
	confidenceQRPartial   = 95.0
	confidenceOCRWithName = 65.0
	confidenceOCRNoName   = 50.0
)

const ocrWarning = "QR code not found. Verification based on OCR only. " +
	"Re-upload a clear image with the QR code visible for higher confidence."

const partialWarning = "Identifier matched on last four digits only under the " +
	"partial-match tolerance policy."

// CrossVerifier applies the security policy to an extracted record against
// the claimed identity.
type CrossVerifier struct {
	allowPartial bool
	logger       *zap.Logger
}

func NewCrossVerifier(allowPartial bool, logger *zap.Logger) *CrossVerifier {
	return &CrossVerifier{allowPartial: allowPartial, logger: logger}
}

// Verify produces a verdict for a QR-sourced record (full field set) or an
// OCR-derived partial record (identifier plus name-presence flag). Every
// branch appends to the trail; the caller attaches the trail to the
// returned verdict.
func (v *CrossVerifier) Verify(extracted *IdentityRecord, claimed ClaimedIdentity, nameFound bool, trail *AuditTrail) *VerificationVerdict {
	if extracted.Source == SourceOCR {
		return v.verifyDegraded(extracted, claimed, nameFound, trail)
	}
	return v.verifyQR(extracted, claimed, trail)
}

func (v *CrossVerifier) verifyQR(extracted *IdentityRecord, claimed ClaimedIdentity, trail *AuditTrail) *VerificationVerdict {
	method := MethodQRExact
	warning := ""

	switch {
	case extracted.Identifier == claimed.Identifier:
		trail.Append("IDENTIFIER_CHECK", StepSuccess, map[string]any{"match": "exact"})
	case v.allowPartial && lastFourMatch(extracted.Identifier, claimed.Identifier):
		method = MethodQRPartialTolerated
		warning = partialWarning
		trail.Append("IDENTIFIER_CHECK", StepSuccess, map[string]any{
			"match": "last_4_tolerated",
			"note":  "partial-match tolerance policy is enabled",
		})
	default:
		trail.Append("IDENTIFIER_CHECK", StepFailed, map[string]any{
			"expected_last_4": lastFour(claimed.Identifier),
			"found_last_4":    lastFour(extracted.Identifier),
		})
		return &VerificationVerdict{
			Verified:      false,
			Outcome:       OutcomeRejected,
			Method:        MethodQRExact,
			Reason:        "identifier mismatch",
			SecurityAlert: true,
			Extracted:     viewOf(extracted),
		}
	}

	score := nameSimilarity(claimed.FullName, extracted.FullName)
	trail.Append("NAME_CHECK", StepStarted, map[string]any{
		"similarity_score": roundScore(score),
		"threshold":        nameSimilarityThreshold,
	})
	if score < nameSimilarityThreshold {
		trail.Append("NAME_CHECK", StepFailed, map[string]any{"reason": "similarity below threshold"})
		return &VerificationVerdict{
			Verified:      false,
			Outcome:       OutcomeRejected,
			Method:        method,
			Reason:        "name mismatch",
			NameScore:     roundScore(score),
			SecurityAlert: true,
			Extracted:     viewOf(extracted),
		}
	}
	trail.Append("NAME_CHECK", StepSuccess, nil)

	confidence := confidenceQRExact
	if method == MethodQRPartialTolerated {
		confidence = confidenceQRPartial
	}
	return &VerificationVerdict{
		Verified:      true,
		Outcome:       OutcomeVerified,
		Confidence:    confidence,
		Method:        method,
		Warning:       warning,
		NameScore:     roundScore(score),
		MatchedFields: []string{"identifier", "name"},
		Extracted:     viewOf(extracted),
	}
}

func (v *CrossVerifier) verifyDegraded(extracted *IdentityRecord, claimed ClaimedIdentity, nameFound bool, trail *AuditTrail) *VerificationVerdict {
	if extracted.Identifier != claimed.Identifier {
		trail.Append("IDENTIFIER_CHECK", StepFailed, map[string]any{
			"expected_last_4": lastFour(claimed.Identifier),
			"found_last_4":    lastFour(extracted.Identifier),
			"method":          string(MethodOCRFallback),
		})
		return &VerificationVerdict{
			Verified:      false,
			Outcome:       OutcomeRejected,
			Method:        MethodOCRFallback,
			Reason:        "identifier mismatch",
			SecurityAlert: true,
			Extracted:     viewOf(extracted),
		}
	}
	trail.Append("IDENTIFIER_CHECK", StepSuccess, map[string]any{"match": "exact"})

	confidence := confidenceOCRNoName
	matched := []string{"identifier"}
	if nameFound {
		confidence = confidenceOCRWithName
		matched = append(matched, "name")
	}
	return &VerificationVerdict{
		Verified:      true,
		Outcome:       OutcomeVerified,
		Confidence:    confidence,
		Method:        MethodOCRFallback,
		Warning:       ocrWarning,
		MatchedFields: matched,
		Extracted:     viewOf(extracted),
	}
}

// nameSimilarity is a normalized edit-distance ratio over case-folded,
// trimmed names: 1.0 for identical strings, 0.0 for fully dissimilar.
func nameSimilarity(a, b string) float64 {
	a = strings.ToLower(strings.Join(strings.Fields(a), " "))
	b = strings.ToLower(strings.Join(strings.Fields(b), " "))
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}

func lastFourMatch(a, b string) bool {
	return len(a) >= 4 && len(b) >= 4 && lastFour(a) == lastFour(b)
}

func lastFour(s string) string {
	if len(s) < 4 {
		return s
	}
	return s[len(s)-4:]
}

func roundScore(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}
