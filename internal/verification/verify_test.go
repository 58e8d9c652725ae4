package verification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func qrRecord(identifier, name string) *IdentityRecord {
	return &IdentityRecord{
		Identifier: identifier,
		FullName:   name,
		Source:     SourceQR,
	}
}

func TestNameSimilarityIdentical(t *testing.T) {
	assert.Equal(t, 1.0, nameSimilarity("Asha Devi", "Asha Devi"))
	assert.Equal(t, 1.0, nameSimilarity("  ASHA   DEVI ", "asha devi"))
}

func TestNameSimilarityEmpty(t *testing.T) {
	assert.Equal(t, 0.0, nameSimilarity("", "Asha Devi"))
}

func TestQRExactMatch(t *testing.T) {
	v := NewCrossVerifier(false, zap.NewNop())
	trail := &AuditTrail{}

	verdict := v.Verify(
		qrRecord("123456789012", "Asha Devi"),
		ClaimedIdentity{Identifier: "123456789012", FullName: "Asha Devi"},
		false, trail)

	assert.True(t, verdict.Verified)
	assert.Equal(t, OutcomeVerified, verdict.Outcome)
	assert.Equal(t, 95.0, verdict.Confidence)
	assert.Equal(t, MethodQRExact, verdict.Method)
	assert.Empty(t, verdict.Warning)
	assert.ElementsMatch(t, []string{"identifier", "name"}, verdict.MatchedFields)
}

func TestQRIdentifierMismatchRejected(t *testing.T) {
	v := NewCrossVerifier(false, zap.NewNop())
	trail := &AuditTrail{}

	// Same last four digits, different first eight; tolerance disabled.
	verdict := v.Verify(
		qrRecord("999999999012", "Asha Devi"),
		ClaimedIdentity{Identifier: "123456789012", FullName: "Asha Devi"},
		false, trail)

	assert.False(t, verdict.Verified)
	assert.Equal(t, OutcomeRejected, verdict.Outcome)
	assert.Equal(t, "identifier mismatch", verdict.Reason)
	assert.True(t, verdict.SecurityAlert)
}

func TestQRPartialToleranceEnabled(t *testing.T) {
	v := NewCrossVerifier(true, zap.NewNop())
	trail := &AuditTrail{}

	verdict := v.Verify(
		qrRecord("999999999012", "Asha Devi"),
		ClaimedIdentity{Identifier: "123456789012", FullName: "Asha Devi"},
		false, trail)

	assert.True(t, verdict.Verified)
	assert.Equal(t, 95.0, verdict.Confidence)
	assert.Equal(t, MethodQRPartialTolerated, verdict.Method)
	assert.NotEmpty(t, verdict.Warning)
}

func TestQRNameMismatchRejected(t *testing.T) {
	v := NewCrossVerifier(false, zap.NewNop())
	trail := &AuditTrail{}

	verdict := v.Verify(
		qrRecord("123456789012", "Completely Different Person"),
		ClaimedIdentity{Identifier: "123456789012", FullName: "Asha Devi"},
		false, trail)

	assert.False(t, verdict.Verified)
	assert.Equal(t, "name mismatch", verdict.Reason)
	assert.True(t, verdict.SecurityAlert)
	assert.Less(t, verdict.NameScore, nameSimilarityThreshold)
}

func TestQRNameTypoTolerated(t *testing.T) {
	v := NewCrossVerifier(false, zap.NewNop())
	trail := &AuditTrail{}

	verdict := v.Verify(
		qrRecord("123456789012", "Asha Debi"),
		ClaimedIdentity{Identifier: "123456789012", FullName: "Asha Devi"},
		false, trail)

	assert.True(t, verdict.Verified)
	assert.GreaterOrEqual(t, verdict.NameScore, nameSimilarityThreshold)
}

func TestOCRWithNameConfidence(t *testing.T) {
	v := NewCrossVerifier(false, zap.NewNop())
	trail := &AuditTrail{}

	rec := &IdentityRecord{Identifier: "123456789012", FullName: "Asha Devi", Source: SourceOCR}
	verdict := v.Verify(rec, ClaimedIdentity{Identifier: "123456789012", FullName: "Asha Devi"}, true, trail)

	assert.True(t, verdict.Verified)
	assert.Equal(t, 65.0, verdict.Confidence)
	assert.Equal(t, MethodOCRFallback, verdict.Method)
	assert.NotEmpty(t, verdict.Warning)
	assert.ElementsMatch(t, []string{"identifier", "name"}, verdict.MatchedFields)
}

func TestOCRWithoutNameConfidence(t *testing.T) {
	v := NewCrossVerifier(false, zap.NewNop())
	trail := &AuditTrail{}

	rec := &IdentityRecord{Identifier: "123456789012", Source: SourceOCR}
	verdict := v.Verify(rec, ClaimedIdentity{Identifier: "123456789012", FullName: "Asha Devi"}, false, trail)

	assert.True(t, verdict.Verified)
	assert.Equal(t, 50.0, verdict.Confidence)
	assert.ElementsMatch(t, []string{"identifier"}, verdict.MatchedFields)
}

func TestOCRIdentifierMismatchRejectedEvenWithTolerance(t *testing.T) {
	// Partial tolerance applies to QR-sourced records only.
	v := NewCrossVerifier(true, zap.NewNop())
	trail := &AuditTrail{}

	rec := &IdentityRecord{Identifier: "999999999012", Source: SourceOCR}
	verdict := v.Verify(rec, ClaimedIdentity{Identifier: "123456789012", FullName: "Asha Devi"}, false, trail)

	assert.False(t, verdict.Verified)
	assert.True(t, verdict.SecurityAlert)
}

func TestExtractedViewMasksIdentifier(t *testing.T) {
	v := NewCrossVerifier(false, zap.NewNop())
	trail := &AuditTrail{}

	verdict := v.Verify(
		qrRecord("123456789012", "Asha Devi"),
		ClaimedIdentity{Identifier: "123456789012", FullName: "Asha Devi"},
		false, trail)

	assert.Equal(t, "9012", verdict.Extracted.IdentifierLast)
}
