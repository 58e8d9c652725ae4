package verification

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newMatcher(rec *fakeRecognizer) *KeywordMatcher {
	return NewKeywordMatcher(rec, zap.NewNop())
}

func TestVerifyCasteKeywordsAndName(t *testing.T) {
	rec := &fakeRecognizer{texts: map[string]string{
		"eng+hin": "Government of India Caste Certificate Scheduled Caste Asha Devi",
	}}
	m := newMatcher(rec)

	trail := &AuditTrail{}
	claim := ClaimedIdentity{FullName: "Asha Devi"}
	v := m.VerifyCaste(context.Background(), testFrame(), claim, trail)

	assert.True(t, v.Verified)
	assert.Equal(t, OutcomeVerified, v.Outcome)
	assert.Equal(t, MethodKeywordMatch, v.Method)
	assert.LessOrEqual(t, v.Confidence, casteConfidenceCeiling)
	assert.NotEmpty(t, v.Warning)
	assert.Equal(t, []string{"keywords", "name"}, v.MatchedFields)
}

func TestVerifyCasteRegionHintSelectsLanguage(t *testing.T) {
	rec := &fakeRecognizer{texts: map[string]string{
		"eng+tam": "caste certificate government scheduled caste asha devi",
	}}
	m := newMatcher(rec)

	trail := &AuditTrail{}
	claim := ClaimedIdentity{FullName: "Asha Devi", RegionHint: "Tamil Nadu"}
	v := m.VerifyCaste(context.Background(), testFrame(), claim, trail)

	assert.Equal(t, []string{"eng+tam"}, rec.calls)
	assert.True(t, v.Verified)
}

func TestVerifyCasteMissingNameRejected(t *testing.T) {
	rec := &fakeRecognizer{texts: map[string]string{
		"eng+hin": "government caste certificate scheduled caste",
	}}
	m := newMatcher(rec)

	trail := &AuditTrail{}
	v := m.VerifyCaste(context.Background(), testFrame(), ClaimedIdentity{FullName: "Asha Devi"}, trail)

	assert.False(t, v.Verified)
	assert.Equal(t, OutcomeRejected, v.Outcome)
	assert.Equal(t, "insufficient evidence", v.Reason)
}

func TestVerifyCasteFewKeywordsRejected(t *testing.T) {
	rec := &fakeRecognizer{texts: map[string]string{
		"eng+hin": "certificate of merit awarded to asha devi",
	}}
	m := newMatcher(rec)

	trail := &AuditTrail{}
	v := m.VerifyCaste(context.Background(), testFrame(), ClaimedIdentity{FullName: "Asha Devi"}, trail)

	assert.False(t, v.Verified)
	assert.Equal(t, "document type unclear", v.Reason)
}

func TestVerifyCasteBilingualConfidenceStaysInRange(t *testing.T) {
	// Matches across both keyword lists exceed the English denominator;
	// the rejected verdict must still carry a confidence within [0,100].
	rec := &fakeRecognizer{texts: map[string]string{
		"eng+hin": "caste certificate scheduled caste scheduled tribe government जाति प्रमाण अनुसूचित सरकार",
	}}
	m := newMatcher(rec)

	trail := &AuditTrail{}
	v := m.VerifyCaste(context.Background(), testFrame(), ClaimedIdentity{FullName: "Asha Devi"}, trail)

	assert.False(t, v.Verified)
	assert.Equal(t, "insufficient evidence", v.Reason)
	assert.LessOrEqual(t, v.Confidence, 100.0)
	assert.GreaterOrEqual(t, v.Confidence, 0.0)
}

func TestVerifyCasteOCRErrorInconclusive(t *testing.T) {
	rec := &fakeRecognizer{errs: map[string]error{
		"eng+hin": errors.New("engine crashed"),
	}}
	m := newMatcher(rec)

	trail := &AuditTrail{}
	v := m.VerifyCaste(context.Background(), testFrame(), ClaimedIdentity{FullName: "Asha Devi"}, trail)
	assert.Equal(t, OutcomeInconclusive, v.Outcome)
}

func TestVerifyBasicIncomeCertificate(t *testing.T) {
	rec := &fakeRecognizer{texts: map[string]string{
		certificateLanguagePack: "Income Certificate: annual income of Asha Devi for financial year 2024 certified by the District Magistrate, Revenue Department, Government of India",
	}}
	m := newMatcher(rec)

	trail := &AuditTrail{}
	claim := ClaimedIdentity{FullName: "Asha Devi"}
	v := m.VerifyBasic(context.Background(), testFrame(), DocumentIncomeCertificate, claim, trail)

	assert.True(t, v.Verified)
	assert.Equal(t, MethodKeywordMatch, v.Method)
	assert.GreaterOrEqual(t, v.Confidence, basicKeywordThreshold)
}

func TestVerifyBasicFIRInsufficientEvidence(t *testing.T) {
	rec := &fakeRecognizer{texts: map[string]string{
		certificateLanguagePack: "an unrelated scanned page mentioning asha devi",
	}}
	m := newMatcher(rec)

	trail := &AuditTrail{}
	v := m.VerifyBasic(context.Background(), testFrame(), DocumentFIRCopy, ClaimedIdentity{FullName: "Asha Devi"}, trail)

	assert.False(t, v.Verified)
	assert.Equal(t, "insufficient evidence", v.Reason)
}

func TestVerifyBasicRequiresName(t *testing.T) {
	rec := &fakeRecognizer{texts: map[string]string{
		certificateLanguagePack: "first information report police station complaint case section ipc accused",
	}}
	m := newMatcher(rec)

	trail := &AuditTrail{}
	v := m.VerifyBasic(context.Background(), testFrame(), DocumentFIRCopy, ClaimedIdentity{FullName: "Asha Devi"}, trail)
	assert.False(t, v.Verified)
}

func TestNameVariantPresentSingleToken(t *testing.T) {
	assert.True(t, nameVariantPresent("issued to devi of ward 4", "Asha Devi"))
	assert.False(t, nameVariantPresent("issued to someone else", "Asha Devi"))
	assert.False(t, nameVariantPresent("anything", "  "))
}
