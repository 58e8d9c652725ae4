package verification

import (
	"context"
	"image"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// Multi-language OCR fallback. Issuing authorities print identity cards in
// inconsistent language combinations, so recognition runs over a
// prioritized list of language packs and stops at the first attempt that
// yields an identifier. Name presence must tolerate names rendered in a
// regional script, hence the transliteration pass.

var aadhaarLanguagePacks = []string{"eng+hin", "eng", "hin", "eng+tam", "eng+tel"}

// certificateLanguagePack is the combined pack used for income-style
// certificates, where the issuing language is unpredictable.
const certificateLanguagePack = "eng+hin+tam+tel+mar+ben+kan+mal+guj+pan"

// identifierPattern matches a 12-digit identifier, possibly grouped with
// spaces as printed on the card.
var identifierPattern = regexp.MustCompile(`\b\d{4}\s*\d{4}\s*\d{4}\b`)

var langScript = map[string]string{
	"hin": "Devanagari",
	"tam": "Tamil",
	"tel": "Telugu",
	"mar": "Devanagari",
	"ben": "Bengali",
	"kan": "Kannada",
	"mal": "Malayalam",
	"guj": "Gujarati",
	"pan": "Gurmukhi",
}

// OCRFallback extracts an identity record from a frame when no QR payload
// is recoverable.
type OCRFallback struct {
	recognizer TextRecognizer
	translit   Transliterator
	logger     *zap.Logger
}

func NewOCRFallback(recognizer TextRecognizer, translit Transliterator, logger *zap.Logger) *OCRFallback {
	return &OCRFallback{recognizer: recognizer, translit: translit, logger: logger}
}

// Extract runs the language cascade and returns a degraded identity record
// carrying the identifier found in the text, plus whether the claimed name
// was located. ErrNoIdentifier means no language attempt found anything.
func (o *OCRFallback) Extract(ctx context.Context, frame image.Image, claim ClaimedIdentity, trail *AuditTrail) (*IdentityRecord, bool, error) {
	trail.Append("MULTILANG_OCR_FALLBACK", StepStarted, map[string]any{
		"languages": aadhaarLanguagePacks,
	})

	for _, langs := range aadhaarLanguagePacks {
		text, err := o.recognizer.Recognize(frame, langs)
		if err != nil {
			trail.Append("OCR_ATTEMPT_"+langs, StepError, map[string]any{"error": err.Error()})
			continue
		}
		trail.Append("OCR_ATTEMPT_"+langs, StepSuccess, map[string]any{"text_length": len(text)})

		match := identifierPattern.FindString(text)
		if match == "" {
			continue
		}
		identifier := strings.ReplaceAll(match, " ", "")

		nameFound := o.matchName(ctx, text, claim.FullName, langs, trail)
		rec := &IdentityRecord{
			Identifier: identifier,
			Source:     SourceOCR,
		}
		if nameFound {
			rec.FullName = claim.FullName
		}
		return rec, nameFound, nil
	}

	trail.Append("MULTILANG_OCR_FALLBACK", StepFailed, map[string]any{
		"note": "no identifier found in any language attempt",
	})
	return nil, false, ErrNoIdentifier
}

// matchName checks for the claimed name in the recognized text: first by
// exact case-insensitive substring, then through transliterated variants of
// the whole name and of each token. Names of three or more tokens match
// when all but one token is present.
func (o *OCRFallback) matchName(ctx context.Context, text, fullName, langs string, trail *AuditTrail) bool {
	textLower := strings.ToLower(text)
	nameLower := strings.ToLower(strings.TrimSpace(fullName))
	if nameLower == "" {
		return false
	}

	if strings.Contains(textLower, nameLower) {
		trail.Append("NAME_PRESENCE", StepSuccess, map[string]any{"method": "exact_substring"})
		return true
	}

	scripts := scriptsFor(langs)
	if len(scripts) == 0 {
		return false
	}

	tokens := strings.Fields(nameLower)
	for _, script := range scripts {
		if o.containsVariant(ctx, textLower, nameLower, script) {
			trail.Append("NAME_PRESENCE", StepSuccess, map[string]any{
				"method": "transliterated_full_name",
				"script": script,
			})
			return true
		}

		found := 0
		for _, token := range tokens {
			if strings.Contains(textLower, token) || o.containsVariant(ctx, textLower, token, script) {
				found++
			}
		}
		required := len(tokens)
		if required >= 3 {
			required--
		}
		if found >= required && required > 0 {
			trail.Append("NAME_PRESENCE", StepSuccess, map[string]any{
				"method":        "transliterated_tokens",
				"script":        script,
				"tokens_found":  found,
				"tokens_needed": required,
			})
			return true
		}
	}

	trail.Append("NAME_PRESENCE", StepFailed, nil)
	return false
}

// containsVariant checks the text for any transliterated rendering of s.
// Transliteration is network-dependent; on failure it degrades to the
// original text, which the caller has already checked.
func (o *OCRFallback) containsVariant(ctx context.Context, textLower, s, script string) bool {
	variants, err := o.translit.Transliterate(ctx, s, script)
	if err != nil {
		o.logger.Debug("transliteration unavailable",
			zap.String("script", script), zap.Error(err))
		return false
	}
	for _, v := range variants {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" && v != s && strings.Contains(textLower, v) {
			return true
		}
	}
	return false
}

func scriptsFor(langs string) []string {
	seen := map[string]bool{}
	var out []string
	for _, lang := range strings.Split(langs, "+") {
		if script, ok := langScript[lang]; ok && !seen[script] {
			seen[script] = true
			out = append(out, script)
		}
	}
	return out
}
