package verification

import (
	"context"
	"errors"
	"fmt"
	"image"

	"go.uber.org/zap"
)

// Engines bundles the external capabilities consumed by the pipeline.
type Engines struct {
	Rasterizer     Rasterizer
	Decoder        BarcodeDecoder
	Detector       QRDetector
	Recognizer     TextRecognizer
	Transliterator Transliterator
	Registry       RegistryClient
}

// Agent is the per-request verification orchestrator. It dispatches on
// document type, runs the QR-first/OCR-fallback pipeline, and converts any
// failure into a structured verdict. Nothing raises past this boundary.
//
// Agents hold no mutable state between requests; one Agent is shared by
// concurrent requests without locking.
type Agent struct {
	source   *ImageSource
	locator  *Locator
	ocr      *OCRFallback
	verifier *CrossVerifier
	keywords *KeywordMatcher
	registry RegistryClient
	logger   *zap.Logger
}

func NewAgent(cfg Config, eng Engines, logger *zap.Logger) *Agent {
	return &Agent{
		source:   NewImageSource(eng.Rasterizer, cfg.RenderDPIs, logger),
		locator:  NewLocator(eng.Decoder, eng.Detector, cfg.MinQRPayloadLen, logger),
		ocr:      NewOCRFallback(eng.Recognizer, eng.Transliterator, logger),
		verifier: NewCrossVerifier(cfg.AllowPartialAadhaar, logger),
		keywords: NewKeywordMatcher(eng.Recognizer, logger),
		registry: eng.Registry,
		logger:   logger,
	}
}

// VerifyDocument verifies the document at path against the claimed
// identity. The returned verdict always carries the full audit trail, and
// the call never panics or returns an error: unexpected failures become an
// Inconclusive verdict.
func (a *Agent) VerifyDocument(ctx context.Context, path string, docType DocumentType, claim ClaimedIdentity) (verdict *VerificationVerdict) {
	trail := &AuditTrail{}
	trail.Append("VERIFICATION", StepStarted, map[string]any{
		"document_type": string(docType),
	})

	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("verification panic recovered", zap.Any("panic", r))
			trail.Append("VERIFICATION", StepError, map[string]any{"panic": fmt.Sprint(r)})
			verdict = inconclusive(fmt.Sprintf("verification failed: %v", r))
		}
		verdict.AuditTrail = trail.Steps()
	}()

	frame, err := a.source.Normalize(path, trail)
	if err != nil {
		return inconclusive(err.Error())
	}

	switch docType {
	case DocumentAadhaar:
		return a.verifyAadhaar(ctx, frame, claim, trail)
	case DocumentCasteCertificate:
		return a.verifyCasteCertificate(ctx, frame, claim, trail)
	case DocumentIncomeCertificate, DocumentFIRCopy:
		return a.keywords.VerifyBasic(ctx, frame, docType, claim, trail)
	default:
		return inconclusive(fmt.Sprintf("unsupported document type: %s", docType))
	}
}

// verifyAadhaar is the QR-first strategy: locate, parse, cross-verify; on
// any recoverable QR failure fall through to the multi-language OCR path.
func (a *Agent) verifyAadhaar(ctx context.Context, frame image.Image, claim ClaimedIdentity, trail *AuditTrail) *VerificationVerdict {
	if claim.Identifier == "" {
		trail.Append("CLAIM_CHECK", StepFailed, map[string]any{
			"note": "claimed identifier not provided",
		})
		return &VerificationVerdict{
			Verified: false,
			Outcome:  OutcomeRejected,
			Reason:   "claimed identifier not provided",
		}
	}

	payload, err := a.locator.Locate(frame, trail)
	if err == nil {
		rec, perr := ParsePayload(payload)
		if perr == nil {
			trail.Append("QR_PARSING", StepSuccess, map[string]any{
				"extracted_last_4": lastFour(rec.Identifier),
				"has_photo":        len(rec.EmbeddedPhoto) > 0,
			})
			return a.verifier.Verify(rec, claim, false, trail)
		}

		var parseErr *ParseError
		if !errors.As(perr, &parseErr) {
			return inconclusive(perr.Error())
		}
		// Recoverable: no encoding yielded a plausible record.
		trail.Append("QR_PARSING", StepFailed, map[string]any{
			"reason":   parseErr.Reason,
			"fallback": "OCR",
		})
	} else if !errors.Is(err, ErrQRNotFound) {
		return inconclusive(err.Error())
	}

	rec, nameFound, err := a.ocr.Extract(ctx, frame, claim, trail)
	if err != nil {
		if errors.Is(err, ErrNoIdentifier) {
			return &VerificationVerdict{
				Verified: false,
				Outcome:  OutcomeRejected,
				Method:   MethodOCRFallback,
				Reason:   "unable to extract identifier",
			}
		}
		return inconclusive(err.Error())
	}
	return a.verifier.Verify(rec, claim, nameFound, trail)
}

// verifyCasteCertificate tries the certificate QR against the issuing
// registry first, then falls back to the regional keyword check.
func (a *Agent) verifyCasteCertificate(ctx context.Context, frame image.Image, claim ClaimedIdentity, trail *AuditTrail) *VerificationVerdict {
	payload, err := a.locator.Locate(frame, trail)
	if err == nil {
		ok, rerr := a.registry.VerifyCertificate(ctx, payload, DocumentCasteCertificate)
		if rerr != nil {
			trail.Append("REGISTRY_CHECK", StepError, map[string]any{"error": rerr.Error()})
		} else if ok {
			trail.Append("REGISTRY_CHECK", StepSuccess, nil)
			return &VerificationVerdict{
				Verified:      true,
				Outcome:       OutcomeVerified,
				Confidence:    certificateQRConfidence,
				Method:        MethodKeywordMatch,
				MatchedFields: []string{"registry_qr"},
			}
		} else {
			trail.Append("REGISTRY_CHECK", StepFailed, nil)
		}
	}
	return a.keywords.VerifyCaste(ctx, frame, claim, trail)
}
