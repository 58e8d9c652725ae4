package engines

import (
	"context"

	"fairclaim/portal-backend/internal/verification"
)

// MockRegistryClient stands in for the government registry (API Setu) until
// production onboarding completes. It accepts any substantial certificate
// payload.
//
// TODO(api-setu): replace with the real API Setu client once the
// department's consumer key is issued.
type MockRegistryClient struct{}

func NewMockRegistryClient() *MockRegistryClient { return &MockRegistryClient{} }

func (c *MockRegistryClient) VerifyCertificate(ctx context.Context, payload []byte, docType verification.DocumentType) (bool, error) {
	return len(payload) > 50, nil
}

// Default wires the production capability set.
func Default(transliterationEndpoint string) verification.Engines {
	return verification.Engines{
		Rasterizer:     NewFitzRasterizer(),
		Decoder:        NewZXingDecoder(),
		Detector:       NewQuircDetector(),
		Recognizer:     NewTesseractRecognizer(),
		Transliterator: NewHTTPTransliterator(transliterationEndpoint),
		Registry:       NewMockRegistryClient(),
	}
}
