package engines

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPTransliterator calls an external transliteration API. Network
// failures degrade to the original text so a flaky service never blocks
// verification.
type HTTPTransliterator struct {
	endpoint string
	client   *http.Client
}

func NewHTTPTransliterator(endpoint string) *HTTPTransliterator {
	return &HTTPTransliterator{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

type transliterateRequest struct {
	Text         string `json:"text"`
	TargetScript string `json:"target_script"`
}

type transliterateResponse struct {
	Candidates []string `json:"candidates"`
}

func (t *HTTPTransliterator) Transliterate(ctx context.Context, text, targetScript string) ([]string, error) {
	if t.endpoint == "" {
		return []string{text}, nil
	}

	body, err := json.Marshal(transliterateRequest{Text: text, TargetScript: targetScript})
	if err != nil {
		return []string{text}, nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		return []string{text}, nil
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return []string{text}, fmt.Errorf("transliteration request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return []string{text}, fmt.Errorf("transliteration status %d", resp.StatusCode)
	}

	var out transliterateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return []string{text}, fmt.Errorf("transliteration response: %w", err)
	}
	if len(out.Candidates) == 0 {
		return []string{text}, nil
	}
	return out.Candidates, nil
}
