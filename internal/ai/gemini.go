package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	// DefaultModel is the Gemini model used for the site assistant.
	DefaultModel = "gemini-2.5-flash"
)

var ErrEmptyResponse = errors.New("gemini returned no candidates")

// GeminiClient is a thin JSON client for the Gemini generateContent API.
type GeminiClient struct {
	BaseURL string
	Model   string
	apiKey  string
	HTTP    *http.Client
}

func NewGeminiClient(apiKey string) *GeminiClient {
	return &GeminiClient{
		BaseURL: defaultBaseURL,
		Model:   DefaultModel,
		apiKey:  apiKey,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// GenerateContent sends the prompt and returns the first candidate's text.
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.BaseURL, c.Model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	defer resp.Body.Close()

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("gemini decode: %w", err)
	}
	if resp.StatusCode >= 400 {
		if out.Error != nil {
			return "", fmt.Errorf("gemini error (status %d): %s", resp.StatusCode, out.Error.Message)
		}
		return "", fmt.Errorf("gemini error (status %d)", resp.StatusCode)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}

	return out.Candidates[0].Content.Parts[0].Text, nil
}
