package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/amilmether/fundEd-Web/app/config"
)

const (
	geminiBaseURL      = "https://generativelanguage.googleapis.com/v1beta"
	geminiMaxRetries   = 3
	geminiInitialDelay = 1 * time.Second
)

// GeminiClient calls the hosted text-generation API. String in, string out;
// the service does no orchestration or caching around it.
type GeminiClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type geminiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// NewGeminiClient creates a client from the process AI configuration.
func NewGeminiClient(cfg config.AIConfig) *GeminiClient {
	return &GeminiClient{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: geminiBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Generate produces prose for the given prompt. An empty result with a nil
// error never occurs; failures are returned as errors.
func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	return g.generate(ctx, []geminiPart{{Text: prompt}})
}

// GenerateWithImage produces prose for a prompt plus an optional image given
// as a data URI ("data:<mimetype>;base64,<data>"). An empty imageDataURI
// falls back to a text-only call.
func (g *GeminiClient) GenerateWithImage(ctx context.Context, prompt, imageDataURI string) (string, error) {
	parts := []geminiPart{{Text: prompt}}
	if imageDataURI != "" {
		inline, err := parseDataURI(imageDataURI)
		if err != nil {
			return "", err
		}
		parts = append(parts, geminiPart{InlineData: inline})
	}
	return g.generate(ctx, parts)
}

func (g *GeminiClient) generate(ctx context.Context, parts []geminiPart) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("text generation is not configured")
	}

	body, err := json.Marshal(geminiRequest{Contents: []geminiContent{{Parts: parts}}})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, g.model)

	var lastErr error
	delay := geminiInitialDelay
	for attempt := 0; attempt < geminiMaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return "", err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("x-goog-api-key", g.apiKey)

		resp, err := g.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode == http.StatusOK {
			var parsed geminiResponse
			if err := json.Unmarshal(respBody, &parsed); err != nil {
				return "", fmt.Errorf("failed to decode response: %w", err)
			}
			if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
				return "", fmt.Errorf("model returned no candidates")
			}
			return parsed.Candidates[0].Content.Parts[0].Text, nil
		}

		var apiErr geminiError
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Error.Message != "" {
			lastErr = fmt.Errorf("api error %d: %s", resp.StatusCode, apiErr.Error.Message)
		} else {
			lastErr = fmt.Errorf("api error %d", resp.StatusCode)
		}

		// Only retry rate limits and server errors
		if resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode < 500 {
			return "", lastErr
		}
	}
	return "", fmt.Errorf("text generation failed after %d attempts: %w", geminiMaxRetries, lastErr)
}

func parseDataURI(uri string) (*geminiInlineData, error) {
	if !strings.HasPrefix(uri, "data:") {
		return nil, fmt.Errorf("invalid data URI")
	}
	rest := strings.TrimPrefix(uri, "data:")
	sep := strings.Index(rest, ";base64,")
	if sep < 0 {
		return nil, fmt.Errorf("data URI must be base64 encoded")
	}
	mimeType := rest[:sep]
	data := rest[sep+len(";base64,"):]
	if _, err := base64.StdEncoding.DecodeString(data); err != nil {
		return nil, fmt.Errorf("invalid base64 payload: %w", err)
	}
	return &geminiInlineData{MimeType: mimeType, Data: data}, nil
}
