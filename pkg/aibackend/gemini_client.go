// FILE: pkg/aibackend/gemini_client.go
// Thin HTTP client for the generative AI backend. Opaque to the quota core:
// it is only ever invoked after a successful quota check, and a failure here
// does not refund the consumed slot.
package aibackend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const generateContentURL = "https://generativelanguage.googleapis.com/v1/models/gemini-1.5-flash:generateContent"

// Client is what the coach service depends on; tests substitute a stub.
type Client interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	GenerateFromImage(ctx context.Context, prompt, imageBase64 string) (string, error)
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
	Parts []*geminiPart `json:"parts"`
	Role  string        `json:"role,omitempty"`
}

type geminiRequest struct {
	Contents []*geminiContent `json:"contents"`
}

type geminiCandidate struct {
	Content *geminiContent `json:"content"`
}

type geminiResponse struct {
	Candidates []*geminiCandidate `json:"candidates"`
}

type GeminiClient struct {
	apiKey     string
	httpClient *http.Client
}

func NewGeminiClient(apiKey string) *GeminiClient {
	return &GeminiClient{
		apiKey:     apiKey,
		httpClient: &http.Client{},
	}
}

func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, []*geminiPart{{Text: prompt}})
}

func (c *GeminiClient) GenerateFromImage(ctx context.Context, prompt, imageBase64 string) (string, error) {
	parts := []*geminiPart{
		{Text: prompt},
		{InlineData: &geminiInlineData{MimeType: "image/jpeg", Data: imageBase64}},
	}
	return c.generate(ctx, parts)
}

func (c *GeminiClient) generate(ctx context.Context, parts []*geminiPart) (string, error) {
	payload := geminiRequest{
		Contents: []*geminiContent{{Parts: parts, Role: "user"}},
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", generateContentURL, bytes.NewBuffer(payloadJson))
	if err != nil {
		return "", err
	}

	req.Header.Set("x-goog-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf(
			"status error, got status %d. with response body %s",
			res.StatusCode,
			string(resBody),
		)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(resBody, &parsed); err != nil {
		return "", err
	}

	if len(parsed.Candidates) == 0 || parsed.Candidates[0].Content == nil || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from AI backend")
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
