// Package narrative generates the DDR prose from merged inspection data via
// the Gemini API, with an optional validation pass that cross-checks the
// generated report against its source data.
package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// Client calls the Gemini generateContent API.
type Client struct {
	apiKey     string
	model      string
	httpClient *http.Client
	limiter    *rate.Limiter

	// Stats collects latency samples for every API call.
	Stats *Stats
}

// NewClient builds a Gemini client. rpm caps outgoing requests per minute;
// zero or negative disables the limit.
func NewClient(apiKey, model string, rpm int) *Client {
	if model == "" {
		model = DefaultModel
	}
	limit := rate.Inf
	if rpm > 0 {
		limit = rate.Every(time.Minute / time.Duration(rpm))
	}
	return &Client{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		limiter: rate.NewLimiter(limit, 1),
		Stats:   NewStats(time.Hour),
	}
}

// Model reports the configured model name.
func (c *Client) Model() string {
	return c.model
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
	TopP            float64 `json:"topP,omitempty"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent   `json:"system_instruction,omitempty"`
	Contents          []geminiContent  `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// RetryableError indicates a transient failure that can be retried.
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable error (status %d): %s", e.StatusCode, truncate(e.Message, 200))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func (c *Client) generate(ctx context.Context, prompt string, cfg generationConfig, op string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	reqBody := geminiRequest{
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: systemPrompt}},
		},
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: cfg,
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent", c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("gemini api: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	c.Stats.Record(op, time.Since(start).Milliseconds())
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return "", &RetryableError{
			StatusCode: resp.StatusCode,
			Message:    string(respBody),
		}
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini api status %d: %s", resp.StatusCode, string(respBody))
	}

	var apiResp geminiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if apiResp.Error != nil {
		return "", fmt.Errorf("gemini error: %s: %s", apiResp.Error.Status, apiResp.Error.Message)
	}
	if len(apiResp.Candidates) == 0 || len(apiResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from gemini")
	}

	var text string
	for _, p := range apiResp.Candidates[0].Content.Parts {
		text += p.Text
	}
	return text, nil
}

// Metadata records provenance for a generated report.
type Metadata struct {
	GeneratedAt       string  `json:"generated_at"`
	Model             string  `json:"model"`
	GenerationSeconds float64 `json:"generation_time_seconds"`
	ValidationSeconds float64 `json:"validation_time_seconds,omitempty"`
	InputChars        int     `json:"input_chars"`
	OutputChars       int     `json:"output_chars"`
}

// Result is a generated DDR, its optional validation critique, and metadata.
type Result struct {
	Report     string   `json:"report"`
	Validation string   `json:"validation,omitempty"`
	Metadata   Metadata `json:"metadata"`
}

// GenerateDDR runs the main generation call and, when validate is set, a
// second pass that critiques the output against the source data. If the
// validation call fails the report itself is still returned alongside the
// error so callers can surface a partial result.
func (c *Client) GenerateDDR(ctx context.Context, mergedText string, validate bool) (*Result, error) {
	start := time.Now()
	report, err := c.generate(ctx, BuildGenerationPrompt(mergedText), generationConfig{
		Temperature:     0.3,
		MaxOutputTokens: 8000,
		TopP:            0.9,
	}, "generate")
	if err != nil {
		return nil, err
	}

	res := &Result{
		Report: report,
		Metadata: Metadata{
			GeneratedAt:       time.Now().Format(time.RFC3339),
			Model:             c.model,
			GenerationSeconds: roundSeconds(time.Since(start)),
			InputChars:        len(mergedText),
			OutputChars:       len(report),
		},
	}

	if validate {
		valStart := time.Now()
		critique, err := c.generate(ctx, BuildValidationPrompt(mergedText, report), generationConfig{
			Temperature:     0.2,
			MaxOutputTokens: 2000,
		}, "validate")
		res.Metadata.ValidationSeconds = roundSeconds(time.Since(valStart))
		if err != nil {
			return res, fmt.Errorf("validation pass: %w", err)
		}
		res.Validation = critique
	}

	return res, nil
}

func roundSeconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*10) / 10
}

// Close releases resources.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
