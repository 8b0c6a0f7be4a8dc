package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/vishyyyyyyyyy/ToyoQuest/config"
	"github.com/vishyyyyyyyyy/ToyoQuest/logger"
	"github.com/vishyyyyyyyyy/ToyoQuest/utils"
)

// ErrRecommendationRequest wraps every failure toward the completion
// service, whatever the underlying cause (network, auth, quota).
var ErrRecommendationRequest = errors.New("recommendation request failed")

// generativelanguage generateContent wire format.
type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type generateContentRequest struct {
	Contents []geminiContent `json:"contents"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

// GeminiClient talks to the generative-language REST API. One request is in
// flight at a time; there is no retry and no caller-imposed timeout on the
// completion call.
type GeminiClient struct {
	cfg  *config.Config
	http *resty.Client
}

func NewGeminiClient(cfg *config.Config) *GeminiClient {
	client := resty.New()
	client.SetBaseURL(cfg.Gemini.BaseURL)
	client.SetHeader("Content-Type", "application/json")

	return &GeminiClient{cfg: cfg, http: client}
}

// GenerateContent sends a single prompt and returns the raw completion
// text.
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, []geminiContent{
		{Role: "user", Parts: []geminiPart{{Text: prompt}}},
	})
}

func (c *GeminiClient) generate(ctx context.Context, contents []geminiContent) (string, error) {
	if c.cfg.Gemini.APIKey == "" {
		return "", fmt.Errorf("%w: no API key configured, set GEMINI_API_KEY", ErrRecommendationRequest)
	}

	reqBody := generateContentRequest{Contents: contents}
	logger.Info("calling completion service", "model", c.cfg.Gemini.Model, "turns", len(contents))

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", c.cfg.Gemini.APIKey).
		SetBody(reqBody).
		Post(fmt.Sprintf("/models/%s:generateContent", c.cfg.Gemini.Model))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRecommendationRequest, err)
	}

	body := res.Body()
	logger.Info("completion service responded", "status_code", res.StatusCode(), "response_size", len(body))

	if res.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("%w: status %d - %s", ErrRecommendationRequest,
			res.StatusCode(), utils.Preview(string(body), 500))
	}

	var parsed generateContentResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrRecommendationRequest, err)
	}
	if len(parsed.Candidates) == 0 {
		return "", fmt.Errorf("%w: response contained no candidates", ErrRecommendationRequest)
	}

	var text string
	for _, p := range parsed.Candidates[0].Content.Parts {
		text += p.Text
	}

	logger.Info("completion received",
		"tokens_prompt", parsed.UsageMetadata.PromptTokenCount,
		"tokens_completion", parsed.UsageMetadata.CandidatesTokenCount,
		"finish_reason", parsed.Candidates[0].FinishReason,
		"content_preview", utils.Preview(text, 200))

	return text, nil
}
