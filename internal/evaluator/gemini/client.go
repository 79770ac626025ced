// Package gemini adapts the Google GenAI SDK to the evaluator Client
// interface.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/resumeroast/resumeroast/internal/evaluator"
)

const (
	defaultModel      = "gemini-2.0-flash"
	defaultMaxRetries = 3

	// The cap keeps a quota backoff from stalling a scoring request that
	// has its own deadline.
	maxQuotaDelay = 30 * time.Second

	temperature     = 0.1
	topP            = 0.9
	maxOutputTokens = 4000
)

var sleep = time.Sleep

// Config carries the Gemini backend settings.
type Config struct {
	APIKey     string
	Model      string
	MaxRetries int
}

type caller interface {
	generateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type sdkCaller struct {
	client *genai.Client
}

func (s *sdkCaller) generateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return s.client.Models.GenerateContent(ctx, model, contents, config)
}

// Client calls the Gemini API with bounded retries on temporary failures.
type Client struct {
	caller     caller
	model      string
	maxRetries int
	logger     *zap.Logger
}

func NewClient(ctx context.Context, cfg Config, log *zap.Logger) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	sdk, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	retries := cfg.MaxRetries
	if retries <= 0 {
		retries = defaultMaxRetries
	}

	return &Client{
		caller:     &sdkCaller{client: sdk},
		model:      model,
		maxRetries: retries,
		logger:     log,
	}, nil
}

func (c *Client) Model() string { return c.model }

// Evaluate implements evaluator.Client.
func (c *Client) Evaluate(ctx context.Context, prompt string) (*evaluator.Reply, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, errors.New("prompt must not be empty")
	}

	config := &genai.GenerateContentConfig{
		Temperature:     ptrFloat32(temperature),
		TopP:            ptrFloat32(topP),
		MaxOutputTokens: maxOutputTokens,
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		resp, err := c.caller.generateContent(ctx, c.model, genai.Text(prompt), config)
		if err == nil {
			return c.buildReply(resp)
		}
		lastErr = err

		delay, retryable := retryDelay(err, attempt)
		if !retryable || attempt == c.maxRetries {
			break
		}

		c.logger.Warn("gemini call failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
		sleep(delay)
		if ctx.Err() != nil {
			lastErr = ctx.Err()
			break
		}
	}

	return nil, fmt.Errorf("generate content: %w", lastErr)
}

func (c *Client) buildReply(resp *genai.GenerateContentResponse) (*evaluator.Reply, error) {
	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	text := strings.TrimSpace(builder.String())
	if text == "" {
		return nil, errors.New("gemini api returned empty response")
	}

	reply := &evaluator.Reply{Text: text, Model: c.model}
	if resp.UsageMetadata != nil {
		reply.PromptTokens = resp.UsageMetadata.PromptTokenCount
		reply.CompletionTokens = resp.UsageMetadata.CandidatesTokenCount
	}

	return reply, nil
}

// retryDelay decides whether err is worth another attempt and how long to
// wait first. Quota errors that name a delay longer than maxQuotaDelay are
// treated as permanent.
func retryDelay(err error, attempt int) (time.Duration, bool) {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return 0, false
	}

	switch {
	case apiErr.Code == http.StatusTooManyRequests:
		if delay, ok := quotaDelay(apiErr.Message); ok {
			if delay > maxQuotaDelay {
				return 0, false
			}
			return delay, true
		}
		return backoff(attempt), true
	case apiErr.Code >= http.StatusInternalServerError:
		return backoff(attempt), true
	}

	return 0, false
}

func backoff(attempt int) time.Duration {
	return time.Duration(attempt) * time.Second
}

var quotaDelayRe = regexp.MustCompile(`(?i)retry(?:\s+after|\s+in)?\s+(\d+(?:\.\d+)?)\s*s`)

func quotaDelay(message string) (time.Duration, bool) {
	m := quotaDelayRe.FindStringSubmatch(message)
	if m == nil {
		return 0, false
	}
	secs, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return time.Duration(secs * float64(time.Second)), true
}

func ptrFloat32(v float32) *float32 { return &v }
