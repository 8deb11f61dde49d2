package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/cvtools/cvmatch/internal/logger"
	"github.com/cvtools/cvmatch/internal/utils"
)

const defaultModel = "gemini-2.0-flash"

// Generator issues prompts to the Gemini API and returns raw text responses.
type Generator struct {
	client       *genai.Client
	modelName    string
	maxRetries   int
	maxLogLength int
	logger       *zap.Logger
}

type GeneratorConfig struct {
	APIKey       string
	Model        string
	MaxRetries   int
	MaxLogLength int
}

func NewGenerator(ctx context.Context, cfg GeneratorConfig, log *zap.Logger) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: api key is empty")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	return &Generator{
		client:       client,
		modelName:    model,
		maxRetries:   cfg.MaxRetries,
		maxLogLength: cfg.MaxLogLength,
		logger:       logger.WithAI(log, "gemini", model),
	}, nil
}

// Generate sends the prompt and returns the concatenated text parts of the
// response. Transient failures are retried with a linear backoff.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	g.logger.Debug("sending prompt", zap.String("prompt", utils.TruncateForLog(prompt, g.maxLogLength)))

	var lastErr error
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if attempt > 0 {
			if err := utils.WaitFor(ctx, time.Duration(attempt)*time.Second); err != nil {
				return "", err
			}
			g.logger.Warn("retrying generate", zap.Int("attempt", attempt), zap.Error(lastErr))
		}

		resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), nil)
		if err != nil {
			lastErr = err
			continue
		}

		text := collectText(resp)
		if text == "" {
			lastErr = fmt.Errorf("gemini: empty response")
			continue
		}

		g.logger.Debug("received response", zap.String("response", utils.TruncateForLog(text, g.maxLogLength)))
		return text, nil
	}

	return "", fmt.Errorf("gemini: generate failed after %d attempts: %w", g.maxRetries+1, lastErr)
}

func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part == nil {
				continue
			}
			sb.WriteString(part.Text)
		}
	}

	return strings.TrimSpace(sb.String())
}
