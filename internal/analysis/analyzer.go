// Package analysis implements the LLM analysis gateway on the Anthropic
// Messages API.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/jonesrussell/gosocial/internal/config"
	"github.com/jonesrussell/gosocial/internal/logger"
	"github.com/jonesrussell/gosocial/internal/models"
)

// ErrAnalysisUnavailable wraps gateway failures. Callers degrade to
// failure-note strings rather than propagating it to the client.
var ErrAnalysisUnavailable = errors.New("analysis unavailable")

// Analyzer is the text-completion boundary used by the orchestrator.
type Analyzer interface {
	AnalyzeContent(ctx context.Context, content *models.Content) (string, error)
	AnalyzeBatch(ctx context.Context, contents []models.Content) (string, error)
	Recommendations(ctx context.Context, platform, bloggerName string, contents []models.Content) (string, error)
}

// ClaudeAnalyzer implements Analyzer with the Anthropic SDK.
type ClaudeAnalyzer struct {
	client           anthropic.Client
	model            anthropic.Model
	maxTokens        int64
	maxContentLength int
	logger           logger.Logger
}

func NewClaudeAnalyzer(cfg config.AnalysisConfig, maxContentLength int, log logger.Logger) *ClaudeAnalyzer {
	return &ClaudeAnalyzer{
		client: anthropic.NewClient(
			option.WithAPIKey(cfg.APIKey),
			option.WithRequestTimeout(cfg.Timeout),
		),
		model:            anthropic.Model(cfg.Model),
		maxTokens:        int64(cfg.MaxTokens),
		maxContentLength: maxContentLength,
		logger:           log,
	}
}

func (a *ClaudeAnalyzer) AnalyzeContent(ctx context.Context, content *models.Content) (string, error) {
	prompt := renderPrompt(contentAnalysisPrompt, map[string]string{
		"content": buildContentText(content),
	})
	return a.complete(ctx, prompt)
}

func (a *ClaudeAnalyzer) AnalyzeBatch(ctx context.Context, contents []models.Content) (string, error) {
	prompt := renderPrompt(batchAnalysisPrompt, map[string]string{
		"content": buildBatchText(contents, a.maxContentLength),
	})
	return a.complete(ctx, prompt)
}

func (a *ClaudeAnalyzer) Recommendations(ctx context.Context, platform, bloggerName string, contents []models.Content) (string, error) {
	prompt := renderPrompt(recommendationPrompt, map[string]string{
		"platform":       platform,
		"blogger":        bloggerName,
		"contentSummary": buildPerformanceSummary(contents),
	})
	return a.complete(ctx, prompt)
}

func (a *ClaudeAnalyzer) complete(ctx context.Context, prompt string) (string, error) {
	message, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     a.model,
		MaxTokens: a.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAnalysisUnavailable, err)
	}

	var text strings.Builder
	for _, block := range message.Content {
		text.WriteString(block.Text)
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("%w: empty completion", ErrAnalysisUnavailable)
	}
	return text.String(), nil
}
