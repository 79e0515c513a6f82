package analysis

import (
	"fmt"
	"strings"

	"github.com/jonesrussell/gosocial/internal/models"
)

const contentAnalysisPrompt = `You are an AI agent specialized in analyzing social media content from Chinese platforms.
Please analyze the following content and provide insights about:
1. Content theme and main topics
2. Sentiment analysis
3. Popular trends or hashtags
4. Engagement patterns
5. Key insights for content creators

Content to analyze: {content}
`

const batchAnalysisPrompt = `You are an AI agent specialized in analyzing social media content from Chinese platforms.
Please analyze the following batch of content and provide comprehensive insights including:

1. Overall content themes and trends
2. Sentiment distribution across posts
3. Popular hashtags and topics
4. Engagement patterns analysis
5. Content creator performance insights
6. Recommendations for content strategy

Content batch to analyze:
{content}

Please provide a structured analysis with clear sections and actionable insights.
`

const recommendationPrompt = `You are an AI consultant specializing in social media strategy for Chinese platforms.
Based on the following content performance data, provide specific recommendations for the blogger.

Platform: {platform}
Blogger: {blogger}

Recent content performance:
{contentSummary}

Please provide:
1. Content strategy recommendations
2. Optimal posting times and frequency
3. Trending topics to explore
4. Engagement improvement tactics
5. Platform-specific optimization tips
`

const batchSeparator = "\n\n---\n\n"

// renderPrompt substitutes {name} placeholders in a template.
func renderPrompt(template string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// buildContentText flattens one record into the prompt representation.
// Counters the source did not report are omitted rather than shown as zero.
func buildContentText(content *models.Content) string {
	var text strings.Builder
	text.WriteString("Platform: " + content.Platform + "\n")
	text.WriteString("Title: " + content.Title + "\n")

	if content.Body != "" {
		text.WriteString("Content: " + content.Body + "\n")
	}

	text.WriteString("Engagement: ")
	if content.Likes != nil {
		fmt.Fprintf(&text, "Likes: %d ", *content.Likes)
	}
	if content.Comments != nil {
		fmt.Fprintf(&text, "Comments: %d ", *content.Comments)
	}
	if content.Shares != nil {
		fmt.Fprintf(&text, "Shares: %d ", *content.Shares)
	}
	if content.Views != nil {
		fmt.Fprintf(&text, "Views: %d", *content.Views)
	}

	return text.String()
}

// buildBatchText joins record texts, truncated to maxLen characters so the
// prompt stays inside the configured content budget.
func buildBatchText(contents []models.Content, maxLen int) string {
	parts := make([]string, 0, len(contents))
	for i := range contents {
		parts = append(parts, buildContentText(&contents[i]))
	}
	joined := strings.Join(parts, batchSeparator)

	runes := []rune(joined)
	if len(runes) > maxLen {
		return string(runes[:maxLen]) + "..."
	}
	return joined
}

// buildPerformanceSummary is the compact per-record line used by the
// recommendation prompt.
func buildPerformanceSummary(contents []models.Content) string {
	lines := make([]string, 0, len(contents))
	for i := range contents {
		c := &contents[i]
		likes, comments := 0, 0
		if c.Likes != nil {
			likes = *c.Likes
		}
		if c.Comments != nil {
			comments = *c.Comments
		}
		lines = append(lines, fmt.Sprintf("Title: %s | Likes: %d | Comments: %d", c.Title, likes, comments))
	}
	return strings.Join(lines, "\n")
}
