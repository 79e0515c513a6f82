package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/gosocial/internal/models"
)

func TestRenderPrompt(t *testing.T) {
	got := renderPrompt("Platform: {platform}, Blogger: {blogger}", map[string]string{
		"platform": "weibo",
		"blogger":  "NewsBlogger",
	})
	assert.Equal(t, "Platform: weibo, Blogger: NewsBlogger", got)
}

func TestBuildContentText(t *testing.T) {
	content := &models.Content{
		Platform: "bilibili",
		Title:    "Go concurrency patterns",
		Body:     "A walkthrough",
		Likes:    models.IntPtr(800),
		Comments: models.IntPtr(120),
		Views:    models.IntPtr(15000),
	}

	got := buildContentText(content)

	assert.Contains(t, got, "Platform: bilibili")
	assert.Contains(t, got, "Title: Go concurrency patterns")
	assert.Contains(t, got, "Content: A walkthrough")
	assert.Contains(t, got, "Likes: 800")
	assert.Contains(t, got, "Comments: 120")
	assert.Contains(t, got, "Views: 15000")
	assert.NotContains(t, got, "Shares:", "missing counters are omitted, not zeroed")
}

func TestBuildContentText_EmptyBodyOmitted(t *testing.T) {
	got := buildContentText(&models.Content{Platform: "douyin", Title: "clip"})
	assert.NotContains(t, got, "Content:")
}

func TestBuildBatchText(t *testing.T) {
	contents := []models.Content{
		{Platform: "weibo", Title: "first"},
		{Platform: "weibo", Title: "second"},
	}

	got := buildBatchText(contents, 5000)

	assert.Contains(t, got, "Title: first")
	assert.Contains(t, got, "Title: second")
	assert.Contains(t, got, "\n\n---\n\n")
}

func TestBuildBatchText_TruncatesToLimit(t *testing.T) {
	contents := []models.Content{
		{Platform: "weibo", Title: strings.Repeat("长文本", 100)},
	}

	got := buildBatchText(contents, 50)

	runes := []rune(got)
	assert.Len(t, runes, 53)
	assert.Equal(t, "...", string(runes[50:]))
}

func TestBuildPerformanceSummary(t *testing.T) {
	contents := []models.Content{
		{Title: "hit video", Likes: models.IntPtr(900), Comments: models.IntPtr(45)},
		{Title: "quiet post"},
	}

	got := buildPerformanceSummary(contents)

	lines := strings.Split(got, "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, "Title: hit video | Likes: 900 | Comments: 45", lines[0])
	assert.Equal(t, "Title: quiet post | Likes: 0 | Comments: 0", lines[1])
}
