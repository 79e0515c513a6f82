package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/gosocial/internal/models"
)

func TestContentAnalysisRequest_ApplyDefaults(t *testing.T) {
	req := &models.ContentAnalysisRequest{
		Platform:          "bilibili",
		BloggerIdentifier: "12345",
	}
	req.ApplyDefaults()

	assert.Equal(t, 10, req.Limit)
	assert.True(t, req.WantsAnalysis())
}

func TestContentAnalysisRequest_ApplyDefaults_KeepsExplicitValues(t *testing.T) {
	include := false
	req := &models.ContentAnalysisRequest{
		Platform:          "weibo",
		BloggerIdentifier: "12345",
		Limit:             5,
		IncludeAnalysis:   &include,
	}
	req.ApplyDefaults()

	assert.Equal(t, 5, req.Limit)
	assert.False(t, req.WantsAnalysis())
}

func TestContent_Engagement(t *testing.T) {
	content := &models.Content{
		Likes:    models.IntPtr(10),
		Comments: models.IntPtr(5),
	}
	assert.Equal(t, 15, content.Engagement(), "missing counters count as zero")

	empty := &models.Content{}
	assert.Equal(t, 0, empty.Engagement())
}
