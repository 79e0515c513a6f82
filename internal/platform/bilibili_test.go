package platform_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/gosocial/internal/config"
	"github.com/jonesrussell/gosocial/internal/models"
	"github.com/jonesrussell/gosocial/internal/platform"
	"github.com/jonesrussell/gosocial/internal/testhelpers"
)

func testPlatformConfig(baseURL string) config.PlatformConfig {
	return config.PlatformConfig{
		BaseURL:           baseURL,
		UserAgent:         "test-agent",
		RequestsPerSecond: 100,
	}
}

func TestBilibili_ValidateIdentifier(t *testing.T) {
	adapter := platform.NewBilibili(testPlatformConfig(""), http.DefaultClient, testhelpers.NewTestLogger())

	tests := []struct {
		name       string
		identifier string
		want       bool
	}{
		{"numeric uid", "123456", true},
		{"space url", "space.bilibili.com/123456", true},
		{"space url without uid", "space.bilibili.com/", false},
		{"empty", "", false},
		{"letters", "abcdef", false},
		{"full url with scheme", "https://space.bilibili.com/123456", false},
		{"negative number", "-123", false},
		{"trailing path", "space.bilibili.com/123456/video", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, adapter.ValidateIdentifier(tt.identifier))
		})
	}
}

func TestBilibili_ResolveIdentifier(t *testing.T) {
	adapter := platform.NewBilibili(testPlatformConfig(""), http.DefaultClient, testhelpers.NewTestLogger())

	tests := []struct {
		name       string
		identifier string
		want       string
		wantErr    bool
	}{
		{"numeric uid passes through", "123456", "123456", false},
		{"space url strips prefix", "space.bilibili.com/98765", "98765", false},
		{"non numeric", "abc", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := adapter.ResolveIdentifier(tt.identifier)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, models.ErrInvalidIdentifier)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBilibili_FetchContent(t *testing.T) {
	const videoList = `{
		"data": {
			"list": {
				"vlist": [
					{
						"author": "TechBlogger",
						"title": "Go concurrency patterns",
						"description": "A walkthrough of goroutines",
						"bvid": "BV1xx411c7mD",
						"play": 15000,
						"favorites": 800,
						"comment": 120,
						"created": 1700000000
					},
					{
						"author": "TechBlogger",
						"title": "Second video",
						"description": "",
						"bvid": "BV2yy522d8nE",
						"play": 500,
						"favorites": 20,
						"comment": 3,
						"created": 1700001000
					}
				]
			}
		}
	}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/x/space/arc/search", r.URL.Path)
		assert.Equal(t, "12345", r.URL.Query().Get("mid"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(videoList))
	}))
	defer server.Close()

	adapter := platform.NewBilibili(testPlatformConfig(server.URL), server.Client(), testhelpers.NewTestLogger())

	contents := adapter.FetchContent(context.Background(), "12345", 10)
	require.Len(t, contents, 2)

	first := contents[0]
	assert.Equal(t, models.PlatformBilibili, first.Platform)
	assert.Equal(t, "TechBlogger", first.BloggerName)
	assert.Equal(t, "https://space.bilibili.com/12345", first.BloggerURL)
	assert.Equal(t, "Go concurrency patterns", first.Title)
	assert.Equal(t, "A walkthrough of goroutines", first.Body)
	assert.Equal(t, "https://www.bilibili.com/video/BV1xx411c7mD", first.ContentURL)
	require.NotNil(t, first.Views)
	assert.Equal(t, 15000, *first.Views)
	require.NotNil(t, first.Likes)
	assert.Equal(t, 800, *first.Likes)
	require.NotNil(t, first.Comments)
	assert.Equal(t, 120, *first.Comments)
	assert.Equal(t, int64(1700000000), first.PublishTime.Unix())
	assert.Nil(t, first.Shares)
}

func TestBilibili_FetchContent_RespectsLimit(t *testing.T) {
	const videoList = `{
		"data": {
			"list": {
				"vlist": [
					{"author": "A", "title": "one", "bvid": "BV1", "created": 1700000000},
					{"author": "A", "title": "two", "bvid": "BV2", "created": 1700000001},
					{"author": "A", "title": "three", "bvid": "BV3", "created": 1700000002}
				]
			}
		}
	}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(videoList))
	}))
	defer server.Close()

	adapter := platform.NewBilibili(testPlatformConfig(server.URL), server.Client(), testhelpers.NewTestLogger())

	contents := adapter.FetchContent(context.Background(), "12345", 2)
	assert.Len(t, contents, 2)
}

func TestBilibili_FetchContent_EmptyAuthorFallsBack(t *testing.T) {
	const videoList = `{
		"data": {"list": {"vlist": [{"author": "", "title": "untitled", "bvid": "BV1", "created": 1700000000}]}}
	}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(videoList))
	}))
	defer server.Close()

	adapter := platform.NewBilibili(testPlatformConfig(server.URL), server.Client(), testhelpers.NewTestLogger())

	contents := adapter.FetchContent(context.Background(), "12345", 10)
	require.Len(t, contents, 1)
	assert.Equal(t, "Unknown", contents[0].BloggerName)
}

func TestBilibili_FetchContent_ServerErrorReturnsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	adapter := platform.NewBilibili(testPlatformConfig(server.URL), server.Client(), testhelpers.NewTestLogger())

	contents := adapter.FetchContent(context.Background(), "12345", 10)
	assert.Empty(t, contents)
}

func TestBilibili_FetchContent_MalformedJSONReturnsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	adapter := platform.NewBilibili(testPlatformConfig(server.URL), server.Client(), testhelpers.NewTestLogger())

	contents := adapter.FetchContent(context.Background(), "12345", 10)
	assert.Empty(t, contents)
}

func TestBilibili_BloggerName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/x/space/acc/info", r.URL.Path)
		assert.Equal(t, "12345", r.URL.Query().Get("mid"))
		_, _ = w.Write([]byte(`{"data": {"name": "TechBlogger"}}`))
	}))
	defer server.Close()

	adapter := platform.NewBilibili(testPlatformConfig(server.URL), server.Client(), testhelpers.NewTestLogger())

	assert.Equal(t, "TechBlogger", adapter.BloggerName(context.Background(), "12345"))
}

func TestBilibili_BloggerName_FailureReturnsPlaceholder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	adapter := platform.NewBilibili(testPlatformConfig(server.URL), server.Client(), testhelpers.NewTestLogger())

	assert.Equal(t, "Unknown Bilibili User", adapter.BloggerName(context.Background(), "12345"))
}
