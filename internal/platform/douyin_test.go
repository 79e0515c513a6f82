package platform_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/gosocial/internal/models"
	"github.com/jonesrussell/gosocial/internal/platform"
	"github.com/jonesrussell/gosocial/internal/testhelpers"
)

func TestDouyin_ValidateIdentifier(t *testing.T) {
	adapter := platform.NewDouyin(testPlatformConfig(""), http.DefaultClient, testhelpers.NewTestLogger())

	tests := []struct {
		name       string
		identifier string
		want       bool
	}{
		{"full profile url", "https://www.douyin.com/user/MS4wLjABAAAA", true},
		{"profile url without scheme", "douyin.com/user/MS4wLjABAAAA", true},
		{"profile url with www no scheme", "www.douyin.com/user/abc-123", true},
		{"at handle", "@someuser", true},
		{"at handle with dash", "@some-user_1", true},
		{"bare username", "someuser", false},
		{"empty", "", false},
		{"at only", "@", false},
		{"other domain", "https://www.example.com/user/abc", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, adapter.ValidateIdentifier(tt.identifier))
		})
	}
}

func TestDouyin_ResolveIdentifier(t *testing.T) {
	adapter := platform.NewDouyin(testPlatformConfig(""), http.DefaultClient, testhelpers.NewTestLogger())

	tests := []struct {
		name       string
		identifier string
		want       string
		wantErr    bool
	}{
		{"full url passes through", "https://www.douyin.com/user/abc123", "https://www.douyin.com/user/abc123", false},
		{"schemeless url gains https", "www.douyin.com/user/abc123", "https://www.douyin.com/user/abc123", false},
		{"handle becomes profile url", "@someuser", "https://www.douyin.com/user/someuser", false},
		{"bare username rejected", "someuser", "", true},
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

const douyinProfilePage = `<!DOCTYPE html>
<html>
<head><title>DanceStar - 抖音</title></head>
<body>
	<a href="/video/7300000000000000001">Morning dance routine</a>
	<a href="/video/7300000000000000002" title="Street performance"></a>
	<a href="https://www.douyin.com/video/7300000000000000003"></a>
	<a href="/about">About</a>
</body>
</html>`

func TestDouyin_FetchContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(douyinProfilePage))
	}))
	defer server.Close()

	adapter := platform.NewDouyin(testPlatformConfig(server.URL), server.Client(), testhelpers.NewTestLogger())

	before := time.Now()
	contents := adapter.FetchContent(context.Background(), server.URL, 10)
	after := time.Now()

	require.Len(t, contents, 3)

	first := contents[0]
	assert.Equal(t, models.PlatformDouyin, first.Platform)
	assert.Equal(t, "DanceStar", first.BloggerName)
	assert.Equal(t, server.URL, first.BloggerURL)
	assert.Equal(t, "Morning dance routine", first.Title)
	assert.Empty(t, first.Body)
	assert.Equal(t, "https://www.douyin.com/video/7300000000000000001", first.ContentURL)
	assert.Nil(t, first.Likes)
	assert.Nil(t, first.Views)

	// title attr fallback, then the generic default
	assert.Equal(t, "Street performance", contents[1].Title)
	assert.Equal(t, "Douyin Video", contents[2].Title)

	// absolute hrefs are kept as-is
	assert.Equal(t, "https://www.douyin.com/video/7300000000000000003", contents[2].ContentURL)

	for _, c := range contents {
		assert.False(t, c.PublishTime.Before(before), "publish time should be the fetch time")
		assert.False(t, c.PublishTime.After(after), "publish time should be the fetch time")
	}
}

func TestDouyin_FetchContent_RespectsLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(douyinProfilePage))
	}))
	defer server.Close()

	adapter := platform.NewDouyin(testPlatformConfig(server.URL), server.Client(), testhelpers.NewTestLogger())

	contents := adapter.FetchContent(context.Background(), server.URL, 2)
	assert.Len(t, contents, 2)
}

func TestDouyin_FetchContent_ServerErrorReturnsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	adapter := platform.NewDouyin(testPlatformConfig(server.URL), server.Client(), testhelpers.NewTestLogger())

	contents := adapter.FetchContent(context.Background(), server.URL, 10)
	assert.Empty(t, contents)
}

func TestDouyin_BloggerName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(douyinProfilePage))
	}))
	defer server.Close()

	adapter := platform.NewDouyin(testPlatformConfig(server.URL), server.Client(), testhelpers.NewTestLogger())

	assert.Equal(t, "DanceStar", adapter.BloggerName(context.Background(), server.URL))
}

func TestDouyin_BloggerName_NoTitleSuffixReturnsPlaceholder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>Just a page</title></head><body></body></html>`))
	}))
	defer server.Close()

	adapter := platform.NewDouyin(testPlatformConfig(server.URL), server.Client(), testhelpers.NewTestLogger())

	assert.Equal(t, "Unknown Douyin User", adapter.BloggerName(context.Background(), server.URL))
}
