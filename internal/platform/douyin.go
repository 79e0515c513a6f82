package platform

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/jonesrussell/gosocial/internal/config"
	"github.com/jonesrussell/gosocial/internal/logger"
	"github.com/jonesrussell/gosocial/internal/models"
)

const (
	douyinUnknownBlogger = "Unknown Douyin User"
	douyinTitleSuffix    = " - 抖音"
	douyinDefaultTitle   = "Douyin Video"
)

var (
	douyinUserPattern  = regexp.MustCompile(`^(https?://)?(www\.)?douyin\.com/user/[\w\-]+.*$`)
	douyinShortPattern = regexp.MustCompile(`^@[\w\-]+$`)
)

// Douyin scrapes the server-rendered profile page. The canonical key is the
// resolved profile URL. Post bodies and timestamps are unavailable without
// client-side rendering: bodies stay empty and publish time is the fetch
// time, an explicit placeholder.
type Douyin struct {
	cfg     config.PlatformConfig
	client  *http.Client
	limiter *rate.Limiter
	logger  logger.Logger
	now     func() time.Time
}

func NewDouyin(cfg config.PlatformConfig, client *http.Client, log logger.Logger) *Douyin {
	return &Douyin{
		cfg:     cfg,
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.RequestsPerSecond),
		logger:  log,
		now:     time.Now,
	}
}

func (d *Douyin) Platform() string {
	return models.PlatformDouyin
}

func (d *Douyin) ValidateIdentifier(identifier string) bool {
	return douyinUserPattern.MatchString(identifier) || douyinShortPattern.MatchString(identifier)
}

func (d *Douyin) ResolveIdentifier(identifier string) (string, error) {
	if douyinUserPattern.MatchString(identifier) {
		if strings.HasPrefix(identifier, "http") {
			return identifier, nil
		}
		return "https://" + identifier, nil
	}

	if douyinShortPattern.MatchString(identifier) {
		return "https://www.douyin.com/user/" + strings.TrimPrefix(identifier, "@"), nil
	}

	return "", fmt.Errorf("%w: %q is not a douyin profile URL or @handle", models.ErrInvalidIdentifier, identifier)
}

func (d *Douyin) FetchContent(ctx context.Context, key string, limit int) []models.Content {
	doc, err := d.fetchPage(ctx, key)
	if err != nil {
		d.logger.Warn("Failed to fetch douyin profile page",
			logger.String("url", key),
			logger.Error(err),
		)
		return nil
	}

	bloggerName := extractDouyinName(doc)
	fetchedAt := d.now()

	contents := make([]models.Content, 0, limit)
	doc.Find("a[href*='/video/']").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if len(contents) >= limit {
			return false
		}
		contents = append(contents, d.normalize(sel, bloggerName, key, fetchedAt))
		return true
	})
	return contents
}

func (d *Douyin) normalize(sel *goquery.Selection, bloggerName, userURL string, fetchedAt time.Time) models.Content {
	href := sel.AttrOr("href", "")
	videoURL := href
	if !strings.HasPrefix(href, "http") {
		videoURL = "https://www.douyin.com" + href
	}

	title := strings.TrimSpace(sel.Text())
	if title == "" {
		title = sel.AttrOr("title", "")
	}
	if title == "" {
		title = douyinDefaultTitle
	}

	return models.Content{
		Platform:    d.Platform(),
		BloggerName: bloggerName,
		BloggerURL:  userURL,
		Title:       title,
		Body:        "", // unavailable without client-side rendering
		ContentURL:  videoURL,
		PublishTime: fetchedAt, // placeholder, see package doc
	}
}

func (d *Douyin) BloggerName(ctx context.Context, key string) string {
	doc, err := d.fetchPage(ctx, key)
	if err != nil {
		d.logger.Warn("Failed to fetch douyin profile page",
			logger.String("url", key),
			logger.Error(err),
		)
		return douyinUnknownBlogger
	}
	return extractDouyinName(doc)
}

func (d *Douyin) fetchPage(ctx context.Context, url string) (*goquery.Document, error) {
	body, err := fetchURL(ctx, d.client, d.limiter, url, map[string]string{
		"User-Agent": d.cfg.UserAgent,
	})
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}
	return doc, nil
}

// extractDouyinName pulls the display name out of the page title, which has
// the shape "<name> - 抖音".
func extractDouyinName(doc *goquery.Document) string {
	title := doc.Find("title").First().Text()
	if name, _, found := strings.Cut(title, douyinTitleSuffix); found && name != "" {
		return name
	}
	return douyinUnknownBlogger
}
