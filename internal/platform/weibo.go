package platform

import (
	"context"
	"encoding/json"
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
	weiboUnknownBlogger = "Unknown Weibo User"
	weiboPostCardType   = 9
	weiboTitleLimit     = 100
	weiboTitleCut       = 97

	// weiboTimeLayout matches the mobile API's created_at format,
	// e.g. "Mon Mar 20 14:30:00 +0800 2023".
	weiboTimeLayout = "Mon Jan 02 15:04:05 -0700 2006"
)

var (
	weiboUserPattern = regexp.MustCompile(`^(https?://)?(m\.|www\.)?weibo\.(cn|com)/(u/)?[\w\-]+.*$`)
	weiboUIDPattern  = regexp.MustCompile(`^\d+$`)
)

// Weibo ingests posts through the mobile container API. The canonical key is
// the numeric UID.
type Weibo struct {
	cfg     config.PlatformConfig
	client  *http.Client
	limiter *rate.Limiter
	logger  logger.Logger
	now     func() time.Time
}

func NewWeibo(cfg config.PlatformConfig, client *http.Client, log logger.Logger) *Weibo {
	return &Weibo{
		cfg:     cfg,
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.RequestsPerSecond),
		logger:  log,
		now:     time.Now,
	}
}

func (w *Weibo) Platform() string {
	return models.PlatformWeibo
}

func (w *Weibo) ValidateIdentifier(identifier string) bool {
	return weiboUserPattern.MatchString(identifier) || weiboUIDPattern.MatchString(identifier)
}

func (w *Weibo) ResolveIdentifier(identifier string) (string, error) {
	if weiboUIDPattern.MatchString(identifier) {
		return identifier, nil
	}

	if weiboUserPattern.MatchString(identifier) {
		parts := strings.Split(identifier, "/")
		for i, part := range parts {
			if part == "u" && i+1 < len(parts) {
				return parts[i+1], nil
			}
		}
		// No /u/ segment: accept a trailing numeric segment.
		if last := parts[len(parts)-1]; weiboUIDPattern.MatchString(last) {
			return last, nil
		}
	}

	return "", fmt.Errorf("%w: %q is not a weibo UID or profile URL", models.ErrInvalidIdentifier, identifier)
}

// flexID decodes a JSON value that may arrive as either a string or a number.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

type weiboCard struct {
	CardType int             `json:"card_type"`
	Mblog    json.RawMessage `json:"mblog"`
}

type weiboIndex struct {
	Data struct {
		Cards    []json.RawMessage `json:"cards"`
		UserInfo struct {
			ScreenName string `json:"screen_name"`
		} `json:"userInfo"`
	} `json:"data"`
}

type weiboPost struct {
	ID             flexID `json:"id"`
	Text           string `json:"text"`
	AttitudesCount int    `json:"attitudes_count"`
	CommentsCount  int    `json:"comments_count"`
	RepostsCount   int    `json:"reposts_count"`
	CreatedAt      string `json:"created_at"`
	User           struct {
		ScreenName string `json:"screen_name"`
	} `json:"user"`
}

func (w *Weibo) FetchContent(ctx context.Context, key string, limit int) []models.Content {
	index, err := w.fetchIndex(ctx, key)
	if err != nil {
		w.logger.Warn("Failed to fetch weibo posts",
			logger.String("uid", key),
			logger.Error(err),
		)
		return nil
	}

	contents := make([]models.Content, 0, limit)
	for _, raw := range index.Data.Cards {
		if len(contents) >= limit {
			break
		}

		var card weiboCard
		if err := json.Unmarshal(raw, &card); err != nil {
			w.logger.Warn("Skipping unparseable weibo card",
				logger.String("uid", key),
				logger.Error(err),
			)
			continue
		}
		if card.CardType != weiboPostCardType {
			continue
		}

		var post weiboPost
		if err := json.Unmarshal(card.Mblog, &post); err != nil {
			w.logger.Warn("Skipping unparseable weibo post",
				logger.String("uid", key),
				logger.Error(err),
			)
			continue
		}

		contents = append(contents, w.normalize(post, key))
	}
	return contents
}

func (w *Weibo) normalize(post weiboPost, uid string) models.Content {
	bloggerName := post.User.ScreenName
	if bloggerName == "" {
		bloggerName = "Unknown"
	}

	body := stripHTML(post.Text)

	return models.Content{
		Platform:    w.Platform(),
		BloggerName: bloggerName,
		BloggerURL:  "https://m.weibo.cn/u/" + uid,
		Title:       truncateTitle(body),
		Body:        body,
		ContentURL:  "https://m.weibo.cn/status/" + string(post.ID),
		Likes:       models.IntPtr(post.AttitudesCount),
		Comments:    models.IntPtr(post.CommentsCount),
		Shares:      models.IntPtr(post.RepostsCount),
		PublishTime: w.parsePublishTime(post.CreatedAt),
	}
}

// parsePublishTime parses the mobile API timestamp. Unparseable values fall
// back to an hour before now as an explicit placeholder.
func (w *Weibo) parsePublishTime(createdAt string) time.Time {
	if createdAt != "" {
		if t, err := time.Parse(weiboTimeLayout, createdAt); err == nil {
			return t
		}
		w.logger.Debug("Could not parse weibo publish time",
			logger.String("created_at", createdAt),
		)
	}
	return w.now().Add(-time.Hour)
}

func (w *Weibo) BloggerName(ctx context.Context, key string) string {
	index, err := w.fetchIndex(ctx, key)
	if err != nil {
		w.logger.Warn("Failed to fetch weibo user info",
			logger.String("uid", key),
			logger.Error(err),
		)
		return weiboUnknownBlogger
	}
	if index.Data.UserInfo.ScreenName == "" {
		return weiboUnknownBlogger
	}
	return index.Data.UserInfo.ScreenName
}

func (w *Weibo) fetchIndex(ctx context.Context, uid string) (*weiboIndex, error) {
	url := w.cfg.BaseURL + "/api/container/getIndex?type=uid&value=" + uid

	body, err := fetchURL(ctx, w.client, w.limiter, url, map[string]string{
		"User-Agent": w.cfg.UserAgent,
		"Referer":    "https://m.weibo.cn/",
	})
	if err != nil {
		return nil, err
	}

	var index weiboIndex
	if err := json.Unmarshal(body, &index); err != nil {
		return nil, fmt.Errorf("parse index response: %w", err)
	}
	return &index, nil
}

// stripHTML reduces weibo's HTML post markup to plain text. On parse failure
// the raw markup is returned unchanged.
func stripHTML(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	return doc.Text()
}

// truncateTitle derives a title from the post body, capped at 100 runes with
// an ellipsis marker.
func truncateTitle(body string) string {
	runes := []rune(body)
	if len(runes) <= weiboTitleLimit {
		return body
	}
	return string(runes[:weiboTitleCut]) + "..."
}
