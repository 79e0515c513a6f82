package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/jonesrussell/gosocial/internal/config"
	"github.com/jonesrussell/gosocial/internal/logger"
	"github.com/jonesrussell/gosocial/internal/models"
)

const (
	bilibiliMaxPageSize    = 50
	bilibiliUnknownBlogger = "Unknown Bilibili User"
)

var bilibiliUserPattern = regexp.MustCompile(`^(\d+|space\.bilibili\.com/\d+)$`)

// Bilibili ingests videos through the public space REST API. The canonical
// key is the numeric UID.
type Bilibili struct {
	cfg     config.PlatformConfig
	client  *http.Client
	limiter *rate.Limiter
	logger  logger.Logger
}

func NewBilibili(cfg config.PlatformConfig, client *http.Client, log logger.Logger) *Bilibili {
	return &Bilibili{
		cfg:     cfg,
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.RequestsPerSecond),
		logger:  log,
	}
}

func (b *Bilibili) Platform() string {
	return models.PlatformBilibili
}

func (b *Bilibili) ValidateIdentifier(identifier string) bool {
	return bilibiliUserPattern.MatchString(identifier)
}

func (b *Bilibili) ResolveIdentifier(identifier string) (string, error) {
	if uid := strings.TrimPrefix(identifier, "space.bilibili.com/"); isDigits(uid) {
		return uid, nil
	}
	return "", fmt.Errorf("%w: %q is not a bilibili UID or space URL", models.ErrInvalidIdentifier, identifier)
}

type bilibiliVideo struct {
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Bvid        string `json:"bvid"`
	Play        int    `json:"play"`
	Favorites   int    `json:"favorites"`
	Comment     int    `json:"comment"`
	Created     int64  `json:"created"`
}

type bilibiliVideoList struct {
	Data struct {
		List struct {
			VList []json.RawMessage `json:"vlist"`
		} `json:"list"`
	} `json:"data"`
}

type bilibiliUserInfo struct {
	Data struct {
		Name string `json:"name"`
	} `json:"data"`
}

func (b *Bilibili) FetchContent(ctx context.Context, key string, limit int) []models.Content {
	pageSize := min(limit, bilibiliMaxPageSize)
	url := fmt.Sprintf("%s/x/space/arc/search?mid=%s&ps=%d", b.cfg.BaseURL, key, pageSize)

	body, err := fetchURL(ctx, b.client, b.limiter, url, b.headers())
	if err != nil {
		b.logger.Warn("Failed to fetch bilibili videos",
			logger.String("uid", key),
			logger.Error(err),
		)
		return nil
	}

	var list bilibiliVideoList
	if err := json.Unmarshal(body, &list); err != nil {
		b.logger.Warn("Failed to parse bilibili video list",
			logger.String("uid", key),
			logger.Error(err),
		)
		return nil
	}

	contents := make([]models.Content, 0, len(list.Data.List.VList))
	for _, raw := range list.Data.List.VList {
		if len(contents) >= limit {
			break
		}

		var video bilibiliVideo
		if err := json.Unmarshal(raw, &video); err != nil {
			b.logger.Warn("Skipping unparseable bilibili video",
				logger.String("uid", key),
				logger.Error(err),
			)
			continue
		}

		contents = append(contents, b.normalize(video, key))
	}
	return contents
}

func (b *Bilibili) normalize(video bilibiliVideo, uid string) models.Content {
	author := video.Author
	if author == "" {
		author = "Unknown"
	}

	return models.Content{
		Platform:    b.Platform(),
		BloggerName: author,
		BloggerURL:  "https://space.bilibili.com/" + uid,
		Title:       video.Title,
		Body:        video.Description,
		ContentURL:  "https://www.bilibili.com/video/" + video.Bvid,
		Views:       models.IntPtr(video.Play),
		Likes:       models.IntPtr(video.Favorites),
		Comments:    models.IntPtr(video.Comment),
		PublishTime: time.Unix(video.Created, 0),
	}
}

func (b *Bilibili) BloggerName(ctx context.Context, key string) string {
	url := b.cfg.BaseURL + "/x/space/acc/info?mid=" + key

	body, err := fetchURL(ctx, b.client, b.limiter, url, b.headers())
	if err != nil {
		b.logger.Warn("Failed to fetch bilibili user info",
			logger.String("uid", key),
			logger.Error(err),
		)
		return bilibiliUnknownBlogger
	}

	var info bilibiliUserInfo
	if err := json.Unmarshal(body, &info); err != nil || info.Data.Name == "" {
		return bilibiliUnknownBlogger
	}
	return info.Data.Name
}

func (b *Bilibili) headers() map[string]string {
	return map[string]string{"User-Agent": b.cfg.UserAgent}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	if _, err := strconv.ParseUint(s, 10, 64); err != nil {
		return false
	}
	return true
}
