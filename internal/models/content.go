// Package models defines the data structures shared across the gosocial service.
package models

import (
	"time"
)

// Platform keys for the supported sources.
const (
	PlatformBilibili = "bilibili"
	PlatformDouyin   = "douyin"
	PlatformWeibo    = "weibo"
)

// Content is the normalized record for one social media post or video.
// Engagement counters are pointers: a nil counter means the source did not
// report it, which is stored as NULL rather than coerced to zero.
type Content struct {
	ID          string    `json:"id" db:"id"`
	Platform    string    `json:"platform" db:"platform"`
	BloggerName string    `json:"bloggerName" db:"blogger_name"`
	BloggerURL  string    `json:"bloggerUrl" db:"blogger_url"`
	Title       string    `json:"title" db:"title"`
	Body        string    `json:"content" db:"body"`
	ContentURL  string    `json:"contentUrl,omitempty" db:"content_url"`
	Likes       *int      `json:"likes,omitempty" db:"likes"`
	Comments    *int      `json:"comments,omitempty" db:"comments"`
	Shares      *int      `json:"shares,omitempty" db:"shares"`
	Views       *int      `json:"views,omitempty" db:"views"`
	Analysis    string    `json:"aiAnalysis,omitempty" db:"ai_analysis"`
	PublishTime time.Time `json:"publishTime" db:"publish_time"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// Engagement returns likes + comments + shares, counting missing values as zero.
func (c *Content) Engagement() int {
	return intOrZero(c.Likes) + intOrZero(c.Comments) + intOrZero(c.Shares)
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

// IntPtr returns a pointer to v. Convenience for building engagement counters.
func IntPtr(v int) *int {
	return &v
}
