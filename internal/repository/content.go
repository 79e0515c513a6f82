// Package repository implements the content store on PostgreSQL.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/jonesrussell/gosocial/internal/logger"
	"github.com/jonesrussell/gosocial/internal/models"
)

const uniqueViolation = "23505"

const contentColumns = `id, platform, blogger_name, blogger_url, title, body,
	content_url, likes, comments, shares, views, ai_analysis,
	publish_time, created_at, updated_at`

type ContentRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewContentRepository(db *sql.DB, log logger.Logger) *ContentRepository {
	return &ContentRepository{
		db:     db,
		logger: log,
	}
}

// Insert stores a new content record. A conflict on the (platform, content_url)
// unique index is reported as models.ErrDuplicateContent so concurrent ingest
// runs can treat it as "already exists".
func (r *ContentRepository) Insert(ctx context.Context, content *models.Content) error {
	if content.ID == "" {
		content.ID = uuid.New().String()
	}
	now := time.Now()
	content.CreatedAt = now
	content.UpdatedAt = now

	query := `
		INSERT INTO social_media_content (
			id, platform, blogger_name, blogger_url, title, body,
			content_url, likes, comments, shares, views, ai_analysis,
			publish_time, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.ExecContext(ctx,
		query,
		content.ID,
		content.Platform,
		content.BloggerName,
		content.BloggerURL,
		content.Title,
		content.Body,
		content.ContentURL,
		content.Likes,
		content.Comments,
		content.Shares,
		content.Views,
		content.Analysis,
		content.PublishTime,
		content.CreatedAt,
		content.UpdatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return models.ErrDuplicateContent
		}
		return fmt.Errorf("insert content: %w", err)
	}

	return nil
}

// FindByPlatformAndContentURL looks up the dedup key.
func (r *ContentRepository) FindByPlatformAndContentURL(ctx context.Context, platform, contentURL string) (*models.Content, error) {
	query := `
		SELECT ` + contentColumns + `
		FROM social_media_content
		WHERE platform = $1 AND content_url = $2
	`

	row := r.db.QueryRowContext(ctx, query, platform, contentURL)
	content, err := scanContentRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrContentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query content: %w", err)
	}

	return content, nil
}

// FindByPlatformAndBlogger returns a blogger's stored content, most recent first.
func (r *ContentRepository) FindByPlatformAndBlogger(ctx context.Context, platform, bloggerName string) ([]models.Content, error) {
	query := `
		SELECT ` + contentColumns + `
		FROM social_media_content
		WHERE platform = $1 AND blogger_name = $2
		ORDER BY publish_time DESC
	`

	rows, err := r.db.QueryContext(ctx, query, platform, bloggerName)
	if err != nil {
		return nil, fmt.Errorf("query content: %w", err)
	}
	defer rows.Close()

	return scanContentRows(rows)
}

// FindSince returns content published at or after the given time, most recent
// first. An empty platform matches all platforms.
func (r *ContentRepository) FindSince(ctx context.Context, platform string, since time.Time) ([]models.Content, error) {
	query := `
		SELECT ` + contentColumns + `
		FROM social_media_content
		WHERE ($1 = '' OR platform = $1) AND publish_time >= $2
		ORDER BY publish_time DESC
	`

	rows, err := r.db.QueryContext(ctx, query, platform, since)
	if err != nil {
		return nil, fmt.Errorf("query content: %w", err)
	}
	defer rows.Close()

	return scanContentRows(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContentRow(row rowScanner) (*models.Content, error) {
	var content models.Content
	var contentURL, analysis sql.NullString
	var likes, comments, shares, views sql.NullInt64

	if err := row.Scan(
		&content.ID,
		&content.Platform,
		&content.BloggerName,
		&content.BloggerURL,
		&content.Title,
		&content.Body,
		&contentURL,
		&likes,
		&comments,
		&shares,
		&views,
		&analysis,
		&content.PublishTime,
		&content.CreatedAt,
		&content.UpdatedAt,
	); err != nil {
		return nil, err
	}

	content.ContentURL = contentURL.String
	content.Analysis = analysis.String
	content.Likes = nullableInt(likes)
	content.Comments = nullableInt(comments)
	content.Shares = nullableInt(shares)
	content.Views = nullableInt(views)

	return &content, nil
}

func scanContentRows(rows *sql.Rows) ([]models.Content, error) {
	contents := make([]models.Content, 0)
	for rows.Next() {
		content, err := scanContentRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		contents = append(contents, *content)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate content: %w", err)
	}
	return contents, nil
}

func nullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
