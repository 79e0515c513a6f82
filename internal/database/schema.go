package database

import (
	"context"
	"fmt"
)

// schema is applied at startup. The partial unique index is the dedup key:
// records without a content URL are allowed to accumulate duplicates.
const schema = `
CREATE TABLE IF NOT EXISTS social_media_content (
	id           UUID PRIMARY KEY,
	platform     TEXT NOT NULL,
	blogger_name TEXT NOT NULL,
	blogger_url  TEXT NOT NULL,
	title        TEXT NOT NULL,
	body         TEXT NOT NULL DEFAULT '',
	content_url  TEXT NOT NULL DEFAULT '',
	likes        INTEGER,
	comments     INTEGER,
	shares       INTEGER,
	views        INTEGER,
	ai_analysis  TEXT NOT NULL DEFAULT '',
	publish_time TIMESTAMPTZ NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_content_platform_url
	ON social_media_content (platform, content_url)
	WHERE content_url <> '';

CREATE INDEX IF NOT EXISTS idx_content_blogger
	ON social_media_content (platform, blogger_name);

CREATE INDEX IF NOT EXISTS idx_content_publish_time
	ON social_media_content (publish_time DESC);
`

// Migrate applies the content schema.
func (d *DB) Migrate(ctx context.Context) error {
	if _, err := d.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	d.logger.Info("Database schema applied")
	return nil
}
