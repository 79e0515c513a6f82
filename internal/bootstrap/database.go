package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/jonesrussell/gosocial/internal/config"
	"github.com/jonesrussell/gosocial/internal/database"
	"github.com/jonesrussell/gosocial/internal/logger"
)

const migrateTimeout = 30 * time.Second

// SetupDatabase creates a database connection and applies the schema.
func SetupDatabase(cfg *config.Config, log logger.Logger) (*database.DB, error) {
	db, err := database.New(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("database connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
	defer cancel()

	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", migrateErr)
	}

	return db, nil
}
