package migrate

import (
	"context"
	"fmt"

	"github.com/angelmondragon/shopdash/pkg/db"
	"github.com/angelmondragon/shopdash/pkg/logger"
)

// Apply validates and runs the embedded migrations against the client state
// database.
func Apply(ctx context.Context, logg *logger.Logger, client *db.Client) error {
	if client == nil {
		return fmt.Errorf("db client is required")
	}
	if err := Validate(); err != nil {
		return err
	}

	sqlDB, err := client.SQL()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	ctx = logg.WithFields(ctx, map[string]any{"dialect": client.Driver(), "dir": Dir})
	logg.Info(ctx, "running goose migrations")

	if err := Up(ctx, sqlDB, client.Driver()); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "goose migrations completed")
	return nil
}
