// Package cmd provides shared construction helpers for the binaries.
package cmd

import (
	"context"
	"log/slog"
	"strings"

	"github.com/readyreserve/readyflow/pkg/persistence"
	"github.com/readyreserve/readyflow/pkg/persistence/file"
	"github.com/readyreserve/readyflow/pkg/persistence/postgresql"
)

// NewPersistence selects the persistence backend by URL scheme. postgres://
// URLs get the PostgreSQL store; anything else is treated as a file path.
func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string) persistence.Persistence {
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		p, err := postgresql.NewPersistence(ctx, logger, databaseURL)
		if err != nil {
			logger.ErrorContext(ctx, "Failed to initialize postgres persistence", "error", err)
			panic(err)
		}

		return p
	default:
		return file.NewPersistence(databaseURL)
	}
}
