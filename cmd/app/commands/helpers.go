// Package commands implements the gateway CLI: the API server, database
// migrations, and security-credential generation.
package commands

import (
	"context"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"

	"github.com/jameskabz/mpesa/internal/app"
)

// closeContainer releases the container's servers, metrics provider, and
// database connection, logging instead of failing on shutdown errors.
func closeContainer(container *app.Container, logger *slog.Logger) {
	if err := container.Shutdown(context.Background()); err != nil {
		logger.Error("failed to shutdown container", slog.Any("error", err))
	}
}

// closeMigrate closes the migrate instance. Source and database close errors
// are reported separately since either side can fail on its own.
func closeMigrate(m *migrate.Migrate, logger *slog.Logger) {
	sourceErr, databaseErr := m.Close()
	if sourceErr != nil || databaseErr != nil {
		logger.Error(
			"failed to close the migrate instance",
			slog.Any("source_error", sourceErr),
			slog.Any("database_error", databaseErr),
		)
	}
}
