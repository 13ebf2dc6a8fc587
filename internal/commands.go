package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/starford/harmoni/internal/backup"
	"github.com/starford/harmoni/internal/mcpserver"
)

// Backup writes one database snapshot and prunes old ones. It returns the
// path of the new snapshot.
func Backup(ctx context.Context, opts ...Option) (string, error) {
	app, err := newApplication(opts)
	if err != nil {
		return "", err
	}
	cfg := app.config
	logger := newLogger(os.Stderr, cfg.App.LogLevel)

	db, err := openStore(ctx, cfg, logger)
	if err != nil {
		return "", err
	}
	defer db.Close()

	return backup.Run(ctx, db, cfg.Backup.Dir, cfg.Backup.Keep, app.now(), logger)
}

// ServeMCP runs the MCP server on stdin/stdout until the client disconnects.
// Logs go to stderr; stdout carries the protocol.
func ServeMCP(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config
	logger := newLogger(os.Stderr, cfg.App.LogLevel)

	db, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	dir, err := openCalendarDir(ctx, cfg, db, logger)
	if err != nil {
		return err
	}

	svc := newService(app, db, nil, logger)
	srv := mcpserver.New(svc, app.version, mcpserver.WithCalendarDir(dir, db))

	logger.Info("MCP server starting", slog.String("version", app.version))
	if err := srv.ServeStdio(); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
