package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/soundxcape/internal/ai"
	"github.com/rpggio/soundxcape/internal/config"
	"github.com/rpggio/soundxcape/internal/domain/activity"
	"github.com/rpggio/soundxcape/internal/geocode"
	"github.com/rpggio/soundxcape/internal/mcp"
	"github.com/rpggio/soundxcape/internal/notebook"
	"github.com/rpggio/soundxcape/internal/notice"
	"github.com/rpggio/soundxcape/internal/sqlite"
)

// app holds the wired services of one process run.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	db       *sqlite.DB
	store    *notebook.Store
	inbox    *notice.Inbox
	activity *activity.Service
	geocoder *geocode.Client
	ai       *ai.Client
	closeLog func()
}

func openApp(ctx context.Context, logOut io.Writer) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	logger, closeLog := newLogger(cfg, logOut)

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		closeLog()
		return nil, fmt.Errorf("prepare database path: %w", err)
	}
	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.RunMigrations(); err != nil {
		_ = db.Close()
		closeLog()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	kvRepo := sqlite.NewKVRepository(db, cfg.Storage.QuotaBytes)
	activitySvc := activity.NewService(sqlite.NewActivityRepository(db), logger)
	inbox := notice.NewInbox(0)

	store := notebook.Open(ctx, kvRepo, notebook.Options{
		Notifier: inbox,
		Logger:   logger,
		Activity: activitySvc,
	})

	assistant := ai.New(ai.Config{
		APIKey:     cfg.AI.APIKey,
		Model:      cfg.AI.Model,
		BaseURL:    cfg.AI.BaseURL,
		MaxRetries: cfg.AI.MaxRetries,
	}, logger)
	if !assistant.Available() {
		logger.Info("ai features disabled: no API key configured")
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		db:       db,
		store:    store,
		inbox:    inbox,
		activity: activitySvc,
		geocoder: newGeocoder(cfg, logger),
		ai:       assistant,
		closeLog: closeLog,
	}, nil
}

func (a *app) mcpServer() *sdkmcp.Server {
	return mcp.NewServer(mcp.Config{
		Notebook:  a.store,
		Activity:  a.activity,
		Geocoder:  a.geocoder,
		Assistant: a.ai,
		Notices:   a.inbox,
		Logger:    a.logger,
	})
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		a.logger.Error("close database", "error", err)
	}
	a.closeLog()
}

func newGeocoder(cfg config.Config, logger *slog.Logger) *geocode.Client {
	return geocode.New(geocode.Config{
		BaseURL:   cfg.Geocode.BaseURL,
		UserAgent: cfg.Geocode.UserAgent,
	}, logger)
}

// newLogger writes text logs to out, or to SOUNDXCAPE_LOG_PATH when set.
// stdout stays clean for the stdio transport.
func newLogger(cfg config.Config, out io.Writer) (*slog.Logger, func()) {
	closeLog := func() {}
	if logPath := os.Getenv("SOUNDXCAPE_LOG_PATH"); logPath != "" {
		fileWriter, file, err := newLogFileWriter(logPath)
		if err != nil {
			fmt.Fprintf(out, "log file error: %v\n", err)
		} else {
			out = fileWriter
			closeLog = func() { _ = file.Close() }
		}
	}
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))
	return logger, closeLog
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(ctx context.Context, logger *slog.Logger, server *http.Server, errCh <-chan error) error {
	select {
	case err, ok := <-errCh:
		if ok && err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
