package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	hclog "github.com/hashicorp/go-hclog"

	bookmarkinadapter "miftah/internal/modules/bookmark/adapter/in"
	bookmarkservice "miftah/internal/modules/bookmark/service"
	bookmarkusecase "miftah/internal/modules/bookmark/usecase"
	progressinadapter "miftah/internal/modules/progress/adapter/in"
	progressoutadapter "miftah/internal/modules/progress/adapter/out"
	progressout "miftah/internal/modules/progress/port/out"
	progressservice "miftah/internal/modules/progress/service"
	progressusecase "miftah/internal/modules/progress/usecase"
	sessioninadapter "miftah/internal/modules/session/adapter/in"
	sessionoutadapter "miftah/internal/modules/session/adapter/out"
	sessionout "miftah/internal/modules/session/port/out"
	sessionservice "miftah/internal/modules/session/service"
	sessionusecase "miftah/internal/modules/session/usecase"
	"miftah/internal/platform/clock"
	"miftah/internal/platform/config"
	"miftah/internal/platform/id"
	"miftah/internal/platform/logging"
	uiapp "miftah/internal/ui/app"
)

type App struct {
	ProgressCLI progressinadapter.CLIHandler
	SessionCLI  sessioninadapter.CLIHandler
	BookmarkCLI bookmarkinadapter.CLIHandler
	Logger      hclog.Logger

	closers []io.Closer
}

// New wires one tracker for the process. Logs go to stderr.
func New(cfg config.Config) (*App, error) {
	return newApp(cfg, clock.SystemClock{}, os.Stderr)
}

func newApp(cfg config.Config, clk clock.Clock, logOut io.Writer) (*App, error) {
	logger := logging.New(cfg.LogLevel, logOut)
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	app := &App{Logger: logger}
	kv, active, err := app.openStores(cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("storage ready", "driver", cfg.Storage.Driver, "data_dir", cfg.DataDir)

	tracker, err := progressservice.NewTracker(context.Background(), clk, kv, progressservice.Options{
		Location:         loc,
		DefaultDailyGoal: cfg.DailyGoal,
		Logger:           logger,
	})
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("load reading progress: %w", err)
	}
	progressUC := progressusecase.NewInteractor(tracker, progressoutadapter.NewMarkdownReportWriter())

	sessionUC := sessionusecase.NewInteractor(
		sessionservice.NewSessionService(clk, id.RandomHex{}),
		progressUC,
		active,
	)

	app.ProgressCLI = progressinadapter.NewCLIHandler(progressUC)
	app.SessionCLI = sessioninadapter.NewCLIHandler(sessionUC)
	app.BookmarkCLI = bookmarkinadapter.NewCLIHandler(
		bookmarkusecase.NewInteractor(bookmarkservice.NewBookmarks(clk, kv, logger)),
	)
	return app, nil
}

func (a *App) openStores(cfg config.Config) (progressout.KeyValueStore, sessionout.ActiveSessionStore, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return progressoutadapter.NewMemoryKeyValueStore(), sessionoutadapter.NewMemoryActiveSessionStore(), nil
	case config.DriverFile:
		return progressoutadapter.NewFileKeyValueStore(filepath.Join(cfg.DataDir, "kv")),
			sessionoutadapter.NewFileActiveSessionStore(cfg.DataDir), nil
	case config.DriverSQLite:
		store, err := progressoutadapter.NewSQLiteKeyValueStore(cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("new sqlite store: %w", err)
		}
		a.closers = append(a.closers, store)
		return store, sessionoutadapter.NewFileActiveSessionStore(cfg.DataDir), nil
	}
	return nil, nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
}

func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.ProgressCLI, app.SessionCLI, app.BookmarkCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
