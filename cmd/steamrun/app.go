package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mmcdole/steamrun/internal/config"
	"github.com/mmcdole/steamrun/internal/launch"
	"github.com/mmcdole/steamrun/internal/library"
	"github.com/mmcdole/steamrun/internal/locate"
	"github.com/mmcdole/steamrun/internal/logging"
	"github.com/mmcdole/steamrun/internal/query"
	"github.com/mmcdole/steamrun/internal/store"
)

// app holds the wired services for one command invocation.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	launcher *launch.Launcher
	query    *query.Service

	closers []io.Closer
	lib     *library.Service
	store   *store.FingerprintStore
}

// newApp loads configuration, applies overrides and wires the services.
// Nothing touches the Steam installation until the first query.
func newApp(overrides ...func(*config.Config)) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if installDir != "" {
		cfg.Steam.InstallDir = installDir
	}
	for _, o := range overrides {
		o(cfg)
	}

	a := &app{cfg: cfg}

	logger, closer, err := logging.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = logging.NullLogger()
	} else {
		a.closers = append(a.closers, closer)
	}
	slog.SetDefault(logger)
	a.logger = logger
	logger.Info("starting steamrun", "version", Version)

	resolver := locate.NewResolver(logger)
	if cfg.Steam.InstallDir != "" {
		resolver = locate.NewResolverWithSources(logger, locate.Static(cfg.Steam.InstallDir))
	}

	a.launcher = launch.NewLauncher(cfg.Launcher.Command, cfg.Launcher.Args, logger)
	a.query = query.NewService(resolver, a.openLibrary, a.launcher, query.Options{
		Filters:    cfg.QueryFilters(),
		MaxResults: cfg.UI.MaxResults,
	}, logger)
	return a, nil
}

// openLibrary is the query.Opener: it opens the persistent cache for root and
// the library reader on top of it.
func (a *app) openLibrary(root string) (query.Library, error) {
	st, err := store.NewFingerprintStore(a.cfg.CacheDir(), root)
	if err != nil {
		a.logger.Warn("persistent cache unavailable, using memory", "error", err)
		if st, err = store.NewFingerprintStore("", root); err != nil {
			return nil, err
		}
	}
	a.store = st
	a.closers = append(a.closers, st)
	a.lib = library.NewService(root, st, a.logger)
	return a.lib, nil
}

// library resolves the installation and returns its reader.
func (a *app) library() (*library.Service, error) {
	if _, err := a.query.Library(); err != nil {
		return nil, describe(err)
	}
	return a.lib, nil
}

// Close releases the cache database and the log file, newest first.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i].Close())
	}
	return errors.Join(errs...)
}

// describe turns resolution failures into the messages the launcher shows.
func describe(err error) error {
	if r := query.ErrorResult(err); r.Subtitle != err.Error() {
		return errors.New(r.Subtitle)
	}
	return err
}
