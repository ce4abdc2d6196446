// Package query turns typed text into the list of Steam apps, Source mods and
// shortcuts to show, and runs the actions picked from that list.
package query

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/mmcdole/steamrun/internal/domain"
	"github.com/mmcdole/steamrun/internal/search"
)

const (
	errorTitle        = "Error"
	sourceModSubtitle = "Source Mod"
	shortcutSubtitle  = "Non-Steam Game"
	msgNotFound       = "Steam installation not found"
	msgAccessDenied   = "Access to the Steam installation record was denied"
)

// Library is the part of library.Service queries read from.
type Library interface {
	ListLibraryFolders() ([]*domain.LibraryFolder, error)
	ListApps(folder *domain.LibraryFolder) []*domain.App
	ListSourceMods(folder *domain.LibraryFolder) []domain.SourceMod
	LoadAssetIndex() (map[int]string, error)
	TypeCatalog() (domain.TypeResolver, error)
	MostRecentUser() (domain.User, bool, error)
	ListShortcuts(user domain.User) ([]domain.Shortcut, error)
}

// Resolver finds the Steam install root.
type Resolver interface {
	Resolve() (string, error)
}

// Opener builds the Library for an install root.
type Opener func(installRoot string) (Library, error)

// Launcher runs actions.
type Launcher interface {
	Launch(target string) error
	OpenFolder(path string) error
}

// Filters hide whole groups of results.
type Filters struct {
	HideApplications bool
	HideTools        bool
	HideMusic        bool
	HideSourceMods   bool
	HideShortcuts    bool
}

// hidesByType reports whether any filter needs an app's type.
func (f Filters) hidesByType() bool {
	return f.HideApplications || f.HideTools || f.HideMusic
}

func (f Filters) hides(t domain.AppType) bool {
	switch t {
	case domain.AppTypeApplication:
		return f.HideApplications
	case domain.AppTypeTool:
		return f.HideTools
	case domain.AppTypeMusic:
		return f.HideMusic
	}
	return false
}

// Options configure a Service.
type Options struct {
	Filters    Filters
	MaxResults int // Apps returned per query, 0 for no limit
}

// Service answers queries against the resolved installation. The install root
// is resolved on first use; a failed resolution is retried by the next query.
type Service struct {
	resolver Resolver
	open     Opener
	launcher Launcher
	opts     Options
	logger   *slog.Logger

	mu  sync.Mutex
	lib Library
}

// NewService creates a query service.
func NewService(resolver Resolver, open Opener, launcher Launcher, opts Options, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		resolver: resolver,
		open:     open,
		launcher: launcher,
		opts:     opts,
		logger:   logger,
	}
}

// SetFilters replaces the active filters.
func (s *Service) SetFilters(f Filters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts.Filters = f
}

// Library returns the library for the resolved install root.
func (s *Service) Library() (Library, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lib != nil {
		return s.lib, nil
	}
	root, err := s.resolver.Resolve()
	if err != nil {
		return nil, err
	}
	lib, err := s.open(root)
	if err != nil {
		return nil, fmt.Errorf("open library %s: %w", root, err)
	}
	s.logger.Info("using steam installation", "root", root)
	s.lib = lib
	return lib, nil
}

// Query returns the results matching text: installed apps, most recently
// played first, then Source mods, then the current user's non-Steam shortcuts.
// A failure that leaves nothing to show yields a single KindError result.
func (s *Service) Query(text string) []Result {
	results, err := s.query(text)
	if err != nil {
		s.logger.Error("query failed", "query", text, "error", err)
		return []Result{ErrorResult(err)}
	}
	return results
}

// ErrorResult describes err as a result row.
func ErrorResult(err error) Result {
	msg := err.Error()
	switch {
	case errors.Is(err, domain.ErrInstallationNotFound):
		msg = msgNotFound
	case errors.Is(err, domain.ErrAccessDenied):
		msg = msgAccessDenied
	}
	return Result{Kind: KindError, Title: errorTitle, Subtitle: msg, Err: err}
}

func (s *Service) query(text string) ([]Result, error) {
	lib, err := s.Library()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	opts := s.opts
	s.mu.Unlock()

	folders, err := lib.ListLibraryFolders()
	if err != nil {
		return nil, err
	}
	icons, err := lib.LoadAssetIndex()
	if err != nil {
		s.logger.Warn("asset index unavailable, continuing without icons", "error", err)
		icons = map[int]string{}
	}

	var apps []*domain.App
	var mods []domain.SourceMod
	for _, f := range folders {
		apps = append(apps, lib.ListApps(f)...)
		if !opts.Filters.HideSourceMods {
			mods = append(mods, lib.ListSourceMods(f)...)
		}
	}

	results := s.appResults(lib, text, apps, icons, opts)
	results = append(results, modResults(text, mods, icons)...)
	if !opts.Filters.HideShortcuts {
		results = append(results, s.shortcutResults(lib, text)...)
	}
	return results, nil
}

func (s *Service) appResults(lib Library, text string, apps []*domain.App, icons map[int]string, opts Options) []Result {
	titles := make([]string, len(apps))
	for i, a := range apps {
		titles[i] = a.Name
	}

	types := catalogOnce(lib)

	var results []Result
	for _, m := range search.Filter(text, titles) {
		app := apps[m.Index]
		if opts.Filters.hidesByType() && opts.Filters.hides(s.appType(types, app)) {
			continue
		}
		results = append(results, Result{
			Kind:           KindApp,
			Title:          app.Name,
			Icon:           icons[app.ID],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
			App:            app,
		})
	}

	slices.SortStableFunc(results, func(a, b Result) int {
		return b.App.LastPlayed.Compare(a.App.LastPlayed)
	})
	if opts.MaxResults > 0 && len(results) > opts.MaxResults {
		results = results[:opts.MaxResults]
	}

	// Only the rows that will be shown pay for classification.
	for i := range results {
		results[i].Subtitle = appSubtitle(s.appType(types, results[i].App), results[i].App.ID)
	}
	return results
}

// appType classifies app, treating a failed lookup as Unknown so the app stays
// visible.
func (s *Service) appType(types domain.TypeResolver, app *domain.App) domain.AppType {
	t, err := app.Type(types)
	if err != nil {
		s.logger.Warn("cannot classify app", "appID", app.ID, "error", err)
	}
	return t
}

// catalogOnce loads the type catalog on first use and serves every lookup of
// one query from that snapshot.
func catalogOnce(lib Library) domain.TypeResolver {
	load := sync.OnceValues(lib.TypeCatalog)
	return domain.TypeResolverFunc(func(appID int) (domain.AppType, error) {
		catalog, err := load()
		if err != nil {
			return domain.AppTypeUnknown, err
		}
		return catalog.ResolveType(appID)
	})
}

func modResults(text string, mods []domain.SourceMod, icons map[int]string) []Result {
	titles := make([]string, len(mods))
	for i, m := range mods {
		titles[i] = m.Name
	}

	var results []Result
	for _, m := range search.Filter(text, titles) {
		mod := mods[m.Index]
		results = append(results, Result{
			Kind:           KindSourceMod,
			Title:          mod.Name,
			Subtitle:       sourceModSubtitle,
			Icon:           icons[mod.BaseAppID],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
			Mod:            &mod,
		})
	}
	return results
}

func (s *Service) shortcutResults(lib Library, text string) []Result {
	user, ok, err := lib.MostRecentUser()
	if err != nil {
		s.logger.Warn("cannot read login users", "error", err)
		return nil
	}
	if !ok {
		return nil
	}
	shortcuts, err := lib.ListShortcuts(user)
	if err != nil {
		s.logger.Warn("cannot read shortcuts", "steamID", user.SteamID, "error", err)
		return nil
	}

	titles := make([]string, len(shortcuts))
	for i, sc := range shortcuts {
		titles[i] = sc.AppName
	}

	var results []Result
	for _, m := range search.Filter(text, titles) {
		sc := shortcuts[m.Index]
		results = append(results, Result{
			Kind:           KindShortcut,
			Title:          sc.AppName,
			Subtitle:       shortcutSubtitle,
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
			Shortcut:       &sc,
		})
	}
	return results
}

// Perform runs an action returned by Actions.
func (s *Service) Perform(a Action) error {
	s.logger.Info("performing action", "title", a.Title, "target", a.Target)
	if a.Kind == ActionOpenFolder {
		return s.launcher.OpenFolder(a.Target)
	}
	return s.launcher.Launch(a.Target)
}
