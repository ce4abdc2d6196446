// Package library reads a Steam installation's data files into domain types.
//
// The root library manifest, the asset catalog, the appinfo catalog and the
// login users file go through content-fingerprint caches, so an unchanged file
// is parsed once per Service. Per-app manifests, Source mod descriptors and
// shortcut files are small and are read fresh on every call.
package library

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/mmcdole/steamrun/internal/domain"
	"github.com/mmcdole/steamrun/internal/fingerprint"
)

// Cache names, also used as key prefixes in the persistent store.
const (
	cacheFolders = "libraryfolders"
	cacheAssets  = "assets"
	cacheAppInfo = "appinfo"
	cacheUsers   = "loginusers"
)

// Service reads one Steam installation.
type Service struct {
	root   string
	logger *slog.Logger

	folders *fingerprint.Cache[[]domain.LibraryFolder]
	assets  *fingerprint.Cache[map[int]string]
	appInfo *fingerprint.Cache[map[int]AppInfo]
	users   *fingerprint.Cache[[]domain.User]
}

// NewService creates a reader for the installation at installRoot. store may be
// nil, in which case parsed results live only in memory.
func NewService(installRoot string, store fingerprint.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		root:    installRoot,
		logger:  logger,
		folders: fingerprint.New[[]domain.LibraryFolder](cacheFolders, store, logger),
		assets:  fingerprint.New[map[int]string](cacheAssets, store, logger),
		appInfo: fingerprint.New[map[int]AppInfo](cacheAppInfo, store, logger),
		users:   fingerprint.New[[]domain.User](cacheUsers, store, logger),
	}
}

// InstallRoot returns the installation this service reads.
func (s *Service) InstallRoot() string {
	return s.root
}

// Stats reports cache activity per monitored file kind.
func (s *Service) Stats() map[string]fingerprint.Stats {
	return map[string]fingerprint.Stats{
		cacheFolders: s.folders.Stats(),
		cacheAssets:  s.assets.Stats(),
		cacheAppInfo: s.appInfo.Stats(),
		cacheUsers:   s.users.Stats(),
	}
}

// Reset forgets every in-memory cached result.
func (s *Service) Reset() {
	s.folders.Reset()
	s.assets.Reset()
	s.appInfo.Reset()
	s.users.Reset()
}

// isMissing reports whether err means the file is simply not there.
func isMissing(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
