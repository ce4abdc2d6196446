package library

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/mmcdole/steamrun/internal/domain"
	"github.com/mmcdole/steamrun/internal/vdf"
)

const unknownAppName = "Unknown"

// ListApps reads the appmanifest of every app the folder hosts. Apps without a
// manifest are skipped, as are manifests that fail to parse. The result is
// ordered by app ID.
func (s *Service) ListApps(folder *domain.LibraryFolder) []*domain.App {
	ids := make([]int, 0, len(folder.Apps))
	for id := range folder.Apps {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	steamApps := folder.SteamAppsDir()
	apps := make([]*domain.App, 0, len(ids))
	for _, id := range ids {
		path := appManifestPath(steamApps, id)
		app, err := readAppManifest(path, id, folder)
		if err != nil {
			if !isMissing(err) {
				s.logger.Warn("skipping app manifest", "appID", id, "path", path, "error", err)
			}
			continue
		}
		apps = append(apps, app)
	}
	return apps
}

// ListAllApps lists the apps of every library folder.
func (s *Service) ListAllApps() ([]*domain.App, error) {
	folders, err := s.ListLibraryFolders()
	if err != nil {
		return nil, err
	}
	var apps []*domain.App
	for _, f := range folders {
		apps = append(apps, s.ListApps(f)...)
	}
	s.logger.Debug("listed apps", "folders", len(folders), "apps", len(apps))
	return apps, nil
}

func readAppManifest(path string, id int, folder *domain.LibraryFolder) (*domain.App, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	root, err := vdf.ParseText(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	app := &domain.App{ID: id, Folder: folder}

	app.Name, _ = root.GetString("name")
	if app.Name == "" {
		app.Name = unknownAppName
	}
	app.InstallDir, _ = root.GetString("installdir")

	lastPlayed, ok := root.GetTime("LastPlayed")
	if !ok {
		lastPlayed = time.Unix(0, 0).UTC()
	}
	app.LastPlayed = lastPlayed
	return app, nil
}
