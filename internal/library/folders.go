package library

import (
	"errors"
	"fmt"
	"maps"
	"strconv"
	"time"

	"github.com/mmcdole/steamrun/internal/domain"
	"github.com/mmcdole/steamrun/internal/vdf"
)

// ListLibraryFolders returns the library folders registered in
// steamapps/libraryfolders.vdf, in file order. A missing manifest yields no
// folders. A malformed one is an error, since nothing else can be enumerated
// without it.
func (s *Service) ListLibraryFolders() ([]*domain.LibraryFolder, error) {
	path := libraryFoldersPath(s.root)

	folders, err := s.folders.GetOrCompute(path, parseLibraryFolders)
	if err != nil {
		if errors.Is(err, domain.ErrFileUnavailable) {
			if !isMissing(err) {
				s.logger.Warn("library folders manifest unreadable", "path", path, "error", err)
			}
			return []*domain.LibraryFolder{}, nil
		}
		s.logger.Error("failed to parse library folders", "path", path, "error", err)
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	out := make([]*domain.LibraryFolder, 0, len(folders))
	for i := range folders {
		f := folders[i]
		f.Apps = maps.Clone(f.Apps)
		out = append(out, &f)
	}
	s.logger.Debug("listed library folders", "count", len(out))
	return out, nil
}

func parseLibraryFolders(data []byte) ([]domain.LibraryFolder, error) {
	root, err := vdf.ParseText(data)
	if err != nil {
		return nil, err
	}

	folders := []domain.LibraryFolder{}
	for _, child := range root.Children {
		// Non-numeric keys hold global settings such as contentstatsid.
		if _, err := strconv.Atoi(child.Name); err != nil {
			continue
		}
		folder, err := libraryFolderFromNode(child)
		if err != nil {
			return nil, err
		}
		folders = append(folders, folder)
	}
	return folders, nil
}

func libraryFolderFromNode(n *vdf.Node) (domain.LibraryFolder, error) {
	if !n.IsObject() {
		return domain.LibraryFolder{}, fmt.Errorf("%w: library folder %q is not an object", domain.ErrMalformedDocument, n.Name)
	}

	f := domain.LibraryFolder{Apps: map[int]int64{}}
	f.Path, _ = n.GetString("path")
	f.Label, _ = n.GetString("label")
	f.ContentID, _ = n.GetInt64("contentid")
	f.TotalSize, _ = n.GetInt64("totalsize")
	f.UpdateCleanBytesTally, _ = n.GetInt64("update_clean_bytes_tally")

	verified, ok := n.GetTime("time_last_update_verified")
	if !ok {
		verified = time.Unix(0, 0).UTC()
	}
	f.TimeLastUpdateVerified = verified

	apps, ok := n.Object("apps")
	if !ok {
		return domain.LibraryFolder{}, fmt.Errorf("%w: library folder %q has no apps", domain.ErrMalformedDocument, n.Name)
	}
	for _, app := range apps.Children {
		id, err := strconv.Atoi(app.Name)
		if err != nil {
			return domain.LibraryFolder{}, fmt.Errorf("%w: library folder %q: app id %q", domain.ErrMalformedDocument, n.Name, app.Name)
		}
		size, ok := app.Int64Value()
		if !ok {
			return domain.LibraryFolder{}, fmt.Errorf("%w: library folder %q: size of app %d", domain.ErrMalformedDocument, n.Name, id)
		}
		f.Apps[id] = size
	}
	return f, nil
}
