package library

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mmcdole/steamrun/internal/domain"
	"github.com/mmcdole/steamrun/internal/vdf"
)

var errIncompleteMod = errors.New("gameinfo.txt lacks game name or SteamAppId")

// ListSourceMods returns the Source engine mods installed in the folder's
// steamapps/sourcemods directory. Mods without a usable gameinfo.txt are skipped.
func (s *Service) ListSourceMods(folder *domain.LibraryFolder) []domain.SourceMod {
	dir := sourceModsDir(folder.SteamAppsDir())
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !isMissing(err) {
			s.logger.Warn("cannot list source mods", "path", dir, "error", err)
		}
		return []domain.SourceMod{}
	}

	mods := []domain.SourceMod{}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		modPath := filepath.Join(dir, e.Name())
		mod, err := readSourceMod(modPath)
		if err != nil {
			if !isMissing(err) {
				s.logger.Warn("skipping source mod", "path", modPath, "error", err)
			}
			continue
		}
		mods = append(mods, mod)
	}
	return mods
}

func readSourceMod(modPath string) (domain.SourceMod, error) {
	path := filepath.Join(modPath, "gameinfo.txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.SourceMod{}, err
	}
	root, err := vdf.ParseText(data)
	if err != nil {
		return domain.SourceMod{}, fmt.Errorf("parse %s: %w", path, err)
	}

	name, ok := root.GetString("game")
	if !ok || name == "" {
		return domain.SourceMod{}, errIncompleteMod
	}
	id, ok := root.Path("FileSystem", "SteamAppId")
	if !ok {
		return domain.SourceMod{}, errIncompleteMod
	}
	base, ok := id.Int64Value()
	if !ok {
		return domain.SourceMod{}, errIncompleteMod
	}
	return domain.SourceMod{Name: name, Path: modPath, BaseAppID: int(base)}, nil
}
