package library

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mmcdole/steamrun/internal/domain"
	"github.com/mmcdole/steamrun/internal/vdf"
)

// Keys inside the asset catalog. Group "8" holds per-app entries whose "4f"
// field names the logo file.
const (
	assetGroupKey = "8"
	assetLogoKey  = "4f"
)

// LoadAssetIndex maps app IDs to their cached logo files. It returns an empty
// index when no catalog exists.
func (s *Service) LoadAssetIndex() (map[int]string, error) {
	path, ok := firstExisting(assetIndexPaths(s.root))
	if !ok {
		return map[int]string{}, nil
	}

	dir := filepath.Dir(path)
	index, err := s.assets.GetOrCompute(path, func(data []byte) (map[int]string, error) {
		return parseAssetIndex(data, dir)
	})
	if err != nil {
		if errors.Is(err, domain.ErrFileUnavailable) && isMissing(err) {
			return map[int]string{}, nil
		}
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return index, nil
}

func parseAssetIndex(data []byte, dir string) (map[int]string, error) {
	root, err := vdf.ParseBinary(data)
	if err != nil {
		return nil, err
	}

	index := map[int]string{}
	group, ok := root.Object(assetGroupKey)
	if !ok {
		return index, nil
	}
	for _, child := range group.Children {
		id, err := strconv.Atoi(child.Name)
		if err != nil {
			continue
		}
		logo, ok := child.GetString(assetLogoKey)
		if !ok || logo == "" {
			continue
		}
		index[id] = filepath.Join(dir, child.Name, logo)
	}
	return index, nil
}

func firstExisting(paths []string) (string, bool) {
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
	}
	return "", false
}
