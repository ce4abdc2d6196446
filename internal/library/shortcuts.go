package library

import (
	"fmt"
	"hash/crc32"
	"os"

	"github.com/mmcdole/steamrun/internal/domain"
	"github.com/mmcdole/steamrun/internal/vdf"
)

// ListShortcuts returns the non-Steam games in the user's shortcuts.vdf. A user
// without the file has no shortcuts.
func (s *Service) ListShortcuts(user domain.User) ([]domain.Shortcut, error) {
	path := shortcutsPath(s.root, user.AccountID())
	data, err := os.ReadFile(path)
	if err != nil {
		if isMissing(err) {
			return []domain.Shortcut{}, nil
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrFileUnavailable, err)
	}

	root, err := vdf.ParseBinary(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	shortcuts := make([]domain.Shortcut, 0, len(root.Children))
	for _, child := range root.Children {
		if !child.IsObject() {
			continue
		}
		sc := domain.Shortcut{Owner: user.SteamID, Index: len(shortcuts), Key: child.Name}
		sc.AppName, _ = child.GetString("AppName")
		sc.Exe, _ = child.GetString("Exe")
		sc.StartDir, _ = child.GetString("StartDir")

		if id, ok := child.GetInt64("appid"); ok {
			sc.AppID = int32(id)
		} else {
			sc.AppID = legacyShortcutID(sc.Exe, sc.AppName)
		}
		shortcuts = append(shortcuts, sc)
	}
	return shortcuts, nil
}

// legacyShortcutID is the ID Steam derived for shortcuts before it started
// storing appid in the file.
func legacyShortcutID(exe, name string) int32 {
	return int32(crc32.ChecksumIEEE([]byte(exe+name)) | 0x80000000)
}
