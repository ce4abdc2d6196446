//go:build !windows

package locate

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultSources checks the usual per-user install locations. Native packages come
// before the Flatpak sandbox.
func DefaultSources() []Source {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	if runtime.GOOS == "darwin" {
		return []Source{
			Directory{Path: filepath.Join(home, "Library", "Application Support", "Steam")},
		}
	}
	return []Source{
		Directory{Path: filepath.Join(home, ".steam", "steam")},
		Directory{Path: filepath.Join(home, ".local", "share", "Steam")},
		Directory{Path: filepath.Join(home, ".var", "app", "com.valvesoftware.Steam", ".local", "share", "Steam")},
	}
}
