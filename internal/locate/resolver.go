// Package locate finds the Steam install root.
package locate

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mmcdole/steamrun/internal/domain"
)

// Source is one place that may record where Steam is installed. A source that
// has no record returns an error wrapping fs.ErrNotExist; one that cannot be
// read because of permissions returns an error wrapping fs.ErrPermission.
type Source interface {
	Name() string
	LookupInstallPath() (string, error)
}

// Resolver asks each source in order and returns the first path found.
type Resolver struct {
	Sources []Source
	logger  *slog.Logger
}

// NewResolver returns a resolver over the platform's default sources.
func NewResolver(logger *slog.Logger) *Resolver {
	return NewResolverWithSources(logger, DefaultSources()...)
}

// NewResolverWithSources returns a resolver over the given sources.
func NewResolverWithSources(logger *slog.Logger, sources ...Source) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{Sources: sources, logger: logger}
}

// Resolve returns the normalized install root. It fails with
// domain.ErrAccessDenied when some record could not be read and none could,
// otherwise with domain.ErrInstallationNotFound.
func (r *Resolver) Resolve() (string, error) {
	var denied error
	for _, src := range r.Sources {
		path, err := src.LookupInstallPath()
		if err != nil {
			if errors.Is(err, fs.ErrPermission) {
				r.logger.Warn("install record not readable", "source", src.Name(), "error", err)
				if denied == nil {
					denied = err
				}
			} else {
				r.logger.Debug("no install record", "source", src.Name(), "error", err)
			}
			continue
		}
		if path = Normalize(path); path != "" {
			r.logger.Debug("resolved steam install root", "source", src.Name(), "path", path)
			return path, nil
		}
	}
	if denied != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrAccessDenied, denied)
	}
	return "", domain.ErrInstallationNotFound
}

// Normalize converts separators to the platform's and cleans the path. Registry
// values use forward slashes ("c:/program files (x86)/steam").
func Normalize(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	p = strings.ReplaceAll(p, "/", string(filepath.Separator))
	p = strings.ReplaceAll(p, "\\", string(filepath.Separator))
	return filepath.Clean(p)
}

// Static always returns the configured path. It backs the steam.install_dir
// setting and the --install-dir flag.
type Static string

func (s Static) Name() string { return "config" }

func (s Static) LookupInstallPath() (string, error) {
	if s == "" {
		return "", fs.ErrNotExist
	}
	return string(s), nil
}

// Directory reports Path when it exists as a directory.
type Directory struct {
	Path string
}

func (d Directory) Name() string { return d.Path }

func (d Directory) LookupInstallPath() (string, error) {
	info, err := os.Stat(d.Path)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s: %w", d.Path, fs.ErrNotExist)
	}
	return d.Path, nil
}
