//go:build windows

package locate

import (
	"errors"
	"fmt"
	"io/fs"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

// RegistryValue reads a string value from the Windows registry.
type RegistryValue struct {
	Root  registry.Key
	Path  string
	Value string
	label string
}

func (r RegistryValue) Name() string { return r.label }

func (r RegistryValue) LookupInstallPath() (string, error) {
	k, err := registry.OpenKey(r.Root, r.Path, registry.QUERY_VALUE|registry.WOW64_64KEY)
	if err != nil {
		return "", registryError(r.label, err)
	}
	defer k.Close()

	s, _, err := k.GetStringValue(r.Value)
	if err != nil {
		return "", registryError(r.label, err)
	}
	return s, nil
}

func registryError(label string, err error) error {
	switch {
	case errors.Is(err, windows.ERROR_ACCESS_DENIED):
		return fmt.Errorf("%s: %w", label, fs.ErrPermission)
	case errors.Is(err, registry.ErrNotExist), errors.Is(err, windows.ERROR_FILE_NOT_FOUND):
		return fmt.Errorf("%s: %w", label, fs.ErrNotExist)
	default:
		return fmt.Errorf("%s: %w", label, err)
	}
}

// DefaultSources checks the current user's SteamPath first, then the machine-wide
// InstallPath in both registry views.
func DefaultSources() []Source {
	return []Source{
		RegistryValue{Root: registry.CURRENT_USER, Path: `Software\Valve\Steam`, Value: "SteamPath", label: `HKCU\Software\Valve\Steam\SteamPath`},
		RegistryValue{Root: registry.LOCAL_MACHINE, Path: `Software\Valve\Steam`, Value: "InstallPath", label: `HKLM\Software\Valve\Steam\InstallPath`},
		RegistryValue{Root: registry.LOCAL_MACHINE, Path: `Software\WOW6432Node\Valve\Steam`, Value: "InstallPath", label: `HKLM\Software\WOW6432Node\Valve\Steam\InstallPath`},
	}
}
