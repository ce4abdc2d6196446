package domain

import (
	"errors"

	"github.com/mmcdole/steamrun/internal/vdf"
)

// Sentinel errors for domain operations
var (
	// ErrInstallationNotFound indicates no Steam installation could be located
	ErrInstallationNotFound = errors.New("steam installation not found")

	// ErrAccessDenied indicates the installation record exists but could not be read
	ErrAccessDenied = errors.New("access to steam installation record denied")

	// ErrFileUnavailable indicates a data file is missing or unreadable
	ErrFileUnavailable = errors.New("file unavailable")

	// ErrMalformedDocument indicates a KeyValues file could not be decoded
	ErrMalformedDocument = vdf.ErrMalformed
)
