package domain

import (
	"path/filepath"
	"sync"
	"time"
)

// steamID64Base is the SteamID64 of account 0 in the public universe.
const steamID64Base = 76561197960265728

// LibraryFolder is one storage root registered with Steam
type LibraryFolder struct {
	Path                   string        // Absolute path of the folder (contains steamapps/)
	Label                  string        // User-assigned label, often empty
	ContentID              int64         // Steam content identifier
	TotalSize              int64         // Capacity in bytes as last reported by Steam
	UpdateCleanBytesTally  int64         // Bytes reclaimed by the last cleanup
	TimeLastUpdateVerified time.Time     // Zero when never verified
	Apps                   map[int]int64 // App ID -> size on disk in bytes
}

// SteamAppsDir returns the folder's steamapps directory.
func (f *LibraryFolder) SteamAppsDir() string {
	return filepath.Join(f.Path, "steamapps")
}

// App is an installed Steam app read from its appmanifest.
type App struct {
	ID         int            // Steam app ID
	Name       string         // Display name ("Unknown" when the manifest has none)
	InstallDir string         // Directory under steamapps/common, may be empty
	Folder     *LibraryFolder // Library folder that hosts the app
	LastPlayed time.Time      // Epoch when the manifest does not say

	mu       sync.Mutex
	resolved bool
	appType  AppType
}

// Type returns the app's classification, asking r on first use. A successful
// answer is kept for the lifetime of the App. A failed lookup returns
// AppTypeUnknown together with the error and is retried on the next call.
func (a *App) Type(r TypeResolver) (AppType, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.resolved {
		return a.appType, nil
	}
	t, err := r.ResolveType(a.ID)
	if err != nil {
		return AppTypeUnknown, err
	}
	a.appType = t
	a.resolved = true
	return t, nil
}

// InstallPath returns the app's install directory, or "" when unknown.
func (a *App) InstallPath() string {
	if a.InstallDir == "" || a.Folder == nil {
		return ""
	}
	return filepath.Join(a.Folder.SteamAppsDir(), "common", a.InstallDir)
}

// SourceMod is a mod installed under steamapps/sourcemods that runs on a base game.
type SourceMod struct {
	Name      string
	Path      string // Mod directory, also its identity
	BaseAppID int
}

// User is a Steam account that has signed in on this machine (loginusers.vdf).
type User struct {
	SteamID                uint64
	AccountName            string
	PersonaName            string
	RememberPassword       bool
	WantsOfflineMode       bool
	SkipOfflineModeWarning bool
	AllowAutoLogin         bool
	MostRecent             bool
	Timestamp              time.Time
}

// AccountID returns the 32-bit account number used for userdata/ directory names.
func (u User) AccountID() uint32 {
	return uint32(u.SteamID - steamID64Base)
}

// Shortcut is a non-Steam game added to a user's library.
type Shortcut struct {
	Owner    uint64 // SteamID of the user who owns the shortcut
	Index    int    // Position in shortcuts.vdf
	Key      string // Entry name in shortcuts.vdf; numbering may have gaps
	AppID    int32
	AppName  string
	Exe      string
	StartDir string
}

// GameID returns the 64-bit game ID Steam uses to launch the shortcut.
func (s Shortcut) GameID() uint64 {
	return uint64(uint32(s.AppID))<<32 | 1<<25
}
