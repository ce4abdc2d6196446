package library

import (
	"path/filepath"
	"strconv"
)

// Locations of Steam's data files relative to the install root.

func libraryFoldersPath(root string) string {
	return filepath.Join(root, "steamapps", "libraryfolders.vdf")
}

func appManifestPath(steamApps string, appID int) string {
	return filepath.Join(steamApps, "appmanifest_"+strconv.Itoa(appID)+".acf")
}

func libraryCacheDir(root string) string {
	return filepath.Join(root, "appcache", "librarycache")
}

// assetIndexPaths lists the asset catalog names, preferred first. Steam renamed
// assets.vdf to assetcache.vdf.
func assetIndexPaths(root string) []string {
	dir := libraryCacheDir(root)
	return []string{
		filepath.Join(dir, "assets.vdf"),
		filepath.Join(dir, "assetcache.vdf"),
	}
}

func appInfoPath(root string) string {
	return filepath.Join(root, "appcache", "appinfo.vdf")
}

func loginUsersPath(root string) string {
	return filepath.Join(root, "config", "loginusers.vdf")
}

func shortcutsPath(root string, accountID uint32) string {
	return filepath.Join(root, "userdata", strconv.FormatUint(uint64(accountID), 10), "config", "shortcuts.vdf")
}

func sourceModsDir(steamApps string) string {
	return filepath.Join(steamApps, "sourcemods")
}
