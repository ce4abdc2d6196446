package domain

import "strings"

// AppType is the category Steam assigns to an app in appinfo.vdf.
type AppType int

const (
	AppTypeUnknown AppType = iota
	AppTypeGame
	AppTypeApplication
	AppTypeTool
	AppTypeDemo
	AppTypeMedia
	AppTypeDLC
	AppTypeGuide
	AppTypeDriver
	AppTypeConfig
	AppTypeHardware
	AppTypeFranchise
	AppTypeVideo
	AppTypePlugin
	AppTypeMusic
	AppTypeSeries
	AppTypeShortcut
	AppTypeDepotOnly
	AppTypeComic
	AppTypeBeta
)

var appTypeNames = [...]string{
	AppTypeUnknown:     "Unknown",
	AppTypeGame:        "Game",
	AppTypeApplication: "Application",
	AppTypeTool:        "Tool",
	AppTypeDemo:        "Demo",
	AppTypeMedia:       "Media",
	AppTypeDLC:         "DLC",
	AppTypeGuide:       "Guide",
	AppTypeDriver:      "Driver",
	AppTypeConfig:      "Config",
	AppTypeHardware:    "Hardware",
	AppTypeFranchise:   "Franchise",
	AppTypeVideo:       "Video",
	AppTypePlugin:      "Plugin",
	AppTypeMusic:       "Music",
	AppTypeSeries:      "Series",
	AppTypeShortcut:    "Shortcut",
	AppTypeDepotOnly:   "DepotOnly",
	AppTypeComic:       "Comic",
	AppTypeBeta:        "Beta",
}

func (t AppType) String() string {
	if t < 0 || int(t) >= len(appTypeNames) {
		return appTypeNames[AppTypeUnknown]
	}
	return appTypeNames[t]
}

// ParseAppType maps appinfo's common/type value to an AppType, ignoring case.
// Anything unrecognized is AppTypeUnknown.
func ParseAppType(s string) AppType {
	s = strings.TrimSpace(s)
	for i, name := range appTypeNames {
		if strings.EqualFold(name, s) {
			return AppType(i)
		}
	}
	return AppTypeUnknown
}
