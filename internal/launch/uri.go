package launch

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mmcdole/steamrun/internal/domain"
)

// AppURI runs an installed Steam app.
func AppURI(appID int) string {
	return "steam://rungameid/" + strconv.Itoa(appID)
}

// LibraryURI shows the app's page in the Steam library.
func LibraryURI(appID int) string {
	return "steam://open/games/details/" + strconv.Itoa(appID)
}

// SourceModURI starts the mod's base game with -game pointing at the mod.
// Spaces are escaped because the whole command line travels in the URI.
func SourceModURI(mod domain.SourceMod) string {
	uri := fmt.Sprintf(`steam://launch/%d/-steam -game "%s"`, mod.BaseAppID, mod.Path)
	return strings.ReplaceAll(uri, " ", "%20")
}

// ShortcutURI runs a non-Steam shortcut through Steam.
func ShortcutURI(s domain.Shortcut) string {
	return "steam://rungameid/" + strconv.FormatUint(s.GameID(), 10)
}
