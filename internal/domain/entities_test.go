package domain

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppType_MemoizesSuccess(t *testing.T) {
	calls := 0
	r := TypeResolverFunc(func(appID int) (AppType, error) {
		calls++
		return AppTypeTool, nil
	})

	app := &App{ID: 228980}
	for range 3 {
		got, err := app.Type(r)
		require.NoError(t, err)
		assert.Equal(t, AppTypeTool, got)
	}
	assert.Equal(t, 1, calls)
}

func TestAppType_MemoizesUnknown(t *testing.T) {
	calls := 0
	r := TypeResolverFunc(func(int) (AppType, error) {
		calls++
		return AppTypeUnknown, nil
	})

	app := &App{ID: 1}
	_, _ = app.Type(r)
	_, _ = app.Type(r)
	assert.Equal(t, 1, calls)
}

func TestAppType_RetriesAfterError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	r := TypeResolverFunc(func(int) (AppType, error) {
		calls++
		if calls == 1 {
			return AppTypeGame, boom
		}
		return AppTypeGame, nil
	})

	app := &App{ID: 440}
	got, err := app.Type(r)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, AppTypeUnknown, got)

	got, err = app.Type(r)
	require.NoError(t, err)
	assert.Equal(t, AppTypeGame, got)
	assert.Equal(t, 2, calls)
}

func TestParseAppType(t *testing.T) {
	tests := map[string]AppType{
		"Game":        AppTypeGame,
		"game":        AppTypeGame,
		"APPLICATION": AppTypeApplication,
		"dlc":         AppTypeDLC,
		"DepotOnly":   AppTypeDepotOnly,
		" Music ":     AppTypeMusic,
		"":            AppTypeUnknown,
		"spaceship":   AppTypeUnknown,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseAppType(in), in)
	}
	assert.Equal(t, "Beta", AppTypeBeta.String())
	assert.Equal(t, "Unknown", AppType(99).String())
}

func TestUserAccountID(t *testing.T) {
	u := User{SteamID: 76561198000000000}
	assert.Equal(t, uint32(39734272), u.AccountID())
}

func TestShortcutGameID(t *testing.T) {
	s := Shortcut{AppID: -1}
	assert.Equal(t, uint64(0xFFFFFFFF02000000), s.GameID())

	s = Shortcut{AppID: 0x12345678}
	assert.Equal(t, uint64(0x1234567802000000), s.GameID())
}

func TestAppInstallPath(t *testing.T) {
	folder := &LibraryFolder{Path: filepath.FromSlash("/games/steam")}
	app := &App{InstallDir: "Team Fortress 2", Folder: folder}
	assert.Equal(t, filepath.Join(folder.Path, "steamapps", "common", "Team Fortress 2"), app.InstallPath())

	assert.Empty(t, (&App{Folder: folder}).InstallPath())
}
