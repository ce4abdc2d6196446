package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprintStore_MemoryOnly(t *testing.T) {
	s, err := NewFingerprintStore("", "")
	require.NoError(t, err)
	defer s.Close()

	_, _, ok := s.Load("assets:/x")
	assert.False(t, ok)

	require.NoError(t, s.Save("assets:/x", []byte{1, 2}, []byte(`{"a":1}`)))
	digest, payload, ok := s.Load("assets:/x")
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2}, digest)
	assert.JSONEq(t, `{"a":1}`, string(payload))
	assert.Equal(t, []string{"assets:/x"}, s.Keys())
}

func TestFingerprintStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	root := `C:\Program Files (x86)\Steam`

	s, err := NewFingerprintStore(dir, root)
	require.NoError(t, err)
	require.NoError(t, s.Save("appinfo:/a", []byte("d"), []byte(`[1,2,3]`)))
	require.NoError(t, s.Close())

	s, err = NewFingerprintStore(dir, root)
	require.NoError(t, err)
	defer s.Close()

	digest, payload, ok := s.Load("appinfo:/a")
	require.True(t, ok)
	assert.Equal(t, []byte("d"), digest)
	assert.JSONEq(t, `[1,2,3]`, string(payload))
}

func TestFingerprintStore_SeparateDatabasePerInstallRoot(t *testing.T) {
	dir := t.TempDir()

	a, err := NewFingerprintStore(dir, "/steam/a")
	require.NoError(t, err)
	require.NoError(t, a.Save("k", []byte("d"), []byte(`1`)))
	require.NoError(t, a.Close())

	b, err := NewFingerprintStore(dir, "/steam/b")
	require.NoError(t, err)
	defer b.Close()

	_, _, ok := b.Load("k")
	assert.False(t, ok)
}

func TestFingerprintStore_Invalidation(t *testing.T) {
	s, err := NewFingerprintStore(t.TempDir(), "/steam")
	require.NoError(t, err)
	defer s.Close()

	for _, k := range []string{"appinfo:/1", "appinfo:/2", "assets:/1"} {
		require.NoError(t, s.Save(k, []byte("d"), []byte(`0`)))
	}

	s.InvalidatePrefix("appinfo:")
	assert.Equal(t, []string{"assets:/1"}, s.Keys())

	s.Delete("assets:/1")
	_, _, ok := s.Load("assets:/1")
	assert.False(t, ok)

	require.NoError(t, s.Save("users:/1", []byte("d"), []byte(`0`)))
	s.InvalidateAll()
	assert.Empty(t, s.Keys())
}

func TestHashInstallRoot_IgnoresCaseAndTrailingSeparator(t *testing.T) {
	assert.Equal(t, hashInstallRoot("/Games/Steam/"), hashInstallRoot("/games/steam"))
	assert.NotEqual(t, hashInstallRoot("/games/steam"), hashInstallRoot("/games/other"))
}
