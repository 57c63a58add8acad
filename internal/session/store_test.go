package session_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/themirmakhmudov/lms-cli/internal/session"
)

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "lms-token")
	store := session.NewStore(path)

	_, ok := store.Token()
	require.False(t, ok, "fresh store must be anonymous")

	require.NoError(t, store.Save("tok-abc"))

	token, ok := store.Token()
	require.True(t, ok)
	require.Equal(t, "tok-abc", token)

	// A second store on the same path sees the persisted token.
	token, ok = session.NewStore(path).Token()
	require.True(t, ok)
	require.Equal(t, "tok-abc", token)
}

func TestStoreLastWriteWins(t *testing.T) {
	store := session.NewStore(filepath.Join(t.TempDir(), "lms-token"))
	require.NoError(t, store.Save("first"))
	require.NoError(t, store.Save("second"))

	token, ok := store.Token()
	require.True(t, ok)
	require.Equal(t, "second", token)
}

func TestStoreClearIsIdempotent(t *testing.T) {
	store := session.NewStore(filepath.Join(t.TempDir(), "lms-token"))
	require.NoError(t, store.Save("tok"))

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear(), "clearing an absent token is a no-op")

	_, ok := store.Token()
	require.False(t, ok)
}

func TestStoreIgnoresSurroundingWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lms-token")
	require.NoError(t, os.WriteFile(path, []byte("  tok-xyz\n"), 0o600))

	token, ok := session.NewStore(path).Token()
	require.True(t, ok)
	require.Equal(t, "tok-xyz", token)
}

func TestStoreFilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	path := filepath.Join(t.TempDir(), "lms-token")
	store := session.NewStore(path)
	require.NoError(t, store.Save("tok"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
