package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return func() { _ = os.Chdir(old) }
}

func TestEnsureParentDir_CreatesDirectoryInCWD(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	got, err := EnsureParentDir(filepath.Join(".bidsync", "cache.db"))
	require.NoError(t, err)

	// the temp dir may sit behind a symlink
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(wd, ".bidsync", "cache.db"), got)

	fi, err := os.Stat(filepath.Dir(got))
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		perm := fi.Mode().Perm()
		require.Equal(t, os.FileMode(0o700), perm&0o700)
	}
}

func TestEnsureParentDir_Idempotent(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "a", "b", "cache.db")

	first, err := EnsureParentDir(path)
	require.NoError(t, err)

	second, err := EnsureParentDir(path)
	require.NoError(t, err)

	require.Equal(t, first, second)
	_, err = os.Stat(filepath.Join(tmp, "a", "b"))
	require.NoError(t, err)
}

func TestEnsureParentDir_FailsIfFileWithSameNameExists(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "cache"), []byte("x"), 0o660))

	_, err := EnsureParentDir(filepath.Join(tmp, "cache", "cache.db"))
	require.Error(t, err, "should fail when a file exists with the directory's name")
}

func TestIsPlainPath(t *testing.T) {
	require.True(t, IsPlainPath("bidsync.db"))
	require.True(t, IsPlainPath("/var/lib/bidsync/cache.db"))
	require.False(t, IsPlainPath(":memory:"))
	require.False(t, IsPlainPath("file:cache.db?mode=memory"))
	require.False(t, IsPlainPath(""))
}
