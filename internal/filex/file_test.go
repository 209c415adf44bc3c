package filex

import (
	"os"
	"path/filepath"
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

func TestWriteInSubdir_CreatesDirectoryAndFile(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	got, err := WriteInSubdir("exports", "books.json", []byte("[]"))
	require.NoError(t, err)

	want := filepath.Join(tmp, "exports", "books.json")
	require.Equal(t, want, got)

	data, err := os.ReadFile(want)
	require.NoError(t, err)
	require.Equal(t, "[]", string(data))
}

func TestWriteInSubdir_ExistingDirOverwrites(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	_, err := WriteInSubdir("exports", "a.json", []byte("1"))
	require.NoError(t, err)
	path, err := WriteInSubdir("exports", "a.json", []byte("2"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "2", string(data))
}

func TestWriteInSubdir_RejectsPaths(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	for _, name := range []string{"", "../x.json", "a/b.json"} {
		_, err := WriteInSubdir("exports", name, []byte("x"))
		require.Error(t, err, name)
	}
}

func TestWriteInSubdir_DirIsAFile(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	require.NoError(t, os.WriteFile(filepath.Join(tmp, "exports"), []byte("x"), 0o600))

	_, err := WriteInSubdir("exports", "a.json", []byte("x"))
	require.Error(t, err)
}
