package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLocalRequiresDirectory(t *testing.T) {
	_, err := NewLocal("")
	require.Error(t, err)
}

func TestGenerateNamePreservesExtension(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	name := store.GenerateName("evidence", "Forklift Cert.PDF")
	require.True(t, strings.HasPrefix(name, "evidence-"))
	require.True(t, strings.HasSuffix(name, ".pdf"))

	other := store.GenerateName("evidence", "Forklift Cert.PDF")
	require.NotEqual(t, name, other)
}

func TestSaveAndRemove(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocal(dir)
	require.NoError(t, err)

	path, written, err := store.Save("evidence-1.pdf", strings.NewReader("certificate body"))
	require.NoError(t, err)
	require.Equal(t, int64(len("certificate body")), written)
	require.Equal(t, filepath.Join(dir, "evidence-1.pdf"), path)

	data, err := os.ReadFile(store.Path("evidence-1.pdf"))
	require.NoError(t, err)
	require.Equal(t, "certificate body", string(data))

	require.NoError(t, store.Remove("evidence-1.pdf"))
	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))

	// Removing a missing file is not an error.
	require.NoError(t, store.Remove("evidence-1.pdf"))
}

func TestSaveStripsPathTraversal(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocal(dir)
	require.NoError(t, err)

	path, _, err := store.Save("../escape.txt", strings.NewReader("x"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "escape.txt"), path)
}
