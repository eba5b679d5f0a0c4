package persistence

import (
	"os"
	"path/filepath"
	"sid/internal/structures"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileStore(t *testing.T) (*FileBlobStore, string) {
	dir := t.TempDir()
	store, err := NewFileBlobStore(&structures.Config{
		Persistence: structures.Persistence{Dir: dir},
	})
	require.NoError(t, err)
	return store.(*FileBlobStore), dir
}

func TestFileBlobStore_WriteRead(t *testing.T) {
	store, _ := newFileStore(t)

	require.NoError(t, store.Write("users", []byte("payload")))

	data, err := store.Read("users")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)
}

func TestFileBlobStore_ReadMissingReturnsNil(t *testing.T) {
	store, _ := newFileStore(t)

	data, err := store.Read("absent")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestFileBlobStore_WriteReplacesAtomically(t *testing.T) {
	store, dir := newFileStore(t)

	require.NoError(t, store.Write("records", []byte("old")))
	require.NoError(t, store.Write("records", []byte("new")))

	data, err := store.Read("records")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), data)

	// No temp file may survive a completed write.
	_, err = os.Stat(filepath.Join(dir, "records.dat.tmp"))
	assert.True(t, os.IsNotExist(err))
}

func TestFileBlobStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	_, err := NewFileBlobStore(&structures.Config{
		Persistence: structures.Persistence{Dir: dir},
	})
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
