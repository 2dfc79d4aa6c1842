package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiskStore_Save_OverwritesSameName(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	assert.NoError(t, err)

	name, err := store.Save("a.png", strings.NewReader("first"))
	assert.NoError(t, err)
	assert.Equal(t, "a.png", name)

	// Same filename silently overwrites the earlier upload.
	name, err = store.Save("a.png", strings.NewReader("second"))
	assert.NoError(t, err)
	assert.Equal(t, "a.png", name)

	data, err := os.ReadFile(filepath.Join(dir, "a.png"))
	assert.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestDiskStore_Save_StripsPathComponents(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	assert.NoError(t, err)

	name, err := store.Save("../../etc/passwd.png", strings.NewReader("data"))
	assert.NoError(t, err)
	assert.Equal(t, "passwd.png", name)

	_, err = os.Stat(filepath.Join(dir, "passwd.png"))
	assert.NoError(t, err)
}

func TestNewDiskStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	_, err := NewDiskStore(dir)
	assert.NoError(t, err)

	info, err := os.Stat(dir)
	assert.NoError(t, err)
	assert.True(t, info.IsDir())
}
