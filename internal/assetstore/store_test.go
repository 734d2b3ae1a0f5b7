package assetstore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imageimprov/photogame-api/internal/retry"
)

func testPolicy() retry.Policy {
	return retry.Policy{
		InitialBackoff: time.Millisecond,
		MaxBackoff:     2 * time.Millisecond,
		MaxAttempts:    3,
	}
}

func TestSaveCreatesShardDirectories(t *testing.T) {
	root := t.TempDir()
	store := NewWithPolicy(root, testPolicy())

	image := []byte("fake jpeg bytes")
	saved, err := store.Save(image, ".jpeg")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(saved.Dir, root), "shard dir must live under the store root")
	assert.True(t, strings.HasSuffix(saved.Filename, ".jpeg"))
	assert.Equal(t, saved.ID.Hex()+".jpeg", saved.Filename)

	// The shard chain did not exist before this write.
	info, err := os.Stat(saved.Dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	data, err := os.ReadFile(saved.FullPath())
	require.NoError(t, err)
	assert.Equal(t, image, data, "every byte must land on disk")
}

func TestSaveNormalizesExtension(t *testing.T) {
	store := NewWithPolicy(t.TempDir(), testPolicy())

	saved, err := store.Save([]byte("png"), "png")
	require.NoError(t, err)
	assert.Equal(t, saved.ID.Hex()+".png", saved.Filename)
}

func TestSaveRejectsEmptyImage(t *testing.T) {
	store := NewWithPolicy(t.TempDir(), testPolicy())

	_, err := store.Save(nil, ".jpeg")
	assert.Error(t, err)
}

func TestSaveIntoExistingShardDirectory(t *testing.T) {
	root := t.TempDir()
	store := NewWithPolicy(root, testPolicy())

	first, err := store.Save([]byte("one"), ".jpeg")
	require.NoError(t, err)

	// A second write into an already-created shard chain must not fail on
	// the existing directories.
	second, err := store.Save([]byte("two"), ".jpeg")
	require.NoError(t, err)

	assert.NotEqual(t, first.Filename, second.Filename)
}

func TestLoadRoundTrip(t *testing.T) {
	store := NewWithPolicy(t.TempDir(), testPolicy())

	image := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}
	saved, err := store.Save(image, ".jpeg")
	require.NoError(t, err)

	data, err := store.Load(saved.Dir, saved.Filename)
	require.NoError(t, err)
	assert.Equal(t, image, data)
}

func TestLoadMissingFile(t *testing.T) {
	root := t.TempDir()
	store := NewWithPolicy(root, testPolicy())

	_, err := store.Load(filepath.Join(root, "000", "000", "000"), "missing.jpeg")
	assert.Error(t, err)
}

func TestSaveFailsWhenRootIsUnwritable(t *testing.T) {
	root := t.TempDir()
	blocked := filepath.Join(root, "blocked")

	// A regular file where the root should be makes every MkdirAll fail,
	// so the retry schedule runs out.
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0o644))

	store := NewWithPolicy(filepath.Join(blocked, "store"), testPolicy())

	_, err := store.Save([]byte("img"), ".jpeg")
	assert.Error(t, err)
}
