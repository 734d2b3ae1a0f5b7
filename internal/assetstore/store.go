// Package assetstore persists uploaded image bytes under a sharded,
// time-derived directory layout. The store knows nothing about database
// records: callers persist the catalog row only after a write succeeds.
package assetstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/imageimprov/photogame-api/internal/gameid"
	"github.com/imageimprov/photogame-api/internal/logger"
	"github.com/imageimprov/photogame-api/internal/retry"
)

// SavedAsset describes where a successful write landed.
type SavedAsset struct {
	ID       gameid.ID
	Dir      string // absolute shard directory, e.g. /mnt/image_files/003/045/322
	Filename string // e.g. 970797DFD9F149269D394F9D43179D64.jpeg
}

// FullPath returns the complete on-disk path of the stored file.
func (a SavedAsset) FullPath() string {
	return filepath.Join(a.Dir, a.Filename)
}

// Store writes and reads image files under a configured mount root.
type Store struct {
	root   string
	policy retry.Policy
	log    *log.Logger
}

// New creates a store rooted at the given mount point, using the default
// retry policy for transient write failures.
func New(root string) *Store {
	return &Store{
		root:   root,
		policy: retry.DefaultPolicy(),
		log:    logger.Store(),
	}
}

// NewWithPolicy creates a store with a custom retry policy. Tests use this
// to avoid the full backoff schedule.
func NewWithPolicy(root string, policy retry.Policy) *Store {
	return &Store{
		root:   root,
		policy: policy,
		log:    logger.Store(),
	}
}

// Root returns the store's mount root.
func (s *Store) Root() string {
	return s.root
}

// Save durably writes image bytes under a freshly generated time-ordered
// identifier. The filename is the identifier's uppercase hex rendering plus
// the supplied extension; the directory is derived from the identifier's
// time fields via ShardPath.
func (s *Store) Save(image []byte, extension string) (*SavedAsset, error) {
	if len(image) == 0 {
		return nil, errors.New("image bytes cannot be empty")
	}

	id, err := gameid.New()
	if err != nil {
		return nil, err
	}

	if extension != "" && !strings.HasPrefix(extension, ".") {
		extension = "." + extension
	}

	saved := &SavedAsset{
		ID:       id,
		Dir:      filepath.Join(s.root, ShardPath(id)),
		Filename: id.Hex() + extension,
	}

	fullPath := saved.FullPath()
	s.log.Debug("writing asset", "path", fullPath, "bytes", len(image))

	err = retry.Do(s.policy, func() error {
		return s.writeFile(fullPath, image)
	})
	if err != nil {
		s.log.Error("asset write failed", "path", fullPath, "error", err)
		return nil, fmt.Errorf("failed to store asset %s: %w", saved.Filename, err)
	}

	s.log.Info("asset stored", "filename", saved.Filename, "dir", saved.Dir, "bytes", len(image))
	return saved, nil
}

// writeFile is one attempt of the write protocol: write directly, and only
// when the failure is a missing path create the directory chain and retry
// the write once. There is deliberately no existence check before the first
// write; checking first would race against a concurrent writer creating the
// same shard directory.
func (s *Store) writeFile(path string, data []byte) error {
	err := writeBytes(path, data)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	// MkdirAll treats an already-existing directory as success, which keeps
	// two workers racing on the same shard directory safe.
	if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr != nil {
		return fmt.Errorf("failed to create shard directory: %w", mkErr)
	}

	return writeBytes(path, data)
}

// writeBytes writes the file and requires the reported byte count to match
// the input length exactly.
func writeBytes(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	n, err := f.Write(data)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}
	if n != len(data) {
		return fmt.Errorf("short write: %d of %d bytes", n, len(data))
	}
	return nil
}

// Load reads back the raw bytes of a previously stored file. Filesystem
// errors, including a missing file, propagate to the caller; the catalog
// row is the source of truth for existence.
func (s *Store) Load(dir, filename string) ([]byte, error) {
	path := filepath.Join(dir, filename)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read asset %s: %w", filename, err)
	}

	s.log.Debug("asset read", "path", path, "bytes", len(data))
	return data, nil
}
