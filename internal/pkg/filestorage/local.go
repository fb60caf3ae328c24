package filestorage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yudha/sipkl/internal/pkg/logger"
)

// Folder names used by the workflow services.
const (
	FolderPKL    = "pkl"
	FolderJurnal = "jurnal"
)

// LocalStorage stores blobs on the local filesystem under a base
// directory, one subdirectory per logical folder.
type LocalStorage struct {
	basePath string
}

var _ Store = (*LocalStorage)(nil)

// NewLocalStorage creates a LocalStorage rooted at basePath, creating the
// directory if needed.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &LocalStorage{basePath: basePath}, nil
}

// sanitizeName strips any path components from a blob name so stored names
// cannot traverse out of their folder.
func sanitizeName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	return filepath.Base(name)
}

// Save writes data to {basePath}/{folder}/{name} and returns the logical
// path "/{folder}/{name}" for persistence on the owning entity.
func (ls *LocalStorage) Save(folder, name string, data []byte) (string, error) {
	name = sanitizeName(name)
	if name == "" || name == "." || name == "/" {
		return "", fmt.Errorf("invalid blob name %q", name)
	}

	dir := filepath.Join(ls.basePath, folder)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create folder %s: %w", folder, err)
	}

	dst := filepath.Join(dir, name)
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write blob %s: %w", dst, err)
	}

	logger.Debug().Str("folder", folder).Str("name", name).Msg("blob saved")
	return "/" + folder + "/" + name, nil
}

// Delete removes the named blobs from a folder, skipping blanks and blobs
// that do not exist. Returns the number actually removed.
func (ls *LocalStorage) Delete(folder string, names ...string) (int, error) {
	deleted := 0
	for _, name := range names {
		name = sanitizeName(name)
		if name == "" || name == "." {
			continue
		}

		path := filepath.Join(ls.basePath, folder, name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		if err := os.Remove(path); err != nil {
			return deleted, fmt.Errorf("failed to delete blob %s: %w", path, err)
		}
		deleted++
	}
	return deleted, nil
}

// Exists reports whether a logical path ("/{folder}/{name}") refers to a
// stored blob.
func (ls *LocalStorage) Exists(path string) bool {
	_, err := os.Stat(ls.Resolve(path))
	return err == nil
}

// Resolve maps a logical path to its filesystem location, stripping
// traversal components from both the folder and name parts.
func (ls *LocalStorage) Resolve(path string) string {
	path = strings.TrimPrefix(strings.ReplaceAll(path, "\\", "/"), "/")
	folder, name, found := strings.Cut(path, "/")
	if !found {
		return filepath.Join(ls.basePath, sanitizeName(folder))
	}
	return filepath.Join(ls.basePath, sanitizeName(folder), sanitizeName(name))
}
