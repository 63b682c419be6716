// Package store implements the launcher's on-disk layout: version
// descriptors, the shared maven-addressed library store, per-version natives
// and the sharded assets store.
package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/ember/internal/core/domain"
	"go.trai.ch/ember/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Store = (*Store)(nil)

// Store lays the launcher's data out under a single root directory.
type Store struct {
	root string
}

// New creates a Store rooted at the given directory, creating it if needed.
func New(root string) (*Store, error) {
	root = filepath.Clean(root)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrFilesystem, err.Error()), "path", root)
	}
	return &Store{root: root}, nil
}

// Root returns the data root directory.
func (s *Store) Root() string {
	return s.root
}

// VersionDir returns the directory holding a version's descriptor and jar.
func (s *Store) VersionDir(versionID string) string {
	return filepath.Join(s.root, "versions", versionID)
}

// DescriptorPath returns the path of a version's descriptor JSON.
func (s *Store) DescriptorPath(versionID string) string {
	return filepath.Join(s.VersionDir(versionID), versionID+".json")
}

// ClientJarPath returns the path of a version's primary client artifact.
func (s *Store) ClientJarPath(versionID string) string {
	return filepath.Join(s.VersionDir(versionID), versionID+".jar")
}

// LibrariesDir returns the shared library store root.
func (s *Store) LibrariesDir() string {
	return filepath.Join(s.root, "libraries")
}

// LibraryPath joins a maven-derived relative path onto the library store.
func (s *Store) LibraryPath(relPath string) string {
	return filepath.Join(s.LibrariesDir(), filepath.FromSlash(relPath))
}

// NativesDir returns the per-version natives extraction directory.
func (s *Store) NativesDir(versionID string) string {
	return filepath.Join(s.root, "natives", versionID)
}

// AssetsDir returns the assets store root.
func (s *Store) AssetsDir() string {
	return filepath.Join(s.root, "assets")
}

// AssetIndexPath returns the path of an asset index document.
func (s *Store) AssetIndexPath(indexID string) string {
	return filepath.Join(s.AssetsDir(), "indexes", indexID+".json")
}

// AssetObjectPath returns the sharded path of a content-addressed object.
func (s *Store) AssetObjectPath(shardPath string) string {
	return filepath.Join(s.AssetsDir(), "objects", filepath.FromSlash(shardPath))
}

// RuntimesDir returns the managed Java runtimes directory.
func (s *Store) RuntimesDir() string {
	return filepath.Join(s.root, "runtimes")
}

// ReadDescriptor loads a version descriptor from the store.
func (s *Store) ReadDescriptor(versionID string) (*domain.VersionDescriptor, error) {
	path := s.DescriptorPath(versionID)

	//nolint:gosec // Path is derived from the store root
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(domain.ErrDescriptorNotFound, "not installed"), "version", versionID)
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrFilesystem, err.Error()), "path", path)
	}

	var desc domain.VersionDescriptor
	if err := json.Unmarshal(data, &desc); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to decode version descriptor"), "path", path)
	}
	return &desc, nil
}

// WriteDescriptor persists a version descriptor atomically.
func (s *Store) WriteDescriptor(desc *domain.VersionDescriptor) error {
	data, err := json.MarshalIndent(desc, "", "  ")
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to encode version descriptor"), "version", desc.ID)
	}
	return s.WriteFile(s.DescriptorPath(desc.ID), data)
}

// HasDescriptor reports whether a descriptor exists locally.
func (s *Store) HasDescriptor(versionID string) bool {
	_, err := os.Stat(s.DescriptorPath(versionID))
	return err == nil
}

// WriteFile atomically writes data to a path under the root: the payload
// goes to a temp file in the destination directory first and is renamed
// into place, so a concurrent verifier never observes a partial write.
func (s *Store) WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrFilesystem, err.Error()), "path", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrFilesystem, err.Error()), "path", dir)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(domain.ErrFilesystem, err.Error()), "path", tmpName)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(domain.ErrFilesystem, err.Error()), "path", tmpName)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(domain.ErrFilesystem, err.Error()), "path", path)
	}
	return nil
}
