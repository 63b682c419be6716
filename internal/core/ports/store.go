package ports

import "go.trai.ch/ember/internal/core/domain"

// Store owns the launcher's on-disk layout: a shared maven-addressed library
// store, per-version directories, a per-version natives directory and the
// sharded assets store. File creation is append/create-if-absent and
// effectively atomic (temp write + rename), so concurrent installers may
// race on the same coordinate without corrupting a file under verification.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type Store interface {
	// Root returns the data root directory.
	Root() string

	// VersionDir returns the directory holding a version's descriptor and jar.
	VersionDir(versionID string) string
	// DescriptorPath returns the path of a version's descriptor JSON.
	DescriptorPath(versionID string) string
	// ClientJarPath returns the path of a version's primary client artifact.
	ClientJarPath(versionID string) string

	// LibrariesDir returns the shared library store root.
	LibrariesDir() string
	// LibraryPath joins a maven-derived relative path onto the library store.
	LibraryPath(relPath string) string

	// NativesDir returns the per-version natives extraction directory.
	NativesDir(versionID string) string

	// AssetsDir returns the assets store root.
	AssetsDir() string
	// AssetIndexPath returns the path of an asset index document.
	AssetIndexPath(indexID string) string
	// AssetObjectPath returns the sharded path of a content-addressed object.
	AssetObjectPath(shardPath string) string

	// RuntimesDir returns the managed Java runtimes directory.
	RuntimesDir() string

	// ReadDescriptor loads a version descriptor from the store.
	ReadDescriptor(versionID string) (*domain.VersionDescriptor, error)
	// WriteDescriptor persists a version descriptor atomically.
	WriteDescriptor(desc *domain.VersionDescriptor) error
	// HasDescriptor reports whether a descriptor exists locally.
	HasDescriptor(versionID string) bool

	// WriteFile atomically writes data to an arbitrary path under the root,
	// creating parent directories.
	WriteFile(path string, data []byte) error
}
