package domain

import "go.trai.ch/zerr"

var (
	// ErrIntegrityMismatch is returned when a file's digest does not match the expected value.
	ErrIntegrityMismatch = zerr.New("integrity mismatch")

	// ErrRetryExhausted is returned when a download fails after the full retry budget.
	ErrRetryExhausted = zerr.New("retry budget exhausted")

	// ErrFilesystem is returned when a file cannot be read, written or created.
	ErrFilesystem = zerr.New("filesystem operation failed")

	// ErrNetwork is returned when a network request fails.
	ErrNetwork = zerr.New("network request failed")

	// ErrVersionNotFound is returned when a requested engine or loader version does not exist upstream.
	ErrVersionNotFound = zerr.New("version not found")

	// ErrDescriptorNotFound is returned when a version descriptor is missing from the local store.
	ErrDescriptorNotFound = zerr.New("version descriptor not found")

	// ErrInheritanceCycle is returned when a descriptor inheritance chain loops back on itself.
	ErrInheritanceCycle = zerr.New("descriptor inheritance cycle")

	// ErrUnsupportedLoader is returned for loader families that are recognized but not installable.
	ErrUnsupportedLoader = zerr.New("unsupported loader family")

	// ErrNoCompatibleLoader is returned when no loader build exists for the requested engine version.
	ErrNoCompatibleLoader = zerr.New("no compatible loader build")

	// ErrSpawnFailed is returned when the game process cannot be started.
	ErrSpawnFailed = zerr.New("failed to spawn process")

	// ErrJavaNotFound is returned when no suitable Java runtime could be located or provisioned.
	ErrJavaNotFound = zerr.New("java runtime not found")

	// ErrMetadataParse is returned when an upstream metadata document cannot be decoded.
	ErrMetadataParse = zerr.New("failed to parse metadata")

	// ErrInvalidCoordinate is returned when a maven coordinate cannot be split into its parts.
	ErrInvalidCoordinate = zerr.New("invalid maven coordinate")

	// ErrInstallerRunFailed is returned when an external loader installer exits abnormally.
	ErrInstallerRunFailed = zerr.New("external installer run failed")
)
