package ports

import "go.trai.ch/ember/internal/core/domain"

// Verifier computes and validates content digests of files on disk.
//
//go:generate mockgen -source=verifier.go -destination=mocks/mock_verifier.go -package=mocks
type Verifier interface {
	// Compute streams the file through the named algorithm and returns the
	// hex digest.
	Compute(path string, algo domain.Algorithm) (string, error)
	// Verify reports whether the file's digest matches expected. A mismatch
	// returns (false, nil); only I/O failures return an error.
	Verify(path string, algo domain.Algorithm, expected string) (bool, error)
}
