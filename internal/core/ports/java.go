package ports

import "context"

// JavaLocator resolves a Java executable for a required major version:
// explicit override, then managed runtimes, then platform search, then a
// managed runtime download.
//
//go:generate mockgen -source=java.go -destination=mocks/mock_java.go -package=mocks
type JavaLocator interface {
	// Resolve returns the path of a Java executable of at least the given
	// major version.
	Resolve(ctx context.Context, majorVersion int) (string, error)
}
