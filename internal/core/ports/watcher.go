package ports

import (
	"context"
	"iter"

	"go.trai.ch/ember/internal/core/domain"
)

// GalleryWatcher observes a profile's screenshots directory and reports
// added and removed images.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type GalleryWatcher interface {
	// Start begins watching the given directory.
	Start(ctx context.Context, profileID, dir string) error
	// Stop stops the watcher and releases all resources.
	Stop() error
	// Events returns an iterator of gallery events.
	Events() iter.Seq[domain.GalleryEvent]
}
