// Package gallery watches a profile's screenshots directory using fsnotify.
package gallery

import (
	"context"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/ember/internal/core/domain"
	"go.trai.ch/ember/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.GalleryWatcher = (*Watcher)(nil)

// imageExtensions are the screenshot formats worth reporting.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

const eventChannelBuffer = 100

// Watcher implements gallery watching using fsnotify. A single Watcher serves
// every launched profile: each Start adds one more directory, and a single
// pump goroutine attributes events to the profile owning their directory.
type Watcher struct {
	logger    ports.Logger
	fsWatcher *fsnotify.Watcher
	events    chan domain.GalleryEvent

	mu       sync.Mutex
	profiles map[string]string
	started  bool
}

// NewWatcher creates a new gallery watcher.
func NewWatcher(logger ports.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, "creating fs watcher")
	}
	return &Watcher{
		logger:    logger,
		fsWatcher: fsWatcher,
		events:    make(chan domain.GalleryEvent, eventChannelBuffer),
		profiles:  make(map[string]string),
	}, nil
}

// Start begins watching the given screenshots directory for the profile. The
// directory is created if it does not exist yet; the game only creates it on
// the first screenshot. Starting the same directory again just reassigns its
// profile.
func (w *Watcher) Start(_ context.Context, profileID, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return zerr.Wrap(domain.ErrFilesystem, err.Error())
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		return zerr.Wrap(err, "watching screenshots dir")
	}

	w.mu.Lock()
	w.profiles[filepath.Clean(dir)] = profileID
	if !w.started {
		w.started = true
		go w.processEvents()
	}
	w.mu.Unlock()
	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	return w.fsWatcher.Close()
}

// Events returns an iterator of gallery events.
func (w *Watcher) Events() iter.Seq[domain.GalleryEvent] {
	return func(yield func(domain.GalleryEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

// processEvents runs until Stop closes the fsnotify channels. It is the only
// writer of w.events and closes it exactly once.
func (w *Watcher) processEvents() {
	defer close(w.events)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			galleryEvent := convertEvent(w.profileFor(event.Name), event)
			if galleryEvent == nil {
				continue
			}

			select {
			case w.events <- *galleryEvent:
			default:
				w.logger.Warn("gallery watcher: event buffer full, dropping " + event.Name)
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("gallery watcher: " + err.Error())
		}
	}
}

// profileFor looks up the profile watching the directory the path lives in.
func (w *Watcher) profileFor(path string) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.profiles[filepath.Clean(filepath.Dir(path))]
}

// convertEvent maps an fsnotify event onto a gallery event, dropping
// non-image paths and uninteresting operations.
func convertEvent(profileID string, event fsnotify.Event) *domain.GalleryEvent {
	if !imageExtensions[strings.ToLower(filepath.Ext(event.Name))] {
		return nil
	}

	if event.Op&fsnotify.Create == fsnotify.Create {
		return &domain.GalleryEvent{ProfileID: profileID, Path: event.Name, Op: domain.GalleryAdded}
	}
	if event.Op&fsnotify.Remove == fsnotify.Remove || event.Op&fsnotify.Rename == fsnotify.Rename {
		return &domain.GalleryEvent{ProfileID: profileID, Path: event.Name, Op: domain.GalleryRemoved}
	}
	return nil
}
