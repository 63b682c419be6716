package installer

import (
	"encoding/json"
	"os"
	"strings"

	"go.trai.ch/ember/internal/core/domain"
	"go.trai.ch/ember/internal/core/ports"
	"go.trai.ch/zerr"
)

// libraryTasks builds the download tasks for every library and native jar a
// descriptor requires on the given platform. Libraries without a resolvable
// URL are skipped; loader installers materialize those out of band.
func libraryTasks(desc *domain.VersionDescriptor, platform domain.Platform, store ports.Store) ([]domain.DownloadTask, error) {
	var tasks []domain.DownloadTask

	for _, lib := range desc.Libraries {
		if !domain.RulesAllow(lib.Rules, platform, nil) {
			continue
		}

		if task, ok, err := artifactTask(lib, store); err != nil {
			return nil, err
		} else if ok {
			tasks = append(tasks, task)
		}

		if native := lib.NativeArtifact(platform); native != nil && native.URL != "" {
			rel := native.Path
			if rel == "" {
				continue
			}
			tasks = append(tasks, domain.DownloadTask{
				URL:  native.URL,
				Path: store.LibraryPath(rel),
				SHA1: native.SHA1,
				Size: native.Size,
			})
		}
	}
	return tasks, nil
}

// artifactTask builds the task for a library's direct artifact, reporting
// ok=false when the library carries nothing fetchable.
func artifactTask(lib domain.Library, store ports.Store) (domain.DownloadTask, bool, error) {
	if artifact := lib.Artifact(); artifact != nil && artifact.URL != "" {
		rel := artifact.Path
		if rel == "" {
			var err error
			rel, err = domain.MavenPath(lib.Name)
			if err != nil {
				return domain.DownloadTask{}, false, err
			}
		}
		return domain.DownloadTask{
			URL:  artifact.URL,
			Path: store.LibraryPath(rel),
			SHA1: artifact.SHA1,
			Size: artifact.Size,
		}, true, nil
	}

	// Loader-style declaration: a maven base URL plus the coordinate.
	if lib.URL != "" {
		rel, err := domain.MavenPath(lib.Name)
		if err != nil {
			return domain.DownloadTask{}, false, err
		}
		base := lib.URL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		return domain.DownloadTask{
			URL:  base + rel,
			Path: store.LibraryPath(rel),
			SHA1: lib.SHA1,
			Size: lib.Size,
		}, true, nil
	}

	return domain.DownloadTask{}, false, nil
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path) //nolint:gosec // paths are store-derived
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrFilesystem, err.Error()), "path", path)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrMetadataParse, err.Error()), "path", path)
	}
	return nil
}

// missingOnly filters tasks down to those whose destination does not exist.
func missingOnly(tasks []domain.DownloadTask) []domain.DownloadTask {
	missing := tasks[:0]
	for _, task := range tasks {
		if _, err := os.Stat(task.Path); err != nil {
			missing = append(missing, task)
		}
	}
	return missing
}
