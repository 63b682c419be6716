package installer

import (
	"context"
	"errors"
	"fmt"

	"go.trai.ch/ember/internal/core/domain"
	"go.trai.ch/ember/internal/core/ports"
	"go.trai.ch/ember/internal/engine/resolver"
)

// Reconciler brings a version's on-disk state in line with its merged
// descriptor chain: any library missing from the store is fetched. Loader
// installers run it after writing or discovering a descriptor, so external
// installer output and synthesized descriptors end up equally complete.
type Reconciler struct {
	logger   ports.Logger
	store    ports.Store
	fetcher  ports.Fetcher
	resolver *resolver.Resolver
	sink     ports.ProgressSink
	platform domain.Platform
}

// NewReconciler creates a Reconciler.
func NewReconciler(logger ports.Logger, store ports.Store, fetcher ports.Fetcher, res *resolver.Resolver, sink ports.ProgressSink) *Reconciler {
	return &Reconciler{
		logger:   logger,
		store:    store,
		fetcher:  fetcher,
		resolver: res,
		sink:     sink,
		platform: domain.CurrentPlatform(),
	}
}

// Reconcile fetches everything the merged descriptor requires that is not
// in the store yet.
func (r *Reconciler) Reconcile(ctx context.Context, profileID, versionID string) error {
	merged, err := r.resolver.LoadMerged(ctx, versionID)
	if err != nil {
		return err
	}

	tasks, err := libraryTasks(merged, r.platform, r.store)
	if err != nil {
		return err
	}
	tasks = missingOnly(tasks)
	if len(tasks) == 0 {
		return nil
	}

	r.logger.Info(fmt.Sprintf("reconciling %d missing libraries for %s", len(tasks), versionID))
	errs := r.fetcher.FetchAllWithProgress(ctx, tasks, func(completed, total int, fileName string) {
		r.sink.Progress(domain.ProgressEvent{
			ProfileID: profileID,
			Stage:     "libraries",
			Message:   fileName,
			Percent:   bandLibraries.at(completed, total),
			Status:    domain.ProgressRunning,
		})
	})
	return errors.Join(errs...)
}
