package installer

import (
	"context"
	"errors"
	"fmt"

	"go.trai.ch/ember/internal/core/domain"
	"go.trai.ch/ember/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Installer = (*Engine)(nil)

// Progress percentage bands per install stage. Library and asset downloads
// interpolate within their band by completed/total.
var (
	bandManifest  = band{0, 5}
	bandClient    = band{5, 15}
	bandLibraries = band{15, 50}
	bandAssets    = band{50, 90}
	bandFinalize  = band{90, 95}
)

type band struct{ from, to float64 }

func (b band) at(completed, total int) float64 {
	if total == 0 {
		return b.to
	}
	return b.from + (b.to-b.from)*float64(completed)/float64(total)
}

// Engine installs base engine versions: descriptor, client jar, libraries
// with their natives, and the content-addressed asset store.
type Engine struct {
	logger   ports.Logger
	store    ports.Store
	fetcher  ports.Fetcher
	meta     *Meta
	sink     ports.ProgressSink
	tracer   ports.Tracer
	platform domain.Platform
}

// NewEngine creates the base engine installer.
func NewEngine(logger ports.Logger, store ports.Store, fetcher ports.Fetcher, meta *Meta, sink ports.ProgressSink, tracer ports.Tracer) *Engine {
	return &Engine{
		logger:   logger,
		store:    store,
		fetcher:  fetcher,
		meta:     meta,
		sink:     sink,
		tracer:   tracer,
		platform: domain.CurrentPlatform(),
	}
}

// Kind names the loader family this installer handles.
func (e *Engine) Kind() domain.LoaderKind {
	return domain.LoaderVanilla
}

// Install provisions the plan's engine version and returns its version id.
// Installs are idempotent: everything already present and intact is skipped.
func (e *Engine) Install(ctx context.Context, plan domain.InstallPlan) (string, error) {
	ctx, span := e.tracer.Start(ctx, "install.engine")
	defer span.End()
	span.SetAttribute("version", plan.EngineVersion)

	desc, err := e.ensureDescriptor(ctx, plan)
	if err != nil {
		e.fail(plan, "manifest", err)
		span.RecordError(err)
		return "", err
	}

	if err := e.installClient(ctx, plan, desc); err != nil {
		e.fail(plan, "client", err)
		span.RecordError(err)
		return "", err
	}

	if err := e.installLibraries(ctx, plan, desc); err != nil {
		e.fail(plan, "libraries", err)
		span.RecordError(err)
		return "", err
	}

	if err := e.installAssets(ctx, plan, desc); err != nil {
		e.fail(plan, "assets", err)
		span.RecordError(err)
		return "", err
	}

	e.emit(plan, "finalize", "finalizing", bandFinalize.to, domain.ProgressRunning)
	e.emit(plan, "complete", "install complete", 100, domain.ProgressComplete)
	return desc.ID, nil
}

// ensureDescriptor resolves the manifest entry and materializes the version
// descriptor in the store.
func (e *Engine) ensureDescriptor(ctx context.Context, plan domain.InstallPlan) (*domain.VersionDescriptor, error) {
	e.emit(plan, "manifest", "resolving version", bandManifest.from, domain.ProgressRunning)

	if e.store.HasDescriptor(plan.EngineVersion) {
		e.emit(plan, "manifest", "descriptor cached", bandManifest.to, domain.ProgressRunning)
		return e.store.ReadDescriptor(plan.EngineVersion)
	}

	manifest, err := e.meta.Manifest(ctx)
	if err != nil {
		return nil, err
	}
	entry, ok := manifest.Find(plan.EngineVersion)
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrVersionNotFound, "not in upstream manifest"), "version", plan.EngineVersion)
	}

	var desc domain.VersionDescriptor
	if err := e.meta.GetJSON(ctx, entry.URL, &desc); err != nil {
		return nil, err
	}
	if err := e.store.WriteDescriptor(&desc); err != nil {
		return nil, err
	}

	e.emit(plan, "manifest", "descriptor fetched", bandManifest.to, domain.ProgressRunning)
	return &desc, nil
}

func (e *Engine) installClient(ctx context.Context, plan domain.InstallPlan, desc *domain.VersionDescriptor) error {
	if desc.Downloads == nil || desc.Downloads.Client == nil {
		return zerr.With(zerr.Wrap(domain.ErrMetadataParse, "descriptor incomplete"), "missing", "downloads.client")
	}
	client := desc.Downloads.Client

	e.emit(plan, "client", "downloading client", bandClient.from, domain.ProgressRunning)
	err := e.fetcher.Fetch(ctx, domain.DownloadTask{
		URL:  client.URL,
		Path: e.store.ClientJarPath(desc.ID),
		SHA1: client.SHA1,
		Size: client.Size,
	})
	if err != nil {
		return err
	}
	e.emit(plan, "client", "client ready", bandClient.to, domain.ProgressRunning)
	return nil
}

func (e *Engine) installLibraries(ctx context.Context, plan domain.InstallPlan, desc *domain.VersionDescriptor) error {
	tasks, err := libraryTasks(desc, e.platform, e.store)
	if err != nil {
		return err
	}

	e.emit(plan, "libraries", fmt.Sprintf("downloading %d libraries", len(tasks)), bandLibraries.from, domain.ProgressRunning)
	errs := e.fetcher.FetchAllWithProgress(ctx, tasks, func(completed, total int, fileName string) {
		e.emit(plan, "libraries", fileName, bandLibraries.at(completed, total), domain.ProgressRunning)
	})
	return errors.Join(errs...)
}

func (e *Engine) installAssets(ctx context.Context, plan domain.InstallPlan, desc *domain.VersionDescriptor) error {
	if desc.AssetIndex == nil {
		// Loader descriptors inherit assets from their parent.
		return nil
	}

	e.emit(plan, "assets", "fetching asset index", bandAssets.from, domain.ProgressRunning)
	indexPath := e.store.AssetIndexPath(desc.AssetIndex.ID)
	err := e.fetcher.Fetch(ctx, domain.DownloadTask{
		URL:  desc.AssetIndex.URL,
		Path: indexPath,
		SHA1: desc.AssetIndex.SHA1,
		Size: desc.AssetIndex.Size,
	})
	if err != nil {
		return err
	}

	var index domain.AssetIndex
	if err := readJSONFile(indexPath, &index); err != nil {
		return err
	}

	tasks := make([]domain.DownloadTask, 0, len(index.Objects))
	for _, obj := range index.Objects {
		shard := obj.ShardPath()
		tasks = append(tasks, domain.DownloadTask{
			URL:  e.meta.AssetsBaseURL + "/" + shard,
			Path: e.store.AssetObjectPath(shard),
			SHA1: obj.Hash,
			Size: obj.Size,
		})
	}

	errs := e.fetcher.FetchAllWithProgress(ctx, tasks, func(completed, total int, fileName string) {
		e.emit(plan, "assets", fileName, bandAssets.at(completed, total), domain.ProgressRunning)
	})
	return errors.Join(errs...)
}

func (e *Engine) emit(plan domain.InstallPlan, stage, message string, percent float64, status domain.ProgressStatus) {
	e.sink.Progress(domain.ProgressEvent{
		ProfileID: plan.ProfileID,
		Stage:     stage,
		Message:   message,
		Percent:   percent,
		Status:    status,
	})
}

func (e *Engine) fail(plan domain.InstallPlan, stage string, err error) {
	e.logger.Error(err)
	e.emit(plan, stage, err.Error(), 0, domain.ProgressFailed)
}
