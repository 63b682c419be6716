// Package app implements the host-facing facade over the launcher core.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.trai.ch/ember/internal/core/domain"
	"go.trai.ch/ember/internal/core/ports"
	"go.trai.ch/ember/internal/engine/installer"
	"go.trai.ch/ember/internal/engine/launch"
	"go.trai.ch/ember/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// fallbackJavaMajor is assumed for descriptors that predate the javaVersion
// field.
const fallbackJavaMajor = 8

// App ties the install and launch pipelines together behind a small surface
// the host can drive.
type App struct {
	logger     ports.Logger
	settings   *ports.Settings
	installers *installer.Registry
	resolver   *resolver.Resolver
	assembler  *launch.Assembler
	java       ports.JavaLocator
	supervisor ports.Supervisor
	gallery    ports.GalleryWatcher
	store      ports.Store
	tracer     ports.Tracer
}

// New creates a new App instance.
func New(
	log ports.Logger,
	settings *ports.Settings,
	installers *installer.Registry,
	res *resolver.Resolver,
	asm *launch.Assembler,
	java ports.JavaLocator,
	sup ports.Supervisor,
	gallery ports.GalleryWatcher,
	st ports.Store,
	tracer ports.Tracer,
) *App {
	return &App{
		logger:     log,
		settings:   settings,
		installers: installers,
		resolver:   res,
		assembler:  asm,
		java:       java,
		supervisor: sup,
		gallery:    gallery,
		store:      st,
		tracer:     tracer,
	}
}

// Install provisions the requested engine/loader pair and returns the id of
// the version that Launch accepts afterwards.
func (a *App) Install(ctx context.Context, plan domain.InstallPlan) (string, error) {
	if plan.EngineVersion == "" {
		return "", zerr.Wrap(domain.ErrVersionNotFound, "no engine version requested")
	}
	ctx, span := a.tracer.Start(ctx, "app.install")
	defer span.End()
	span.SetAttribute("engine", plan.EngineVersion)
	span.SetAttribute("loader", string(plan.Loader))

	id, err := a.installers.Install(ctx, plan)
	if err != nil {
		span.RecordError(err)
		return "", err
	}
	return id, nil
}

// Launch resolves a Java runtime, assembles the process invocation for the
// installed version and hands it to the supervisor. Unset launch fields fall
// back to the configured defaults.
func (a *App) Launch(ctx context.Context, versionID string, lc domain.LaunchContext) (ports.Process, error) {
	a.applyDefaults(versionID, &lc)

	ctx, span := a.tracer.Start(ctx, "app.launch")
	defer span.End()
	span.SetAttribute("version", versionID)
	span.SetAttribute("profile", lc.ProfileID)

	merged, err := a.resolver.LoadMerged(ctx, versionID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if lc.JavaPath == "" {
		major := fallbackJavaMajor
		if merged.JavaVersion != nil && merged.JavaVersion.MajorVersion > 0 {
			major = merged.JavaVersion.MajorVersion
		}
		javaPath, err := a.java.Resolve(ctx, major)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		lc.JavaPath = javaPath
	}

	if err := os.MkdirAll(lc.GameDir, 0o755); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrFilesystem, err.Error()), "dir", lc.GameDir)
	}

	spec, err := a.assembler.Assemble(ctx, versionID, lc)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	process, err := a.supervisor.Spawn(ctx, *spec)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if a.gallery != nil {
		screenshots := filepath.Join(lc.GameDir, "screenshots")
		if err := a.gallery.Start(ctx, lc.ProfileID, screenshots); err != nil {
			a.logger.Warn(fmt.Sprintf("gallery watcher unavailable for %s: %v", lc.ProfileID, err))
		}
	}
	return process, nil
}

// Installed lists the version ids with a local descriptor, sorted.
func (a *App) Installed() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(a.store.Root(), "versions"))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.Wrap(domain.ErrFilesystem, err.Error())
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() && a.store.HasDescriptor(entry.Name()) {
			ids = append(ids, entry.Name())
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (a *App) applyDefaults(versionID string, lc *domain.LaunchContext) {
	if lc.ProfileID == "" {
		lc.ProfileID = versionID
	}
	if lc.GameDir == "" {
		lc.GameDir = filepath.Join(a.store.Root(), "profiles", lc.ProfileID)
	}
	if lc.MemoryMB == 0 {
		lc.MemoryMB = a.settings.MemoryMB
	}
	if lc.Preset == "" {
		lc.Preset = a.settings.Preset
	}
	if len(lc.CustomFlags) == 0 {
		lc.CustomFlags = a.settings.CustomFlags
	}
	if lc.Resolution == nil {
		lc.Resolution = a.settings.Resolution
	}
	if lc.JavaPath == "" {
		lc.JavaPath = a.settings.JavaPath
	}
}
