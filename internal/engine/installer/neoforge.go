package installer

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.trai.ch/ember/internal/core/domain"
	"go.trai.ch/ember/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Installer = (*NeoForge)(nil)

const defaultNeoForgeJava = 21

// NeoForge provisions the NeoForge loader. Unlike Fabric and Quilt there is
// no descriptor meta service: the upstream ships an executable installer
// whose client mode writes the version descriptor into our store layout.
// We run it against the store root, then reconcile whatever it produced.
type NeoForge struct {
	logger   ports.Logger
	store    ports.Store
	fetcher  ports.Fetcher
	meta     *Meta
	engine   *Engine
	recon    *Reconciler
	executor ports.Executor
	java     ports.JavaLocator
	sink     ports.ProgressSink
}

// NewNeoForge creates the NeoForge installer.
func NewNeoForge(logger ports.Logger, store ports.Store, fetcher ports.Fetcher, meta *Meta, engine *Engine, recon *Reconciler, executor ports.Executor, java ports.JavaLocator, sink ports.ProgressSink) *NeoForge {
	return &NeoForge{
		logger:   logger,
		store:    store,
		fetcher:  fetcher,
		meta:     meta,
		engine:   engine,
		recon:    recon,
		executor: executor,
		java:     java,
		sink:     sink,
	}
}

// Kind names the loader family this installer handles.
func (n *NeoForge) Kind() domain.LoaderKind {
	return domain.LoaderNeoForge
}

// Install provisions the engine version and runs the NeoForge client
// installer on top of it, returning the id of the descriptor it wrote.
func (n *NeoForge) Install(ctx context.Context, plan domain.InstallPlan) (string, error) {
	parentID, err := n.engine.Install(ctx, domain.InstallPlan{
		EngineVersion: plan.EngineVersion,
		Loader:        domain.LoaderVanilla,
		ProfileID:     plan.ProfileID,
	})
	if err != nil {
		return "", err
	}

	version := plan.LoaderVersion
	if version == "" {
		version, err = n.latestVersion(ctx, plan.EngineVersion)
		if err != nil {
			return "", err
		}
	}

	if id, ok := n.findInstalled(version); ok {
		if err := n.recon.Reconcile(ctx, plan.ProfileID, id); err != nil {
			return "", err
		}
		return id, nil
	}

	if err := n.runInstaller(ctx, parentID, version, plan); err != nil {
		return "", err
	}

	id, ok := n.findInstalled(version)
	if !ok {
		return "", zerr.With(zerr.Wrap(domain.ErrInstallerRunFailed, "installer produced no version directory"), "version", version)
	}
	if err := n.recon.Reconcile(ctx, plan.ProfileID, id); err != nil {
		return "", err
	}
	return id, nil
}

// latestVersion picks the newest stable NeoForge build matching the engine
// version from the maven repository's metadata.
func (n *NeoForge) latestVersion(ctx context.Context, engineVersion string) (string, error) {
	body, err := n.meta.GetBytes(ctx, n.meta.NeoForgeMaven+"/net/neoforged/neoforge/maven-metadata.xml")
	if err != nil {
		return "", err
	}

	var metadata struct {
		Versioning struct {
			Versions struct {
				Version []string `xml:"version"`
			} `xml:"versions"`
		} `xml:"versioning"`
	}
	if err := xml.Unmarshal(body, &metadata); err != nil {
		return "", zerr.Wrap(domain.ErrMetadataParse, err.Error())
	}

	return selectNeoForgeVersion(metadata.Versioning.Versions.Version, engineVersion)
}

// selectNeoForgeVersion filters the version list down to stable builds of
// the engine's release line and returns the newest one. NeoForge drops the
// leading "1." of the engine version: engine 1.21.1 maps to builds 21.1.*.
func selectNeoForgeVersion(versions []string, engineVersion string) (string, error) {
	prefix, err := neoForgePrefix(engineVersion)
	if err != nil {
		return "", err
	}

	best := ""
	for _, v := range versions {
		if !strings.HasPrefix(v, prefix) || !stableNeoForge(v) {
			continue
		}
		if best == "" || compareDotted(v, best) > 0 {
			best = v
		}
	}
	if best == "" {
		return "", zerr.With(zerr.With(zerr.Wrap(domain.ErrNoCompatibleLoader, "no matching build"), "loader", "neoforge"), "engine_version", engineVersion)
	}
	return best, nil
}

// neoForgePrefix maps an engine version to its NeoForge build prefix:
// "1.21.1" becomes "21.1.", "1.21" becomes "21.0.".
func neoForgePrefix(engineVersion string) (string, error) {
	rest, ok := strings.CutPrefix(engineVersion, "1.")
	if !ok {
		return "", zerr.With(zerr.With(zerr.Wrap(domain.ErrNoCompatibleLoader, "no matching build"), "loader", "neoforge"), "engine_version", engineVersion)
	}
	parts := strings.SplitN(rest, ".", 2)
	if len(parts) == 1 {
		return parts[0] + ".0.", nil
	}
	return parts[0] + "." + parts[1] + ".", nil
}

func stableNeoForge(version string) bool {
	lower := strings.ToLower(version)
	for _, marker := range []string{"alpha", "beta", "rc", "snapshot"} {
		if strings.Contains(lower, marker) {
			return false
		}
	}
	return true
}

// compareDotted compares dotted numeric versions segment-wise. Non-numeric
// segments compare lexically, after any numeric difference.
func compareDotted(a, b string) int {
	as, bs := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		an, aerr := strconv.Atoi(as[i])
		bn, berr := strconv.Atoi(bs[i])
		switch {
		case aerr == nil && berr == nil:
			if an != bn {
				return an - bn
			}
		default:
			if c := strings.Compare(as[i], bs[i]); c != 0 {
				return c
			}
		}
	}
	return len(as) - len(bs)
}

// runInstaller downloads the upstream installer jar, primes the store for
// it and executes its client mode against the store root.
func (n *NeoForge) runInstaller(ctx context.Context, parentID, version string, plan domain.InstallPlan) error {
	n.sink.Progress(domain.ProgressEvent{
		ProfileID: plan.ProfileID,
		Stage:     "loader",
		Message:   "running neoforge installer " + version,
		Percent:   bandFinalize.from,
		Status:    domain.ProgressRunning,
	})

	installerPath := filepath.Join(n.store.Root(), fmt.Sprintf("neoforge-%s-installer.jar", version))
	url := fmt.Sprintf("%s/net/neoforged/neoforge/%s/neoforge-%s-installer.jar", n.meta.NeoForgeMaven, version, version)
	if err := n.fetcher.Fetch(ctx, domain.DownloadTask{URL: url, Path: installerPath}); err != nil {
		return err
	}
	defer os.Remove(installerPath)
	defer os.Remove(installerPath + ".log")

	// The installer bundles part of its dependency tree; extracting it up
	// front spares the installer re-downloading into our store.
	if err := n.extractEmbeddedMaven(installerPath); err != nil {
		return err
	}

	// The installer refuses to treat a directory as a game root without one.
	if err := n.store.WriteFile(filepath.Join(n.store.Root(), "launcher_profiles.json"), []byte("{\"profiles\":{}}\n")); err != nil {
		return err
	}

	javaPath, err := n.java.Resolve(ctx, n.javaMajor(parentID))
	if err != nil {
		return err
	}

	if err := n.executor.Run(ctx, n.store.Root(), javaPath, "-jar", installerPath, "--installClient", n.store.Root()); err != nil {
		return zerr.Wrap(domain.ErrInstallerRunFailed, err.Error())
	}
	return nil
}

func (n *NeoForge) javaMajor(parentID string) int {
	desc, err := n.store.ReadDescriptor(parentID)
	if err != nil || desc.JavaVersion == nil || desc.JavaVersion.MajorVersion == 0 {
		return defaultNeoForgeJava
	}
	return desc.JavaVersion.MajorVersion
}

// extractEmbeddedMaven unpacks the installer jar's maven/ subtree into the
// shared library store.
func (n *NeoForge) extractEmbeddedMaven(installerPath string) error {
	r, err := zip.OpenReader(installerPath)
	if err != nil {
		return zerr.Wrap(domain.ErrFilesystem, err.Error())
	}
	defer r.Close()

	for _, f := range r.File {
		rel, ok := strings.CutPrefix(f.Name, "maven/")
		if !ok || f.FileInfo().IsDir() || strings.Contains(rel, "..") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return zerr.Wrap(domain.ErrFilesystem, err.Error())
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return zerr.Wrap(domain.ErrFilesystem, err.Error())
		}
		if err := n.store.WriteFile(n.store.LibraryPath(rel), data); err != nil {
			return err
		}
	}
	return nil
}

// findInstalled scans the versions directory for the descriptor the
// installer wrote for this build.
func (n *NeoForge) findInstalled(version string) (string, bool) {
	entries, err := os.ReadDir(filepath.Join(n.store.Root(), "versions"))
	if err != nil {
		return "", false
	}
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || !strings.Contains(name, "neoforge") || !strings.Contains(name, version) {
			continue
		}
		if n.store.HasDescriptor(name) {
			return name, true
		}
	}
	return "", false
}
