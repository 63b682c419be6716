package installer_test

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/ember/internal/adapters/fs"
	"go.trai.ch/ember/internal/adapters/httpdl"
	"go.trai.ch/ember/internal/adapters/logger"
	"go.trai.ch/ember/internal/adapters/store"
	"go.trai.ch/ember/internal/adapters/telemetry"
	"go.trai.ch/ember/internal/core/domain"
	"go.trai.ch/ember/internal/core/ports"
	"go.trai.ch/ember/internal/engine/installer"
	"go.trai.ch/ember/internal/engine/resolver"
)

const (
	clientBytes = "client jar bytes"
	clientSHA1  = "38b2d812313f5e556cc13853aadd87c2fbf09c3b"
	asmBytes    = "asm library bytes"
	asmSHA1     = "7acdb0ce7881d7b5ae44924176e234bae348f045"
	assetBytes  = "asset object bytes"
	assetSHA1   = "ac7dc9d13f60793f19677f88e356370877062b3f"
)

// recordingSink captures progress events for assertions.
type recordingSink struct {
	mu     sync.Mutex
	events []domain.ProgressEvent
}

func (s *recordingSink) Progress(event domain.ProgressEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *recordingSink) Lifecycle(domain.LifecycleEvent) {}
func (s *recordingSink) Output(domain.OutputEvent)       {}
func (s *recordingSink) Crash(domain.CrashReport)        {}

func (s *recordingSink) snapshot() []domain.ProgressEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.ProgressEvent(nil), s.events...)
}

type harness struct {
	store  *store.Store
	meta   *installer.Meta
	engine *installer.Engine
	recon  *installer.Reconciler
	sink   *recordingSink
	log    ports.Logger
	fetch  ports.Fetcher
}

// upstream serves the full fake metadata and artifact surface the
// installers talk to.
func upstream(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	var srv *httptest.Server
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	mux.HandleFunc("/manifest.json", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `{"latest":{"release":"1.21.1"},"versions":[{"id":"1.21.1","type":"release","url":"%s/1.21.1.json"}]}`, srv.URL)
	})
	mux.HandleFunc("/1.21.1.json", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `{
			"id": "1.21.1",
			"mainClass": "net.minecraft.client.main.Main",
			"type": "release",
			"javaVersion": {"component": "java-runtime-delta", "majorVersion": 21},
			"downloads": {"client": {"url": "%[1]s/client.jar", "sha1": "%[2]s", "size": %[3]d}},
			"libraries": [
				{
					"name": "org.ow2.asm:asm:9.7",
					"downloads": {"artifact": {"path": "org/ow2/asm/asm/9.7/asm-9.7.jar", "url": "%[1]s/asm.jar", "sha1": "%[4]s", "size": %[5]d}}
				},
				{
					"name": "com.example:elsewhere:1.0",
					"rules": [{"action": "allow", "os": {"name": "zos"}}],
					"downloads": {"artifact": {"path": "com/example/elsewhere/1.0/elsewhere-1.0.jar", "url": "%[1]s/missing.jar"}}
				}
			],
			"assetIndex": {"id": "17", "url": "%[1]s/index.json"},
			"assets": "17"
		}`, srv.URL, clientSHA1, len(clientBytes), asmSHA1, len(asmBytes))
	})
	mux.HandleFunc("/client.jar", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(clientBytes))
	})
	mux.HandleFunc("/asm.jar", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(asmBytes))
	})
	mux.HandleFunc("/missing.jar", func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("rule-filtered library was requested: %s", r.URL.Path)
		http.NotFound(w, r)
	})
	mux.HandleFunc("/index.json", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `{"objects":{"minecraft/sounds/random/click.ogg":{"hash":"%s","size":%d}}}`, assetSHA1, len(assetBytes))
	})
	mux.HandleFunc("/objects/", func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, assetSHA1) {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(assetBytes))
	})

	return srv
}

func newHarness(t *testing.T, srv *httptest.Server) *harness {
	t.Helper()
	st, err := store.New(t.TempDir())
	require.NoError(t, err)

	log := logger.New()
	fetch := httpdl.New(fs.NewVerifier(), log, 4)
	sink := &recordingSink{}

	meta := installer.NewMeta()
	meta.ManifestURL = srv.URL + "/manifest.json"
	meta.AssetsBaseURL = srv.URL + "/objects"
	meta.FabricMetaURL = srv.URL + "/fabric"
	meta.FabricMaven = srv.URL + "/maven/"
	meta.QuiltMetaURL = srv.URL + "/quilt"
	meta.QuiltMaven = srv.URL + "/maven/"
	meta.NeoForgeMaven = srv.URL + "/neomaven"

	engine := installer.NewEngine(log, st, fetch, meta, sink, telemetry.NewNoOpTracer())
	recon := installer.NewReconciler(log, st, fetch, resolver.New(st), sink)
	return &harness{store: st, meta: meta, engine: engine, recon: recon, sink: sink, log: log, fetch: fetch}
}

func TestEngineInstall(t *testing.T) {
	srv := upstream(t)
	h := newHarness(t, srv)

	id, err := h.engine.Install(context.Background(), domain.InstallPlan{EngineVersion: "1.21.1", ProfileID: "main"})
	require.NoError(t, err)
	require.Equal(t, "1.21.1", id)

	require.True(t, h.store.HasDescriptor("1.21.1"))
	require.FileExists(t, h.store.ClientJarPath("1.21.1"))
	require.FileExists(t, h.store.LibraryPath("org/ow2/asm/asm/9.7/asm-9.7.jar"))
	require.NoFileExists(t, h.store.LibraryPath("com/example/elsewhere/1.0/elsewhere-1.0.jar"))
	require.FileExists(t, h.store.AssetIndexPath("17"))
	require.FileExists(t, h.store.AssetObjectPath(assetSHA1[:2]+"/"+assetSHA1))

	events := h.sink.snapshot()
	require.NotEmpty(t, events)
	require.Equal(t, "manifest", events[0].Stage)
	last := events[len(events)-1]
	require.Equal(t, domain.ProgressComplete, last.Status)
	require.InDelta(t, 100.0, last.Percent, 0.001)
}

func TestEngineInstall_RepairsCorruptAsset(t *testing.T) {
	srv := upstream(t)
	h := newHarness(t, srv)

	// Same size as the real object, different content. Size-only validation
	// would let this survive; the digest check must force a re-download.
	objectPath := h.store.AssetObjectPath(assetSHA1[:2] + "/" + assetSHA1)
	require.NoError(t, os.MkdirAll(filepath.Dir(objectPath), 0o755))
	corrupt := strings.Repeat("x", len(assetBytes))
	require.NoError(t, os.WriteFile(objectPath, []byte(corrupt), 0o644))

	_, err := h.engine.Install(context.Background(), domain.InstallPlan{EngineVersion: "1.21.1", ProfileID: "main"})
	require.NoError(t, err)

	data, err := os.ReadFile(objectPath)
	require.NoError(t, err)
	require.Equal(t, assetBytes, string(data))
}

func TestEngineInstall_UnknownVersion(t *testing.T) {
	srv := upstream(t)
	h := newHarness(t, srv)

	_, err := h.engine.Install(context.Background(), domain.InstallPlan{EngineVersion: "9.9.9", ProfileID: "main"})
	require.ErrorIs(t, err, domain.ErrVersionNotFound)

	events := h.sink.snapshot()
	require.Equal(t, domain.ProgressFailed, events[len(events)-1].Status)
}

func TestEngineInstall_Idempotent(t *testing.T) {
	srv := upstream(t)
	h := newHarness(t, srv)

	ctx := context.Background()
	plan := domain.InstallPlan{EngineVersion: "1.21.1", ProfileID: "main"}
	_, err := h.engine.Install(ctx, plan)
	require.NoError(t, err)
	_, err = h.engine.Install(ctx, plan)
	require.NoError(t, err)
}

func addFabricEndpoints(t *testing.T, srv *httptest.Server) {
	t.Helper()
	mux := srv.Config.Handler.(*http.ServeMux)

	mux.HandleFunc("/fabric/v2/versions/loader", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[{"version":"0.17.0-beta.2","stable":false},{"version":"0.16.5","stable":true}]`)
	})
	mux.HandleFunc("/fabric/v2/versions/loader/1.21.1/0.16.5", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `{
			"loader": {"maven": "net.fabricmc:fabric-loader:0.16.5", "version": "0.16.5"},
			"intermediary": {"maven": "net.fabricmc:intermediary:1.21.1"},
			"launcherMeta": {
				"libraries": {
					"common": [{"name": "org.ow2.asm:asm-tree:9.7", "url": "%s/maven/"}],
					"client": []
				},
				"mainClass": {"client": "net.fabricmc.loader.impl.launch.knot.KnotClient", "server": "net.fabricmc.loader.impl.launch.knot.KnotServer"}
			}
		}`, srv.URL)
	})
	mux.HandleFunc("/maven/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("fabric loader bytes"))
	})
}

func TestFabricInstall(t *testing.T) {
	srv := upstream(t)
	addFabricEndpoints(t, srv)
	h := newHarness(t, srv)

	fabric := installer.NewFabric(h.log, h.store, h.meta, h.engine, h.recon)
	require.Equal(t, domain.LoaderFabric, fabric.Kind())

	id, err := fabric.Install(context.Background(), domain.InstallPlan{
		EngineVersion: "1.21.1",
		Loader:        domain.LoaderFabric,
		ProfileID:     "modded",
	})
	require.NoError(t, err)
	require.Equal(t, "fabric-loader-0.16.5-1.21.1", id)

	desc, err := h.store.ReadDescriptor(id)
	require.NoError(t, err)
	require.Equal(t, "1.21.1", desc.InheritsFrom)
	require.Equal(t, "net.fabricmc.loader.impl.launch.knot.KnotClient", desc.MainClass)

	// Loader, mappings and profile libraries all land in the shared store.
	require.FileExists(t, h.store.LibraryPath("net/fabricmc/fabric-loader/0.16.5/fabric-loader-0.16.5.jar"))
	require.FileExists(t, h.store.LibraryPath("net/fabricmc/intermediary/1.21.1/intermediary-1.21.1.jar"))
	require.FileExists(t, h.store.LibraryPath("org/ow2/asm/asm-tree/9.7/asm-tree-9.7.jar"))
}

func TestQuiltInstall(t *testing.T) {
	srv := upstream(t)
	mux := srv.Config.Handler.(*http.ServeMux)
	mux.HandleFunc("/quilt/v3/versions/loader", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[{"version":"0.27.1"},{"version":"0.27.0"}]`)
	})
	mux.HandleFunc("/quilt/v3/versions/loader/1.21.1/0.27.1", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{
			"loader": {"maven": "org.quiltmc:quilt-loader:0.27.1", "version": "0.27.1"},
			"hashed": {"maven": "org.quiltmc:hashed:1.21.1"},
			"launcherMeta": {
				"libraries": {"common": [], "client": []},
				"mainClass": {"client": "org.quiltmc.loader.impl.launch.knot.KnotClient"}
			}
		}`)
	})
	mux.HandleFunc("/maven/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("quilt loader bytes"))
	})

	h := newHarness(t, srv)
	quilt := installer.NewQuilt(h.log, h.store, h.meta, h.engine, h.recon)

	id, err := quilt.Install(context.Background(), domain.InstallPlan{
		EngineVersion: "1.21.1",
		Loader:        domain.LoaderQuilt,
		ProfileID:     "modded",
	})
	require.NoError(t, err)
	require.Equal(t, "quilt-loader-0.27.1-1.21.1", id)

	require.FileExists(t, h.store.LibraryPath("org/quiltmc/quilt-loader/0.27.1/quilt-loader-0.27.1.jar"))
	require.FileExists(t, h.store.LibraryPath("org/quiltmc/hashed/1.21.1/hashed-1.21.1.jar"))
}

// fakeExecutor stands in for the external NeoForge installer process: it
// records the invocation and writes the descriptor the real installer would.
type fakeExecutor struct {
	store ports.Store
	calls [][]string
}

func (e *fakeExecutor) Run(_ context.Context, _ string, name string, args ...string) error {
	e.calls = append(e.calls, append([]string{name}, args...))
	return e.store.WriteDescriptor(&domain.VersionDescriptor{
		ID:           "neoforge-21.1.77",
		InheritsFrom: "1.21.1",
		MainClass:    "cpw.mods.bootstraplauncher.BootstrapLauncher",
		Type:         "release",
	})
}

type fixedJava string

func (j fixedJava) Resolve(context.Context, int) (string, error) { return string(j), nil }

func installerJar(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	entry, err := zw.Create("maven/com/example/embedded/1.0/embedded-1.0.jar")
	require.NoError(t, err)
	_, err = entry.Write([]byte("embedded bytes"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestNeoForgeInstall(t *testing.T) {
	srv := upstream(t)
	mux := srv.Config.Handler.(*http.ServeMux)
	mux.HandleFunc("/neomaven/net/neoforged/neoforge/maven-metadata.xml", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<metadata><versioning><versions>
			<version>21.1.9</version>
			<version>21.1.77</version>
			<version>21.1.80-beta</version>
		</versions></versioning></metadata>`)
	})
	jar := installerJar(t)
	mux.HandleFunc("/neomaven/net/neoforged/neoforge/21.1.77/neoforge-21.1.77-installer.jar", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(jar)
	})

	h := newHarness(t, srv)
	executor := &fakeExecutor{store: h.store}
	neo := installer.NewNeoForge(h.log, h.store, h.fetch, h.meta, h.engine, h.recon, executor, fixedJava("/usr/bin/java"), h.sink)

	id, err := neo.Install(context.Background(), domain.InstallPlan{
		EngineVersion: "1.21.1",
		Loader:        domain.LoaderNeoForge,
		ProfileID:     "modded",
	})
	require.NoError(t, err)
	require.Equal(t, "neoforge-21.1.77", id)

	// One installer invocation, in client mode against the store root.
	require.Len(t, executor.calls, 1)
	require.Equal(t, "/usr/bin/java", executor.calls[0][0])
	require.Contains(t, executor.calls[0], "--installClient")

	// The embedded maven tree was unpacked and the profile stub written.
	require.FileExists(t, h.store.LibraryPath("com/example/embedded/1.0/embedded-1.0.jar"))
	require.FileExists(t, h.store.Root()+"/launcher_profiles.json")

	// A second install discovers the existing descriptor without rerunning.
	id, err = neo.Install(context.Background(), domain.InstallPlan{
		EngineVersion: "1.21.1",
		Loader:        domain.LoaderNeoForge,
		ProfileID:     "modded",
	})
	require.NoError(t, err)
	require.Equal(t, "neoforge-21.1.77", id)
	require.Len(t, executor.calls, 1)
}

func TestForgeUnsupported(t *testing.T) {
	_, err := installer.NewForge().Install(context.Background(), domain.InstallPlan{EngineVersion: "1.21.1", Loader: domain.LoaderForge})
	require.ErrorIs(t, err, domain.ErrUnsupportedLoader)
}

func TestRegistryDispatch(t *testing.T) {
	srv := upstream(t)
	addFabricEndpoints(t, srv)
	h := newHarness(t, srv)

	registry := installer.NewRegistry(
		h.engine,
		installer.NewFabric(h.log, h.store, h.meta, h.engine, h.recon),
		installer.NewForge(),
	)

	// An empty loader means the base engine.
	id, err := registry.Install(context.Background(), domain.InstallPlan{EngineVersion: "1.21.1", ProfileID: "main"})
	require.NoError(t, err)
	require.Equal(t, "1.21.1", id)

	_, err = registry.Get(domain.LoaderQuilt)
	require.ErrorIs(t, err, domain.ErrUnsupportedLoader)
}
