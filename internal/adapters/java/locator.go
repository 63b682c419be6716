// Package java locates or provisions a Java runtime matching the major
// version a game version requires.
package java

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"go.trai.ch/ember/internal/core/domain"
	"go.trai.ch/ember/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.JavaLocator = (*Locator)(nil)

// Locator resolves a Java executable in order of preference: explicit
// override, a previously provisioned managed runtime, a matching system
// installation, and finally a fresh Adoptium download.
type Locator struct {
	logger   ports.Logger
	store    ports.Store
	fetcher  ports.Fetcher
	settings *ports.Settings
	platform domain.Platform

	// apiBase points at the Adoptium v3 API, swappable in tests.
	apiBase string
	// probe reports the major version of a java executable.
	probe func(ctx context.Context, javaPath string) (int, error)
}

// New creates a Locator.
func New(logger ports.Logger, store ports.Store, fetcher ports.Fetcher, settings *ports.Settings) *Locator {
	l := &Locator{
		logger:   logger,
		store:    store,
		fetcher:  fetcher,
		settings: settings,
		platform: domain.CurrentPlatform(),
		apiBase:  adoptiumAPIBase,
	}
	l.probe = l.probeVersion
	return l
}

// Resolve returns the path of a Java executable with the given major
// version, provisioning one if nothing suitable is installed.
func (l *Locator) Resolve(ctx context.Context, majorVersion int) (string, error) {
	if l.settings != nil && l.settings.JavaPath != "" {
		return l.settings.JavaPath, nil
	}

	if path := l.managedPath(majorVersion); path != "" {
		return path, nil
	}

	if path := l.systemPath(ctx, majorVersion); path != "" {
		l.logger.Info(fmt.Sprintf("using system java %d at %s", majorVersion, path))
		return path, nil
	}

	l.logger.Info(fmt.Sprintf("provisioning java %d runtime", majorVersion))
	path, err := l.provision(ctx, majorVersion)
	if err != nil {
		return "", zerr.Wrap(err, "provisioning java runtime")
	}
	return path, nil
}

// managedPath returns the executable inside the managed runtimes directory,
// or "" when not provisioned yet.
func (l *Locator) managedPath(majorVersion int) string {
	path := filepath.Join(l.store.RuntimesDir(), fmt.Sprintf("jdk-%d", majorVersion), "bin", "java"+l.platform.ExeSuffix)
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return path
	}
	return ""
}

// systemPath probes well-known locations for an installation matching the
// requested major version.
func (l *Locator) systemPath(ctx context.Context, majorVersion int) string {
	var candidates []string
	if home := os.Getenv("JAVA_HOME"); home != "" {
		candidates = append(candidates, filepath.Join(home, "bin", "java"+l.platform.ExeSuffix))
	}
	if path, err := exec.LookPath("java"); err == nil {
		candidates = append(candidates, path)
	}
	if l.platform.OS == "linux" {
		if dirs, err := filepath.Glob("/usr/lib/jvm/*/bin/java"); err == nil {
			candidates = append(candidates, dirs...)
		}
	}

	for _, candidate := range candidates {
		major, err := l.probe(ctx, candidate)
		if err != nil {
			continue
		}
		if major == majorVersion {
			return candidate
		}
	}
	return ""
}

// probeVersion runs `java -version` and parses the major version from its
// stderr banner.
func (l *Locator) probeVersion(ctx context.Context, javaPath string) (int, error) {
	cmd := exec.CommandContext(ctx, javaPath, "-version")
	// The banner goes to stderr.
	out, err := cmd.CombinedOutput()
	if err != nil {
		return 0, zerr.Wrap(err, "running java -version")
	}
	return ParseVersionBanner(string(out))
}

var versionRe = regexp.MustCompile(`version "([0-9]+)(?:\.([0-9]+))?[^"]*"`)

// ParseVersionBanner extracts the major Java version from a `java -version`
// banner. Legacy "1.8" style versions map to 8.
func ParseVersionBanner(banner string) (int, error) {
	m := versionRe.FindStringSubmatch(banner)
	if m == nil {
		return 0, zerr.With(zerr.Wrap(domain.ErrJavaNotFound, "unrecognized version banner"), "banner", strings.TrimSpace(banner))
	}
	major, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, zerr.Wrap(err, "parsing java version")
	}
	if major == 1 && m[2] != "" {
		return strconv.Atoi(m[2])
	}
	return major, nil
}
