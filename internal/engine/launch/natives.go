package launch

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/ember/internal/core/domain"
	"go.trai.ch/zerr"
)

// extractNatives unpacks every native jar the merged descriptor selects for
// this platform into the version's natives directory and returns that
// directory. Signature metadata and excluded prefixes stay packed.
func (a *Assembler) extractNatives(merged *domain.VersionDescriptor, versionID string) (string, error) {
	dir := a.store.NativesDir(versionID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", zerr.Wrap(domain.ErrFilesystem, err.Error())
	}

	for _, lib := range merged.Libraries {
		if !domain.RulesAllow(lib.Rules, a.platform, nil) {
			continue
		}
		native := lib.NativeArtifact(a.platform)
		if native == nil || native.Path == "" {
			continue
		}

		var exclude []string
		if lib.Extract != nil {
			exclude = lib.Extract.Exclude
		}
		if err := unpackNativeJar(a.store.LibraryPath(native.Path), dir, exclude); err != nil {
			return "", zerr.With(err, "library", lib.Name)
		}
	}
	return dir, nil
}

func unpackNativeJar(jarPath, dir string, exclude []string) error {
	r, err := zip.OpenReader(jarPath)
	if err != nil {
		return zerr.Wrap(domain.ErrFilesystem, err.Error())
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() || skipNativeEntry(f.Name, exclude) {
			continue
		}
		if err := writeNativeEntry(f, dir); err != nil {
			return err
		}
	}
	return nil
}

// skipNativeEntry reports whether a jar entry stays packed: jar metadata,
// descriptor-excluded prefixes, and anything trying to escape the target.
func skipNativeEntry(name string, exclude []string) bool {
	if strings.HasPrefix(name, "META-INF/") || strings.Contains(name, "..") {
		return true
	}
	for _, prefix := range exclude {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

func writeNativeEntry(f *zip.File, dir string) error {
	target := filepath.Join(dir, filepath.FromSlash(f.Name))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return zerr.Wrap(domain.ErrFilesystem, err.Error())
	}

	rc, err := f.Open()
	if err != nil {
		return zerr.Wrap(domain.ErrFilesystem, err.Error())
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return zerr.Wrap(domain.ErrFilesystem, err.Error())
	}
	defer out.Close()

	if _, err := io.Copy(out, rc); err != nil { //nolint:gosec // native jars are size-bounded
		return zerr.Wrap(domain.ErrFilesystem, err.Error())
	}
	return nil
}
