package java

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/ember/internal/core/domain"
	"go.trai.ch/zerr"
)

const adoptiumAPIBase = "https://api.adoptium.net"

// adoptiumAsset is the subset of the Adoptium v3 asset document we consume.
type adoptiumAsset struct {
	ReleaseName string `json:"release_name"`
	Binary      struct {
		Package struct {
			Name string `json:"name"`
			Link string `json:"link"`
			Size int64  `json:"size"`
		} `json:"package"`
	} `json:"binary"`
}

// provision downloads a JRE from Adoptium and installs it under the managed
// runtimes directory, returning the java executable path.
func (l *Locator) provision(ctx context.Context, majorVersion int) (string, error) {
	asset, err := l.latestAsset(ctx, majorVersion)
	if err != nil {
		return "", err
	}

	archivePath := filepath.Join(l.store.RuntimesDir(), asset.Binary.Package.Name)
	task := domain.DownloadTask{
		URL:  asset.Binary.Package.Link,
		Path: archivePath,
		Size: asset.Binary.Package.Size,
	}
	if err := l.fetcher.Fetch(ctx, task); err != nil {
		return "", err
	}
	defer os.Remove(archivePath)

	dest := filepath.Join(l.store.RuntimesDir(), fmt.Sprintf("jdk-%d", majorVersion))
	if err := extractRuntime(archivePath, dest); err != nil {
		return "", err
	}

	path := l.managedPath(majorVersion)
	if path == "" {
		return "", zerr.With(zerr.Wrap(domain.ErrJavaNotFound, "provisioned runtime has no executable"), "runtime_dir", dest)
	}
	return path, nil
}

// latestAsset asks the Adoptium API for the newest JRE release of the given
// major version for this platform.
func (l *Locator) latestAsset(ctx context.Context, majorVersion int) (*adoptiumAsset, error) {
	url := fmt.Sprintf("%s/v3/assets/latest/%d/hotspot?architecture=%s&image_type=jre&os=%s&vendor=eclipse",
		l.apiBase, majorVersion, adoptiumArch(l.platform.Arch), adoptiumOS(l.platform.OS))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, zerr.Wrap(err, "building adoptium request")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, zerr.Wrap(domain.ErrNetwork, err.Error())
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, zerr.With(zerr.Wrap(domain.ErrNetwork, "unexpected status"), "status", resp.StatusCode)
	}

	var assets []adoptiumAsset
	if err := json.NewDecoder(resp.Body).Decode(&assets); err != nil {
		return nil, zerr.Wrap(domain.ErrMetadataParse, err.Error())
	}
	if len(assets) == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrJavaNotFound, "no adoptium asset published"), "major_version", majorVersion)
	}
	return &assets[0], nil
}

func adoptiumOS(os string) string {
	if os == "osx" {
		return "mac"
	}
	return os
}

func adoptiumArch(arch string) string {
	switch arch {
	case "x86_64":
		return "x64"
	case "arm64":
		return "aarch64"
	default:
		return arch
	}
}

// extractRuntime unpacks a runtime archive into dest, flattening the
// single release directory Adoptium archives wrap their content in.
func extractRuntime(archivePath, dest string) error {
	staging := dest + ".staging"
	if err := os.RemoveAll(staging); err != nil {
		return zerr.Wrap(domain.ErrFilesystem, err.Error())
	}
	defer os.RemoveAll(staging)

	var err error
	if strings.HasSuffix(archivePath, ".zip") {
		err = extractZip(archivePath, staging)
	} else {
		err = extractTarGz(archivePath, staging)
	}
	if err != nil {
		return err
	}

	root, err := flattenRoot(staging)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(dest); err != nil {
		return zerr.Wrap(domain.ErrFilesystem, err.Error())
	}
	if err := os.Rename(root, dest); err != nil {
		return zerr.Wrap(domain.ErrFilesystem, err.Error())
	}
	return nil
}

// flattenRoot returns the directory actually holding the runtime: staging
// itself, or its sole child directory.
func flattenRoot(staging string) (string, error) {
	entries, err := os.ReadDir(staging)
	if err != nil {
		return "", zerr.Wrap(domain.ErrFilesystem, err.Error())
	}
	if len(entries) == 1 && entries[0].IsDir() {
		return filepath.Join(staging, entries[0].Name()), nil
	}
	return staging, nil
}

func extractZip(archivePath, dest string) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return zerr.Wrap(domain.ErrFilesystem, err.Error())
	}
	defer r.Close()

	for _, f := range r.File {
		target, err := safeJoin(dest, f.Name)
		if err != nil {
			return err
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return zerr.Wrap(domain.ErrFilesystem, err.Error())
			}
			continue
		}
		if err := writeZipEntry(f, target); err != nil {
			return err
		}
	}
	return nil
}

func writeZipEntry(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return zerr.Wrap(domain.ErrFilesystem, err.Error())
	}
	rc, err := f.Open()
	if err != nil {
		return zerr.Wrap(domain.ErrFilesystem, err.Error())
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, f.Mode())
	if err != nil {
		return zerr.Wrap(domain.ErrFilesystem, err.Error())
	}
	defer out.Close()

	if _, err := io.Copy(out, rc); err != nil { //nolint:gosec // runtime archives are size-bounded
		return zerr.Wrap(domain.ErrFilesystem, err.Error())
	}
	return nil
}

func extractTarGz(archivePath, dest string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return zerr.Wrap(domain.ErrFilesystem, err.Error())
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return zerr.Wrap(domain.ErrFilesystem, err.Error())
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return zerr.Wrap(domain.ErrFilesystem, err.Error())
		}

		target, err := safeJoin(dest, hdr.Name)
		if err != nil {
			return err
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return zerr.Wrap(domain.ErrFilesystem, err.Error())
			}
		case tar.TypeSymlink:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return zerr.Wrap(domain.ErrFilesystem, err.Error())
			}
			if err := os.Symlink(hdr.Linkname, target); err != nil && !errors.Is(err, os.ErrExist) {
				return zerr.Wrap(domain.ErrFilesystem, err.Error())
			}
		case tar.TypeReg:
			if err := writeTarEntry(tr, hdr, target); err != nil {
				return err
			}
		}
	}
}

func writeTarEntry(tr *tar.Reader, hdr *tar.Header, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return zerr.Wrap(domain.ErrFilesystem, err.Error())
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, hdr.FileInfo().Mode())
	if err != nil {
		return zerr.Wrap(domain.ErrFilesystem, err.Error())
	}
	defer out.Close()

	if _, err := io.Copy(out, tr); err != nil { //nolint:gosec // runtime archives are size-bounded
		return zerr.Wrap(domain.ErrFilesystem, err.Error())
	}
	return nil
}

// safeJoin joins name under dest, rejecting entries that escape it.
func safeJoin(dest, name string) (string, error) {
	target := filepath.Join(dest, filepath.FromSlash(name))
	if !strings.HasPrefix(target, filepath.Clean(dest)+string(os.PathSeparator)) {
		return "", zerr.With(zerr.Wrap(domain.ErrFilesystem, "archive entry escapes destination"), "entry", name)
	}
	return target, nil
}
