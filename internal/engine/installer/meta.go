// Package installer provisions launchable versions: the base engine plus
// the supported mod-loader families layered on top of it.
package installer

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"go.trai.ch/ember/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// Default upstream endpoints. Tests point these at local servers.
const (
	defaultManifestURL   = "https://piston-meta.mojang.com/mc/game/version_manifest_v2.json"
	defaultAssetsBaseURL = "https://resources.download.minecraft.net"
	defaultFabricMetaURL = "https://meta.fabricmc.net"
	defaultFabricMaven   = "https://maven.fabricmc.net/"
	defaultQuiltMetaURL  = "https://meta.quiltmc.org"
	defaultQuiltMaven    = "https://maven.quiltmc.org/repository/release/"
	defaultNeoForgeMaven = "https://maven.neoforged.net/releases"
)

// Meta fetches upstream metadata documents. Manifest lookups are collapsed
// through singleflight so concurrent installs share one request.
type Meta struct {
	client *http.Client

	ManifestURL   string
	AssetsBaseURL string
	FabricMetaURL string
	FabricMaven   string
	QuiltMetaURL  string
	QuiltMaven    string
	NeoForgeMaven string

	group singleflight.Group
}

// NewMeta creates a Meta with the default upstream endpoints.
func NewMeta() *Meta {
	return &Meta{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		ManifestURL:   defaultManifestURL,
		AssetsBaseURL: defaultAssetsBaseURL,
		FabricMetaURL: defaultFabricMetaURL,
		FabricMaven:   defaultFabricMaven,
		QuiltMetaURL:  defaultQuiltMetaURL,
		QuiltMaven:    defaultQuiltMaven,
		NeoForgeMaven: defaultNeoForgeMaven,
	}
}

// Manifest fetches the engine version manifest.
func (m *Meta) Manifest(ctx context.Context) (*domain.VersionManifest, error) {
	v, err, _ := m.group.Do("manifest", func() (any, error) {
		var manifest domain.VersionManifest
		if err := m.GetJSON(ctx, m.ManifestURL, &manifest); err != nil {
			return nil, err
		}
		return &manifest, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.VersionManifest), nil
}

// GetJSON fetches url and decodes the response body into v.
func (m *Meta) GetJSON(ctx context.Context, url string, v any) error {
	body, err := m.GetBytes(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrMetadataParse, err.Error()), "url", url)
	}
	return nil
}

// GetBytes fetches url and returns the response body.
func (m *Meta) GetBytes(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, zerr.Wrap(err, "building metadata request")
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrNetwork, err.Error()), "url", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrNetwork, "unexpected status"), "status", resp.StatusCode), "url", url)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrNetwork, err.Error()), "url", url)
	}
	return body, nil
}
