package installer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.trai.ch/ember/internal/core/domain"
	"go.trai.ch/ember/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Installer = (*Fabric)(nil)

// loaderEntry is one loader build listed by a fabric-style meta service.
type loaderEntry struct {
	Version string `json:"version"`
	Stable  bool   `json:"stable"`
}

// loaderProfile is the loader/engine pairing document of a fabric-style
// meta service.
type loaderProfile struct {
	Loader struct {
		Maven   string `json:"maven"`
		Version string `json:"version"`
	} `json:"loader"`
	Intermediary struct {
		Maven string `json:"maven"`
	} `json:"intermediary"`
	Hashed struct {
		Maven string `json:"maven"`
	} `json:"hashed"`
	LauncherMeta struct {
		Libraries struct {
			Common []metaLibrary `json:"common"`
			Client []metaLibrary `json:"client"`
		} `json:"libraries"`
		// MainClass is an object keyed by side in current documents, a bare
		// string in very old ones.
		MainClass json.RawMessage `json:"mainClass"`
	} `json:"launcherMeta"`
}

type metaLibrary struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	SHA1 string `json:"sha1,omitempty"`
	Size int64  `json:"size,omitempty"`
}

// clientMainClass decodes the profile's client main class from either form.
func (p loaderProfile) clientMainClass() (string, error) {
	var bySide struct {
		Client string `json:"client"`
	}
	if err := json.Unmarshal(p.LauncherMeta.MainClass, &bySide); err == nil && bySide.Client != "" {
		return bySide.Client, nil
	}
	var single string
	if err := json.Unmarshal(p.LauncherMeta.MainClass, &single); err == nil && single != "" {
		return single, nil
	}
	return "", zerr.With(zerr.Wrap(domain.ErrMetadataParse, "launcher metadata incomplete"), "missing", "launcherMeta.mainClass")
}

// pickLoader returns the requested version, or the first stable entry, or
// the first entry when nothing is marked stable.
func pickLoader(entries []loaderEntry, requested string) (string, error) {
	if requested != "" {
		return requested, nil
	}
	if len(entries) == 0 {
		return "", domain.ErrNoCompatibleLoader
	}
	for _, e := range entries {
		if e.Stable {
			return e.Version, nil
		}
	}
	return entries[0].Version, nil
}

// Fabric layers the Fabric loader on top of an installed engine version.
type Fabric struct {
	logger ports.Logger
	store  ports.Store
	meta   *Meta
	engine *Engine
	recon  *Reconciler
}

// NewFabric creates the Fabric installer.
func NewFabric(logger ports.Logger, store ports.Store, meta *Meta, engine *Engine, recon *Reconciler) *Fabric {
	return &Fabric{logger: logger, store: store, meta: meta, engine: engine, recon: recon}
}

// Kind names the loader family this installer handles.
func (f *Fabric) Kind() domain.LoaderKind {
	return domain.LoaderFabric
}

// Install provisions the engine version, then synthesizes and materializes
// the Fabric loader descriptor on top of it.
func (f *Fabric) Install(ctx context.Context, plan domain.InstallPlan) (string, error) {
	parentID, err := f.engine.Install(ctx, domain.InstallPlan{
		EngineVersion: plan.EngineVersion,
		Loader:        domain.LoaderVanilla,
		ProfileID:     plan.ProfileID,
	})
	if err != nil {
		return "", err
	}

	loaderVersion := plan.LoaderVersion
	if loaderVersion == "" {
		var entries []loaderEntry
		if err := f.meta.GetJSON(ctx, f.meta.FabricMetaURL+"/v2/versions/loader", &entries); err != nil {
			return "", err
		}
		loaderVersion, err = pickLoader(entries, "")
		if err != nil {
			return "", zerr.With(zerr.Wrap(err, "no loader builds published"), "loader", "fabric")
		}
	}

	versionID := fmt.Sprintf("fabric-loader-%s-%s", loaderVersion, plan.EngineVersion)
	if !f.store.HasDescriptor(versionID) {
		url := fmt.Sprintf("%s/v2/versions/loader/%s/%s", f.meta.FabricMetaURL, plan.EngineVersion, loaderVersion)
		var profile loaderProfile
		if err := f.meta.GetJSON(ctx, url, &profile); err != nil {
			return "", err
		}

		desc, err := fabricDescriptor(versionID, parentID, f.meta.FabricMaven, profile)
		if err != nil {
			return "", err
		}
		if err := f.store.WriteDescriptor(desc); err != nil {
			return "", err
		}
	}

	if err := f.recon.Reconcile(ctx, plan.ProfileID, versionID); err != nil {
		return "", err
	}
	return versionID, nil
}

// fabricDescriptor builds the loader descriptor: loader and mapping
// artifacts plus the profile's common and client libraries, all inheriting
// the engine parent.
func fabricDescriptor(versionID, parentID, mavenBase string, profile loaderProfile) (*domain.VersionDescriptor, error) {
	mainClass, err := profile.clientMainClass()
	if err != nil {
		return nil, err
	}

	libraries := []domain.Library{
		{Name: profile.Loader.Maven, URL: mavenBase},
		{Name: profile.Intermediary.Maven, URL: mavenBase},
	}
	for _, lib := range append(profile.LauncherMeta.Libraries.Common, profile.LauncherMeta.Libraries.Client...) {
		libraries = append(libraries, domain.Library{Name: lib.Name, URL: lib.URL, SHA1: lib.SHA1, Size: lib.Size})
	}

	now := time.Now().UTC().Format(time.RFC3339)
	return &domain.VersionDescriptor{
		ID:           versionID,
		InheritsFrom: parentID,
		MainClass:    mainClass,
		Type:         "release",
		Libraries:    libraries,
		ReleaseTime:  now,
		Time:         now,
	}, nil
}
