package installer

import (
	"context"
	"fmt"
	"time"

	"go.trai.ch/ember/internal/core/domain"
	"go.trai.ch/ember/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Installer = (*Quilt)(nil)

// Quilt layers the Quilt loader on top of an installed engine version. The
// meta service mirrors Fabric's shape with a v3 prefix, hashed mappings
// instead of intermediary, and its own maven repository.
type Quilt struct {
	logger ports.Logger
	store  ports.Store
	meta   *Meta
	engine *Engine
	recon  *Reconciler
}

// NewQuilt creates the Quilt installer.
func NewQuilt(logger ports.Logger, store ports.Store, meta *Meta, engine *Engine, recon *Reconciler) *Quilt {
	return &Quilt{logger: logger, store: store, meta: meta, engine: engine, recon: recon}
}

// Kind names the loader family this installer handles.
func (q *Quilt) Kind() domain.LoaderKind {
	return domain.LoaderQuilt
}

// Install provisions the engine version, then synthesizes and materializes
// the Quilt loader descriptor on top of it.
func (q *Quilt) Install(ctx context.Context, plan domain.InstallPlan) (string, error) {
	parentID, err := q.engine.Install(ctx, domain.InstallPlan{
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
		if err := q.meta.GetJSON(ctx, q.meta.QuiltMetaURL+"/v3/versions/loader", &entries); err != nil {
			return "", err
		}
		// Quilt does not flag stability; the list leads with the newest build.
		if len(entries) == 0 {
			return "", zerr.With(zerr.Wrap(domain.ErrNoCompatibleLoader, "no loader builds published"), "loader", "quilt")
		}
		loaderVersion = entries[0].Version
	}

	versionID := fmt.Sprintf("quilt-loader-%s-%s", loaderVersion, plan.EngineVersion)
	if !q.store.HasDescriptor(versionID) {
		url := fmt.Sprintf("%s/v3/versions/loader/%s/%s", q.meta.QuiltMetaURL, plan.EngineVersion, loaderVersion)
		var profile loaderProfile
		if err := q.meta.GetJSON(ctx, url, &profile); err != nil {
			return "", err
		}

		desc, err := quiltDescriptor(versionID, parentID, q.meta.QuiltMaven, profile)
		if err != nil {
			return "", err
		}
		if err := q.store.WriteDescriptor(desc); err != nil {
			return "", err
		}
	}

	if err := q.recon.Reconcile(ctx, plan.ProfileID, versionID); err != nil {
		return "", err
	}
	return versionID, nil
}

func quiltDescriptor(versionID, parentID, mavenBase string, profile loaderProfile) (*domain.VersionDescriptor, error) {
	mainClass, err := profile.clientMainClass()
	if err != nil {
		return nil, err
	}

	libraries := []domain.Library{
		{Name: profile.Loader.Maven, URL: mavenBase},
		{Name: profile.Hashed.Maven, URL: mavenBase},
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
