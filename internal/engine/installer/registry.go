package installer

import (
	"context"

	"go.trai.ch/ember/internal/core/domain"
	"go.trai.ch/ember/internal/core/ports"
	"go.trai.ch/zerr"
)

// Registry dispatches install plans to the installer of their loader family.
type Registry struct {
	installers map[domain.LoaderKind]ports.Installer
}

// NewRegistry creates a Registry over the given installers.
func NewRegistry(installers ...ports.Installer) *Registry {
	byKind := make(map[domain.LoaderKind]ports.Installer, len(installers))
	for _, inst := range installers {
		byKind[inst.Kind()] = inst
	}
	return &Registry{installers: byKind}
}

// Get returns the installer for a loader family.
func (r *Registry) Get(kind domain.LoaderKind) (ports.Installer, error) {
	if kind == "" {
		kind = domain.LoaderVanilla
	}
	inst, ok := r.installers[kind]
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnsupportedLoader, "no installer registered"), "loader", string(kind))
	}
	return inst, nil
}

// Install dispatches the plan to its loader's installer.
func (r *Registry) Install(ctx context.Context, plan domain.InstallPlan) (string, error) {
	inst, err := r.Get(plan.Loader)
	if err != nil {
		return "", err
	}
	return inst.Install(ctx, plan)
}
