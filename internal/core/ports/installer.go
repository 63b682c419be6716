package ports

import (
	"context"

	"go.trai.ch/ember/internal/core/domain"
)

// Installer provisions one loader family (or the base engine) into the
// store and returns the id of the resulting launchable version descriptor.
//
//go:generate mockgen -source=installer.go -destination=mocks/mock_installer.go -package=mocks
type Installer interface {
	// Kind names the loader family this installer handles.
	Kind() domain.LoaderKind
	// Install provisions the plan's engine/loader pair. An empty
	// plan.LoaderVersion requests the latest stable build.
	Install(ctx context.Context, plan domain.InstallPlan) (string, error)
}
