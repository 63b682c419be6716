package installer

import (
	"context"

	"go.trai.ch/ember/internal/core/domain"
	"go.trai.ch/ember/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Installer = (*Forge)(nil)

// Forge is a placeholder for the classic Forge loader, whose installer
// pipeline (processor jars, SRG remapping) is not supported yet.
type Forge struct{}

// NewForge creates the Forge placeholder installer.
func NewForge() *Forge {
	return &Forge{}
}

// Kind names the loader family this installer handles.
func (f *Forge) Kind() domain.LoaderKind {
	return domain.LoaderForge
}

// Install always fails: classic Forge is not supported.
func (f *Forge) Install(_ context.Context, _ domain.InstallPlan) (string, error) {
	return "", zerr.With(zerr.Wrap(domain.ErrUnsupportedLoader, "classic forge installs are not supported"), "loader", "forge")
}
