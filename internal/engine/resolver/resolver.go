// Package resolver loads version descriptors and folds their inheritance
// chains into a single concrete descriptor.
package resolver

import (
	"context"
	"encoding/json"

	"go.trai.ch/ember/internal/core/domain"
	"go.trai.ch/ember/internal/core/ports"
	"go.trai.ch/zerr"
)

// Resolver resolves descriptor inheritance against the local store.
type Resolver struct {
	store ports.Store
}

// New creates a new Resolver.
func New(store ports.Store) *Resolver {
	return &Resolver{store: store}
}

// LoadMerged loads the named descriptor and, if it inherits from a parent,
// recursively merges the parent chain parent-first. The result has a
// concrete mainClass and library set and no unresolved inheritance.
func (r *Resolver) LoadMerged(ctx context.Context, versionID string) (*domain.VersionDescriptor, error) {
	chain, err := r.Chain(ctx, versionID)
	if err != nil {
		return nil, err
	}

	// Chain is child-first; fold from the root down.
	merged := chain[len(chain)-1]
	for i := len(chain) - 2; i >= 0; i-- {
		merged = Merge(merged, chain[i])
	}
	return merged, nil
}

// Chain returns the descriptor inheritance chain, child first, root last.
func (r *Resolver) Chain(_ context.Context, versionID string) ([]*domain.VersionDescriptor, error) {
	var chain []*domain.VersionDescriptor
	seen := map[string]bool{}

	id := versionID
	for id != "" {
		if seen[id] {
			return nil, zerr.With(zerr.Wrap(domain.ErrInheritanceCycle, "inheritsFrom loops"), "version", id)
		}
		seen[id] = true

		desc, err := r.store.ReadDescriptor(id)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to load descriptor chain"), "requested", versionID)
		}
		chain = append(chain, desc)
		id = desc.InheritsFrom
	}
	return chain, nil
}

// Merge folds a child descriptor over its parent: mainClass and scalar
// fields are child-overrides, library and argument lists concatenate
// parent-first. Duplicate libraries are allowed here and collapsed later
// during classpath assembly.
func Merge(parent, child *domain.VersionDescriptor) *domain.VersionDescriptor {
	out := *parent
	out.ID = child.ID
	out.InheritsFrom = ""

	if child.MainClass != "" {
		out.MainClass = child.MainClass
	}
	if child.Type != "" {
		out.Type = child.Type
	}
	if child.MinecraftArguments != "" {
		out.MinecraftArguments = child.MinecraftArguments
	}
	if child.AssetIndex != nil {
		out.AssetIndex = child.AssetIndex
	}
	if child.Assets != "" {
		out.Assets = child.Assets
	}
	if child.Downloads != nil {
		out.Downloads = child.Downloads
	}
	if child.JavaVersion != nil {
		out.JavaVersion = child.JavaVersion
	}
	if child.ReleaseTime != "" {
		out.ReleaseTime = child.ReleaseTime
	}
	if child.Time != "" {
		out.Time = child.Time
	}

	out.Libraries = concatLibraries(parent.Libraries, child.Libraries)
	out.Arguments = mergeArguments(parent.Arguments, child.Arguments)
	out.Extra = mergeExtra(parent.Extra, child.Extra)

	return &out
}

func concatLibraries(parent, child []domain.Library) []domain.Library {
	if len(parent) == 0 && len(child) == 0 {
		return nil
	}
	out := make([]domain.Library, 0, len(parent)+len(child))
	out = append(out, parent...)
	out = append(out, child...)
	return out
}

func mergeArguments(parent, child *domain.Arguments) *domain.Arguments {
	if parent == nil && child == nil {
		return nil
	}

	out := &domain.Arguments{}
	if parent != nil {
		out.JVM = append(out.JVM, parent.JVM...)
		out.Game = append(out.Game, parent.Game...)
	}
	if child != nil {
		out.JVM = append(out.JVM, child.JVM...)
		out.Game = append(out.Game, child.Game...)
	}
	return out
}

func mergeExtra(parent, child map[string]json.RawMessage) map[string]json.RawMessage {
	if len(parent) == 0 && len(child) == 0 {
		return nil
	}
	out := make(map[string]json.RawMessage, len(parent)+len(child))
	for k, v := range parent {
		out[k] = v
	}
	for k, v := range child {
		out[k] = v
	}
	return out
}
