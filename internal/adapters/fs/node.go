package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ember/internal/core/ports"
)

// VerifierNodeID is the unique identifier for the verifier Graft node.
const VerifierNodeID graft.ID = "adapter.fs.verifier"

func init() {
	graft.Register(graft.Node[ports.Verifier]{
		ID:        VerifierNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Verifier, error) {
			return NewVerifier(), nil
		},
	})
}
