package ports

import (
	"context"

	"github.com/aretw0/arbor/pkg/domain"
)

// RunStore defines the interface for persisting run summaries. Intermediate
// node state is never stored; a record is written when a run starts and
// finalized when it ends.
type RunStore interface {
	// Save persists the record under its run id, overwriting any previous
	// version of the same run.
	Save(ctx context.Context, record domain.RunRecord) error

	// Load retrieves the record for a run id.
	// Returns domain.ErrRunNotFound if the run does not exist.
	Load(ctx context.Context, id string) (domain.RunRecord, error)

	// Delete removes the record for a run id.
	Delete(ctx context.Context, id string) error

	// List returns the known run ids, most recently started first where the
	// backend can order them.
	List(ctx context.Context) ([]string, error)
}

// ArtifactStore receives the documents a run produces. Tasks that render
// minutes write both the markdown and a JSON companion through this port and
// report the returned locations in their output.
type ArtifactStore interface {
	// SaveMarkdown stores rendered markdown under the given name (without
	// extension) and returns the artifact's location.
	SaveMarkdown(ctx context.Context, name string, content string) (string, error)

	// SaveJSON marshals v and stores it under the given name (without
	// extension), returning the artifact's location.
	SaveJSON(ctx context.Context, name string, v any) (string, error)

	// List returns the locations of all stored artifacts.
	List(ctx context.Context) ([]string, error)
}
