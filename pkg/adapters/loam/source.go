// Package loam adapts a Loam document repository to the Arbor ports: flow
// definitions are markdown/YAML documents whose frontmatter declares the
// nodes, and rendered artifacts are committed back as documents.
package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"

	"github.com/aretw0/arbor/pkg/domain"
)

// Source resolves flow definitions from a Loam repository. Each document's
// frontmatter is decoded into FlowMetadata; the document id (sans extension)
// is the flow id unless the frontmatter overrides it.
type Source struct {
	repo *loam.TypedRepository[FlowMetadata]
}

// New wraps an already-initialized typed repository.
func New(repo *loam.TypedRepository[FlowMetadata]) *Source {
	return &Source{repo: repo}
}

// NewFromPath initializes a read-only Loam repository at path and wraps it.
func NewFromPath(path string) (*Source, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve flows path: %w", err)
	}

	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
		loam.WithVersioning(false),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to init loam repository at %s: %w", absPath, err)
	}

	return New(loam.NewTypedRepository[FlowMetadata](repo)), nil
}

// GetFlow retrieves and decodes a flow document. Loam exposes no typed
// not-found error, so any lookup failure maps to domain.ErrFlowNotFound with
// the underlying cause attached to the message.
func (s *Source) GetFlow(ctx context.Context, id string) (domain.FlowSpec, error) {
	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.FlowSpec{}, fmt.Errorf("flow %q: %v: %w", id, err, domain.ErrFlowNotFound)
	}

	spec := toFlowSpec(doc.ID, doc.Data)
	if err := spec.Validate(); err != nil {
		return domain.FlowSpec{}, fmt.Errorf("invalid flow document %q: %w", id, err)
	}
	return spec, nil
}

// ListFlows lists the flow ids in the repository, sorted. Two documents
// resolving to the same id is an error, not a silent shadow.
func (s *Source) ListFlows(ctx context.Context) ([]string, error) {
	docs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string, len(docs))
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		id := flowID(doc.ID, doc.Data)
		if existing, ok := seen[id]; ok {
			return nil, fmt.Errorf("flow id %q is defined in both %q and %q", id, existing, doc.ID)
		}
		seen[id] = doc.ID
		ids = append(ids, id)
	}

	sort.Strings(ids)
	return ids, nil
}

// Watch implements ports.Watchable. It forwards repository change events as
// bare signals; consumers re-list and re-compile on every tick.
func (s *Source) Watch(ctx context.Context) (<-chan struct{}, error) {
	events, err := s.repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}
	return coalesce(ctx, events), nil
}

// coalesce forwards events as bare reload signals with a one-slot buffer:
// a signal already pending covers every event that arrives before it is
// consumed. The returned channel closes when the events channel closes or
// the context is cancelled.
func coalesce[E any](ctx context.Context, events <-chan E) <-chan struct{} {
	ch := make(chan struct{}, 1)
	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- struct{}{}:
				default:
				}
			}
		}
	}()
	return ch
}

func toFlowSpec(docID string, meta FlowMetadata) domain.FlowSpec {
	spec := domain.FlowSpec{
		ID:          flowID(docID, meta),
		Title:       meta.Title,
		Description: meta.Description,
		Nodes:       make([]domain.NodeSpec, 0, len(meta.Nodes)),
	}
	for _, n := range meta.Nodes {
		spec.Nodes = append(spec.Nodes, domain.NodeSpec{
			ID:        n.ID,
			Task:      n.task(),
			With:      n.With,
			DependsOn: n.dependsOn(),
		})
	}
	return spec
}

func flowID(docID string, meta FlowMetadata) string {
	if meta.ID != "" {
		return meta.ID
	}
	return trimExtension(docID)
}

func trimExtension(id string) string {
	if ext := filepath.Ext(id); ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
