package loam

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
)

// DefaultNamespace is the directory artifacts land in when none is given.
const DefaultNamespace = "minutes"

// Artifacts persists rendered documents into a Loam repository. Every save
// goes through a transaction so the repository history records one commit per
// artifact.
type Artifacts struct {
	docs      *loam.TypedRepository[artifactMeta]
	svc       *core.Service
	namespace string
}

// artifactMeta exists only to satisfy the typed repository; artifacts carry
// no frontmatter of their own.
type artifactMeta struct{}

// ArtifactsOption configures an Artifacts store.
type ArtifactsOption func(*Artifacts)

// WithNamespace places artifacts under the given directory instead of
// DefaultNamespace.
func WithNamespace(ns string) ArtifactsOption {
	return func(a *Artifacts) {
		a.namespace = ns
	}
}

// NewArtifacts wraps a writable Loam repository.
func NewArtifacts(repo core.Repository, opts ...ArtifactsOption) *Artifacts {
	a := &Artifacts{
		docs:      loam.NewTypedRepository[artifactMeta](repo),
		svc:       core.NewService(repo),
		namespace: DefaultNamespace,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// SaveMarkdown commits the rendered markdown as <namespace>/<name>.md and
// returns that document id.
func (a *Artifacts) SaveMarkdown(ctx context.Context, name string, content string) (string, error) {
	id := path.Join(a.namespace, name+".md")
	if err := a.commit(ctx, id, content); err != nil {
		return "", err
	}
	return id, nil
}

// SaveJSON marshals v with indentation and commits it as
// <namespace>/<name>.json.
func (a *Artifacts) SaveJSON(ctx context.Context, name string, v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal artifact %q: %w", name, err)
	}

	id := path.Join(a.namespace, name+".json")
	if err := a.commit(ctx, id, string(data)); err != nil {
		return "", err
	}
	return id, nil
}

// List returns the ids of every artifact under the namespace, sorted.
func (a *Artifacts) List(ctx context.Context) ([]string, error) {
	docs, err := a.docs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	prefix := a.namespace + "/"
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		if strings.HasPrefix(doc.ID, prefix) {
			ids = append(ids, doc.ID)
		}
	}

	sort.Strings(ids)
	return ids, nil
}

func (a *Artifacts) commit(ctx context.Context, id, content string) error {
	tx, err := a.svc.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := tx.Save(ctx, core.Document{ID: id, Content: content}); err != nil {
		return fmt.Errorf("failed to save artifact %q: %w", id, err)
	}
	if err := tx.Commit(ctx, "Add artifact "+id); err != nil {
		return fmt.Errorf("failed to commit artifact %q: %w", id, err)
	}
	return nil
}
