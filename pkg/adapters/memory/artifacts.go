package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// Artifacts implements ports.ArtifactStore in memory. Artifacts are
// addressed by a synthetic "mem://" location so callers can treat them
// uniformly with file-backed stores.
type Artifacts struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewArtifacts creates an empty in-memory artifact store.
func NewArtifacts() *Artifacts {
	return &Artifacts{data: make(map[string][]byte)}
}

// SaveMarkdown stores rendered markdown under name.md.
func (a *Artifacts) SaveMarkdown(ctx context.Context, name string, content string) (string, error) {
	location := "mem://" + name + ".md"
	a.mu.Lock()
	defer a.mu.Unlock()
	a.data[location] = []byte(content)
	return location, nil
}

// SaveJSON marshals v and stores it under name.json.
func (a *Artifacts) SaveJSON(ctx context.Context, name string, v any) (string, error) {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal artifact %s: %w", name, err)
	}
	location := "mem://" + name + ".json"
	a.mu.Lock()
	defer a.mu.Unlock()
	a.data[location] = payload
	return location, nil
}

// List returns the stored artifact locations in sorted order.
func (a *Artifacts) List(ctx context.Context) ([]string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	locations := make([]string, 0, len(a.data))
	for loc := range a.data {
		locations = append(locations, loc)
	}
	sort.Strings(locations)
	return locations, nil
}

// Read returns a stored artifact's bytes, for tests and embedded callers.
func (a *Artifacts) Read(location string) ([]byte, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	b, ok := a.data[location]
	return b, ok
}
