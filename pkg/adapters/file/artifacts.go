package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Artifacts implements ports.ArtifactStore on the local filesystem. Rendered
// minutes land as sibling .md/.json files under the base directory, which is
// created on first write.
type Artifacts struct {
	BasePath string
}

// NewArtifacts creates an artifact store at the given base path.
// If basePath is empty, it defaults to "data/minutes".
func NewArtifacts(basePath string) *Artifacts {
	if basePath == "" {
		basePath = filepath.Join("data", "minutes")
	}
	return &Artifacts{BasePath: basePath}
}

// SaveMarkdown writes rendered markdown to <base>/<name>.md.
func (a *Artifacts) SaveMarkdown(ctx context.Context, name string, content string) (string, error) {
	return a.write(name+".md", []byte(content))
}

// SaveJSON marshals v and writes it to <base>/<name>.json.
func (a *Artifacts) SaveJSON(ctx context.Context, name string, v any) (string, error) {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal artifact %s: %w", name, err)
	}
	return a.write(name+".json", payload)
}

// List returns the paths of all artifacts under the base directory.
func (a *Artifacts) List(ctx context.Context) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(a.BasePath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk artifact directory: %w", err)
	}
	sort.Strings(paths)
	return paths, nil
}

func (a *Artifacts) write(rel string, data []byte) (string, error) {
	path := filepath.Join(a.BasePath, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to ensure artifact directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write artifact: %w", err)
	}
	return path, nil
}
