package file_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/arbor/pkg/adapters/file"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
)

func TestStoreContract(t *testing.T) {
	ports.RunStoreContract(t, file.NewStore(t.TempDir()))
}

func TestArtifactsContract(t *testing.T) {
	ports.ArtifactStoreContract(t, file.NewArtifacts(t.TempDir()))
}

func TestStorePersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first := file.NewStore(dir)
	require.NoError(t, first.Save(ctx, domain.RunRecord{
		ID:        "r1",
		Flow:      "standup",
		Status:    domain.RunCompleted,
		StartedAt: time.Now().UTC(),
		Results:   domain.Results{"collect": {"ok": true}},
	}))

	// A fresh instance over the same directory sees the run.
	second := file.NewStore(dir)
	loaded, err := second.Load(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "standup", loaded.Flow)
	assert.Equal(t, domain.RunCompleted, loaded.Status)
}

func TestStoreListOrdersByStartTime(t *testing.T) {
	store := file.NewStore(t.TempDir())
	ctx := context.Background()

	base := time.Now().UTC()
	for i, id := range []string{"old", "mid", "new"} {
		require.NoError(t, store.Save(ctx, domain.RunRecord{
			ID:        id,
			Flow:      "f",
			Status:    domain.RunCompleted,
			StartedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "mid", "old"}, ids)
}

func TestStoreListEmptyDirectory(t *testing.T) {
	store := file.NewStore(filepath.Join(t.TempDir(), "never-created"))
	ids, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestArtifactsLayout(t *testing.T) {
	dir := t.TempDir()
	store := file.NewArtifacts(dir)
	ctx := context.Background()

	mdPath, err := store.SaveMarkdown(ctx, "standup-2026-08-23", "# Standup\n")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "standup-2026-08-23.md"), mdPath)

	jsonPath, err := store.SaveJSON(ctx, "standup-2026-08-23", map[string]any{"type": "standup"})
	require.NoError(t, err)

	raw, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "standup", decoded["type"])

	paths, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{jsonPath, mdPath}, paths)
}

func TestArtifactsNestedNames(t *testing.T) {
	dir := t.TempDir()
	store := file.NewArtifacts(dir)

	path, err := store.SaveMarkdown(context.Background(), "2026/08/allhands", "body")
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.Equal(t, filepath.Join(dir, "2026", "08", "allhands.md"), path)
}
