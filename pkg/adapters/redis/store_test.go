package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/arbor/pkg/adapters/redis"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newTestClient(t)
	ports.RunStoreContract(t, redis.NewFromClient(client))
}

func TestRedisStore_ListNewestFirst(t *testing.T) {
	_, client := newTestClient(t)
	store := redis.NewFromClient(client)
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

func TestRedisStore_KeyPrefix(t *testing.T) {
	mr, client := newTestClient(t)
	store := redis.NewFromClient(client, redis.WithPrefix("custom:run:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.RunRecord{
		ID:        "r1",
		Flow:      "f",
		Status:    domain.RunRunning,
		StartedAt: time.Now(),
	}))

	assert.True(t, mr.Exists("custom:run:r1"), "record should live under the configured prefix")
	assert.True(t, mr.Exists("custom:run:index"))
}

func TestRedisStore_TTLPruning(t *testing.T) {
	mr, client := newTestClient(t)
	store := redis.NewFromClient(client, redis.WithTTL(time.Minute))
	ctx := context.Background()

	// A run that started long ago but was finalized just now: Save refreshed
	// its value TTL, so it must stay listed despite the old start time.
	require.NoError(t, store.Save(ctx, domain.RunRecord{
		ID:        "long-running",
		Flow:      "f",
		Status:    domain.RunCompleted,
		StartedAt: time.Now().Add(-time.Hour),
	}))
	require.NoError(t, store.Save(ctx, domain.RunRecord{
		ID:        "fresh",
		Flow:      "f",
		Status:    domain.RunRunning,
		StartedAt: time.Now(),
	}))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh", "long-running"}, ids)

	// Let the values expire; the index entries are pruned on the next List.
	mr.FastForward(2 * time.Minute)

	ids, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids, "expired runs should be pruned from the index")
}
