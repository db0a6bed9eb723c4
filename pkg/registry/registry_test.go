package registry_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/registry"
)

func TestRegistry(t *testing.T) {
	t.Run("Build Dispatches To Registered Factory", func(t *testing.T) {
		reg := registry.New()
		reg.Register("echo", func(config map[string]any) (domain.Task, error) {
			return domain.TaskFunc(func(ctx context.Context, rc domain.Context) (map[string]any, error) {
				return map[string]any{"config": config["msg"]}, nil
			}), nil
		})

		task, err := reg.Build("echo", map[string]any{"msg": "hi"})
		require.NoError(t, err)

		out, err := task.Execute(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, "hi", out["config"])
	})

	t.Run("Unknown Kind Is A Typed Error", func(t *testing.T) {
		reg := registry.New()

		_, err := reg.Build("ghost", nil)
		require.Error(t, err)

		var unknown registry.UnknownKindError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "ghost", unknown.Kind)
	})

	t.Run("Register Overwrites Existing Kind", func(t *testing.T) {
		reg := registry.New()
		mk := func(v string) registry.Factory {
			return func(map[string]any) (domain.Task, error) {
				return domain.TaskFunc(func(ctx context.Context, rc domain.Context) (map[string]any, error) {
					return map[string]any{"v": v}, nil
				}), nil
			}
		}
		reg.Register("k", mk("first"))
		reg.Register("k", mk("second"))

		task, err := reg.Build("k", nil)
		require.NoError(t, err)
		out, _ := task.Execute(context.Background(), nil)
		assert.Equal(t, "second", out["v"])
	})

	t.Run("Kinds Lists Registered Names", func(t *testing.T) {
		reg := registry.NewDefault()
		assert.Contains(t, reg.Kinds(), "static")
		assert.Contains(t, reg.Kinds(), "clock")
	})
}

func TestBuiltinStatic(t *testing.T) {
	reg := registry.NewDefault()

	t.Run("Returns Configured Values", func(t *testing.T) {
		task, err := reg.Build("static", map[string]any{
			"values": map[string]any{"attendees": []any{"dana", "lee"}},
		})
		require.NoError(t, err)

		out, err := task.Execute(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, []any{"dana", "lee"}, out["attendees"])
	})

	t.Run("Missing Values Yields Empty Output", func(t *testing.T) {
		task, err := reg.Build("static", nil)
		require.NoError(t, err)

		out, err := task.Execute(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("Non-Mapping Values Fails At Build Time", func(t *testing.T) {
		_, err := reg.Build("static", map[string]any{"values": "oops"})
		assert.ErrorContains(t, err, "static: failed to decode config")
	})
}

func TestBuiltinClock(t *testing.T) {
	reg := registry.NewDefault()

	t.Run("Formats Current Time", func(t *testing.T) {
		task, err := reg.Build("clock", map[string]any{"format": "2006-01-02"})
		require.NoError(t, err)

		out, err := task.Execute(context.Background(), nil)
		require.NoError(t, err)

		now, ok := out["now"].(string)
		require.True(t, ok)
		_, err = time.Parse("2006-01-02", now)
		assert.NoError(t, err)
	})

	t.Run("Rejects Non-String Format", func(t *testing.T) {
		_, err := reg.Build("clock", map[string]any{"format": 12})
		assert.ErrorContains(t, err, "clock: failed to decode config")
	})
}
