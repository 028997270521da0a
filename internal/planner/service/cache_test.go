package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"floorplan/internal/planner/models"
)

type fakeSource struct {
	mu    sync.Mutex
	calls map[string]int
	data  map[string][]models.Template
	err   error
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		calls: make(map[string]int),
		data: map[string][]models.Template{
			"p1": {{ID: "t1", ProjectID: "p1", Name: "Кухня"}},
			"p2": {{ID: "t2", ProjectID: "p2", Name: "Ванная"}},
		},
	}
}

func (f *fakeSource) ListTemplates(_ context.Context, projectID string) ([]models.Template, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls[projectID]++
	if f.err != nil {
		return nil, f.err
	}
	return f.data[projectID], nil
}

func TestTemplateCache_LoadsOnce(t *testing.T) {
	ctx := context.Background()
	src := newFakeSource()
	cache := NewTemplateCache(src)

	for i := 0; i < 3; i++ {
		list, err := cache.Get(ctx, "p1")
		require.NoError(t, err)
		require.Len(t, list, 1)
	}
	assert.Equal(t, 1, src.calls["p1"])
}

func TestTemplateCache_InvalidateForcesReload(t *testing.T) {
	ctx := context.Background()
	src := newFakeSource()
	cache := NewTemplateCache(src)

	_, err := cache.Get(ctx, "p1")
	require.NoError(t, err)
	_, err = cache.Get(ctx, "p2")
	require.NoError(t, err)

	src.data["p1"] = append(src.data["p1"], models.Template{ID: "t3", ProjectID: "p1"})
	cache.Invalidate("p1")

	list, err := cache.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, 2, src.calls["p1"])

	_, err = cache.Get(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls["p2"])

	cache.InvalidateAll()
	_, err = cache.Get(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls["p2"])
}

func TestTemplateCache_ErrorsAreNotCached(t *testing.T) {
	ctx := context.Background()
	src := newFakeSource()
	src.err = errors.New("db down")
	cache := NewTemplateCache(src)

	_, err := cache.Get(ctx, "p1")
	require.ErrorIs(t, err, src.err)

	src.err = nil
	list, err := cache.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestTemplateCache_Find(t *testing.T) {
	cache := NewTemplateCache(newFakeSource())

	tpl, ok, err := cache.Find(context.Background(), "p1", "t1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Кухня", tpl.Name)

	_, ok, err = cache.Find(context.Background(), "p1", "t2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTemplateCache_Concurrent(t *testing.T) {
	src := newFakeSource()
	cache := NewTemplateCache(src)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = cache.Get(context.Background(), "p1")
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, src.calls["p1"])
}
