package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryCache_FetchOnceThenServeCached(t *testing.T) {
	cache := NewQueryCache[[]string]()
	key := QueryKey{"media", "g1"}

	calls := 0
	fetch := func(context.Context) ([]string, error) {
		calls++
		return []string{"m1", "m2"}, nil
	}

	got, err := cache.GetOrFetch(context.Background(), key, fetch)
	require.NoError(t, err)
	assert.Equal(t, []string{"m1", "m2"}, got)

	_, err = cache.GetOrFetch(context.Background(), key, fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "second read should hit the cache")
}

func TestQueryCache_InvalidateForcesRefetch(t *testing.T) {
	cache := NewQueryCache[[]string]()
	key := QueryKey{"media", "g1"}

	calls := 0
	fetch := func(context.Context) ([]string, error) {
		calls++
		return []string{"m1"}, nil
	}

	_, err := cache.GetOrFetch(context.Background(), key, fetch)
	require.NoError(t, err)
	assert.False(t, cache.IsStale(key))

	affected := cache.Invalidate(QueryKey{"media", "g1"})
	assert.Equal(t, 1, affected)
	assert.True(t, cache.IsStale(key))

	_, err = cache.GetOrFetch(context.Background(), key, fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.False(t, cache.IsStale(key), "refetch clears staleness")
}

func TestQueryCache_InvalidateMatchesPrefixOnly(t *testing.T) {
	cache := NewQueryCache[[]string]()
	fetch := func(v string) func(context.Context) ([]string, error) {
		return func(context.Context) ([]string, error) { return []string{v}, nil }
	}

	ctx := context.Background()
	_, err := cache.GetOrFetch(ctx, QueryKey{"media", "g1"}, fetch("a"))
	require.NoError(t, err)
	_, err = cache.GetOrFetch(ctx, QueryKey{"media", "g2"}, fetch("b"))
	require.NoError(t, err)
	_, err = cache.GetOrFetch(ctx, QueryKey{"businesses", "g1"}, fetch("c"))
	require.NoError(t, err)

	affected := cache.Invalidate(QueryKey{"media", "g1"})
	assert.Equal(t, 1, affected)
	assert.True(t, cache.IsStale(QueryKey{"media", "g1"}))
	assert.False(t, cache.IsStale(QueryKey{"media", "g2"}))
	assert.False(t, cache.IsStale(QueryKey{"businesses", "g1"}))
}

func TestQueryCache_FetchFailureLeavesEntryUntouched(t *testing.T) {
	cache := NewQueryCache[[]string]()
	key := QueryKey{"media", "g1"}
	ctx := context.Background()

	_, err := cache.GetOrFetch(ctx, key, func(context.Context) ([]string, error) {
		return []string{"m1"}, nil
	})
	require.NoError(t, err)
	cache.Invalidate(QueryKey{"media"})

	_, err = cache.GetOrFetch(ctx, key, func(context.Context) ([]string, error) {
		return nil, errors.New("catalog down")
	})
	assert.Error(t, err)
	assert.True(t, cache.IsStale(key), "failed refetch must not mark the entry fresh")
}

func TestQueryKey_HasPrefix(t *testing.T) {
	key := QueryKey{"products", "g1", "page-2"}

	assert.True(t, key.HasPrefix(QueryKey{"products"}))
	assert.True(t, key.HasPrefix(QueryKey{"products", "g1"}))
	assert.False(t, key.HasPrefix(QueryKey{"products", "g2"}))
	assert.False(t, key.HasPrefix(QueryKey{"products", "g1", "page-2", "x"}))
}
