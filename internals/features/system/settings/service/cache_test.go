package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheTTL(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	c := NewMemoryCache(time.Minute)
	c.now = func() time.Time { return now }
	ctx := t.Context()

	_, err := c.Get(ctx, "site_name")
	assert.ErrorIs(t, err, errCacheMiss)

	require.NoError(t, c.Set(ctx, "site_name", []byte(`"Itqan"`)))
	b, err := c.Get(ctx, "site_name")
	require.NoError(t, err)
	assert.Equal(t, `"Itqan"`, string(b))

	now = now.Add(59 * time.Second)
	_, err = c.Get(ctx, "site_name")
	assert.NoError(t, err)

	now = now.Add(2 * time.Second)
	_, err = c.Get(ctx, "site_name")
	assert.ErrorIs(t, err, errCacheMiss)

	require.NoError(t, c.Set(ctx, "a", []byte("1")))
	require.NoError(t, c.Set(ctx, "b", []byte("2")))
	require.NoError(t, c.Delete(ctx, "a"))
	_, err = c.Get(ctx, "a")
	assert.ErrorIs(t, err, errCacheMiss)
	require.NoError(t, c.Flush(ctx))
	_, err = c.Get(ctx, "b")
	assert.ErrorIs(t, err, errCacheMiss)
	assert.Equal(t, "memory", c.Name())
}
