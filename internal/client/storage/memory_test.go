package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Basics(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	_, ok, err := m.Get(ctx, "token")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "token", "t"))
	require.NoError(t, m.Set(ctx, "a", "1"))

	keys, err := m.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "token"}, keys)

	require.NoError(t, m.Remove(ctx, "token"))
	_, ok, _ = m.Get(ctx, "token")
	assert.False(t, ok)

	require.NoError(t, m.Clear(ctx))
	keys, _ = m.Keys(ctx)
	assert.Empty(t, keys)
}

func TestMemoryStore_UpdateIsAllOrNothing(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()
	boom := errors.New("boom")

	err := m.Update(ctx, func(ctx context.Context, w Writer) error {
		_ = w.Set(ctx, "a", "1")
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, ok, _ := m.Get(ctx, "a")
	assert.False(t, ok)
}

func TestMemoryStore_FailWrites(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "a", "1"))

	quota := errors.New("quota exceeded")
	m.FailWrites = quota

	require.ErrorIs(t, m.Set(ctx, "b", "2"), quota)
	require.ErrorIs(t, m.Remove(ctx, "a"), quota)
	require.ErrorIs(t, m.Clear(ctx), quota)

	v, ok, err := m.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", v)
}
