package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

func TestInMemoryRecordStore(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryRecordStore()

	_, err := store.Get(ctx, domain.KeyHabits)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)

	require.NoError(t, store.Set(ctx, domain.KeyHabits, `[]`))
	require.NoError(t, store.Set(ctx, domain.KeyHabits, `[{"id":1}]`))

	val, err := store.Get(ctx, domain.KeyHabits)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, val)

	require.NoError(t, store.Remove(ctx, domain.KeyHabits))
	require.NoError(t, store.Remove(ctx, domain.KeyHabits))

	_, err = store.Get(ctx, domain.KeyHabits)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}
