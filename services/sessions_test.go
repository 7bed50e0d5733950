package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLifecycle(t *testing.T) {
	setupTestDB(t)
	store := NewDBSessionStore(time.Hour)

	token, err := store.Create(context.Background(), 42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := store.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)

	require.NoError(t, store.Destroy(context.Background(), token))

	_, err = store.Resolve(context.Background(), token)
	assert.ErrorIs(t, err, ErrAuth)

	// Destroy is idempotent.
	require.NoError(t, store.Destroy(context.Background(), token))
}

func TestSessionResolveRejectsGarbage(t *testing.T) {
	setupTestDB(t)
	store := NewDBSessionStore(time.Hour)

	_, err := store.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, ErrAuth)

	_, err = store.Resolve(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrAuth)
}

func TestSessionExpiry(t *testing.T) {
	setupTestDB(t)
	store := NewDBSessionStore(-time.Minute) // already expired on creation

	token, err := store.Create(context.Background(), 7)
	require.NoError(t, err)

	_, err = store.Resolve(context.Background(), token)
	assert.ErrorIs(t, err, ErrAuth)
}

func TestConcurrentSessionsAllowed(t *testing.T) {
	setupTestDB(t)
	store := NewDBSessionStore(time.Hour)

	first, err := store.Create(context.Background(), 1)
	require.NoError(t, err)
	second, err := store.Create(context.Background(), 1)
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	for _, token := range []string{first, second} {
		userID, err := store.Resolve(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, int64(1), userID)
	}
}
