package credentials

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileStore_SaveLoadRemove(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "credentials.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)

	tok, err := store.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, tok)

	require.NoError(t, store.Save(ctx, "token-1"))
	tok, err = store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "token-1", tok)

	require.NoError(t, store.Save(ctx, "token-2"))
	tok, err = store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "token-2", tok)

	require.NoError(t, store.Remove(ctx))
	require.NoError(t, store.Remove(ctx))
	tok, err = store.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, tok)
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "credentials.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, "persisted"))

	reopened, err := NewFileStore(path)
	require.NoError(t, err)
	tok, err := reopened.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "persisted", tok)
}
