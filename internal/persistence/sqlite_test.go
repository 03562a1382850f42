package persistence

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/eventhub/internal/config"
)

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	cfg := config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "eventhub.db")}

	first, err := OpenSQLite(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, SetJSON(ctx, first, "registrations", []string{"ann@x.com"}))
	require.NoError(t, first.Set(ctx, "userLoggedIn", "true"))
	require.NoError(t, first.Set(ctx, "userLoggedIn", "true"))
	require.NoError(t, first.Close())

	second, err := OpenSQLite(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	defer second.Close()

	regs, err := GetJSON(ctx, second, "registrations", []string{})
	require.NoError(t, err)
	assert.Equal(t, []string{"ann@x.com"}, regs)

	val, ok, err := second.Get(ctx, "userLoggedIn")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", val)
}

func TestSQLiteStore_RemoveAndMissing(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(ctx, config.SQLiteConfig{Path: ":memory:"}, zap.NewNop())
	require.NoError(t, err)
	defer s.Close()

	_, ok, err := s.Get(ctx, "adminLoggedIn")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "adminLoggedIn", "true"))
	require.NoError(t, s.Remove(ctx, "adminLoggedIn"))
	require.NoError(t, s.Remove(ctx, "adminLoggedIn"))

	_, ok, err = s.Get(ctx, "adminLoggedIn")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, s.Ping(ctx))
}

func TestOpen_MemoryAndSilent(t *testing.T) {
	cfg := config.Config{Store: config.StoreConfig{Backend: config.StoreBackendMemory, SilentWrites: true}}

	store, closeFn, err := Open(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer closeFn()

	_, isSilent := store.(*silentStore)
	assert.True(t, isSilent)

	_, _, err = Open(context.Background(), config.Config{Store: config.StoreConfig{Backend: "bogus"}}, zap.NewNop())
	assert.Error(t, err)
}
