package health

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanpaul/assistant/internal/config"
	"github.com/jeanpaul/assistant/internal/storage"
)

func setup(t *testing.T) (*config.Config, storage.Store) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.DataDir = filepath.Join(t.TempDir(), "data")
	st, err := storage.Open(cfg.StorageOptions(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return cfg, st
}

func TestCheck_Healthy(t *testing.T) {
	cfg, st := setup(t)
	list := Check(context.Background(), cfg, st)

	require.Len(t, list, 3)
	assert.Equal(t, []string{"config", "data dir", "storage"}, []string{list[0].Name, list[1].Name, list[2].Name})
	assert.True(t, Healthy(list))
	assert.Contains(t, list[2].Detail, "0 contacts, 0 notes")

	entries, err := os.ReadDir(cfg.DataDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "probe file is cleaned up")
}

func TestCheck_BadConfig(t *testing.T) {
	cfg, st := setup(t)
	cfg.Birthdays.DefaultDays = -3

	list := Check(context.Background(), cfg, st)
	assert.False(t, list[0].OK)
	assert.Contains(t, list[0].Error, "default_days")
	assert.False(t, Healthy(list))
}

func TestCheck_NewerSnapshot(t *testing.T) {
	cfg, st := setup(t)
	require.NoError(t, os.MkdirAll(cfg.DataDir, 0755))
	path := filepath.Join(cfg.DataDir, cfg.Storage.ContactsFile)
	require.NoError(t, os.WriteFile(path, []byte("version: 99\ncontacts: []\n"), 0644))

	list := Check(context.Background(), cfg, st)
	assert.False(t, list[2].OK)
	assert.Contains(t, list[2].Error, "newer version")
}

func TestCheckDir_NotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	s := checkDir(file)
	assert.False(t, s.OK)
	assert.NotEmpty(t, s.Error)
}
