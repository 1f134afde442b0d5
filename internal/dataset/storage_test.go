package dataset

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"loadboard/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storageAt(dir string) *LocalFileStorage {
	cfg := DefaultStorageConfig()
	cfg.BasePath = dir
	return NewLocalFileStorage(cfg)
}

func TestStoreWritesUniqueFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	s := storageAt(dir)
	ctx := context.Background()

	first, err := s.Store(ctx, strings.NewReader("days\nM\n"), "../../schedule.CSV")
	require.NoError(t, err)
	second, err := s.Store(ctx, strings.NewReader("days\nT\n"), "schedule.csv")
	require.NoError(t, err)

	assert.NotEqual(t, first.Path, second.Path)
	assert.Equal(t, dir, filepath.Dir(first.Path))
	assert.True(t, strings.HasPrefix(filepath.Base(first.Path), "schedule_"))
	assert.Equal(t, ".csv", filepath.Ext(first.Path))
	assert.Equal(t, "schedule.CSV", first.OriginalName)
	assert.Equal(t, int64(7), first.Size)

	data, err := os.ReadFile(first.Path)
	require.NoError(t, err)
	assert.Equal(t, "days\nM\n", string(data))

	require.NoError(t, s.Delete(ctx, first.Path))
	_, err = os.Stat(first.Path)
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, s.Delete(ctx, first.Path))
}

func TestStoreRejectsOversize(t *testing.T) {
	cfg := DefaultStorageConfig()
	cfg.BasePath = t.TempDir()
	cfg.MaxFileSize = 4
	s := NewLocalFileStorage(cfg)

	_, err := s.Store(context.Background(), strings.NewReader("too long"), "a.csv")
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	entries, err := os.ReadDir(cfg.BasePath)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestValidate(t *testing.T) {
	s := NewLocalFileStorage(nil)
	assert.NoError(t, s.Validate("schedule.xlsx", 10))
	assert.NoError(t, s.Validate("SCHEDULE.CSV", 10))
	assert.Equal(t, errors.CodeUnsupportedFormat, errors.GetCode(s.Validate("schedule.pdf", 10)))
	assert.Equal(t, errors.CodeUnsupportedFormat, errors.GetCode(s.Validate("legacy.xls", 10)))
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(s.Validate("schedule.csv", 1<<40)))
}

func TestLatest(t *testing.T) {
	dir := t.TempDir()
	s := storageAt(dir)
	ctx := context.Background()

	latest, err := s.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", latest)

	older := filepath.Join(dir, "a.xlsx")
	newer := filepath.Join(dir, "b.csv")
	require.NoError(t, os.WriteFile(older, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(newer, []byte("y"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("z"), 0o644))
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(older, past, past))

	latest, err = s.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, newer, latest)

	missing := storageAt(filepath.Join(dir, "nope"))
	latest, err = missing.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", latest)
}
