package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"loadboard/domain/schedule"
	"loadboard/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableOf(n int) *schedule.Table {
	return &schedule.Table{Records: make([]schedule.Record, n)}
}

func TestLoadMemoizes(t *testing.T) {
	c := New(0)
	var calls atomic.Int32
	loader := func() (*schedule.Table, error) {
		calls.Add(1)
		return tableOf(3), nil
	}

	first, err := c.Load("k", loader)
	require.NoError(t, err)
	second, err := c.Load("k", loader)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, Stats{Entries: 1, Hits: 1, Misses: 1}, c.Stats())
}

func TestLoadCollapsesConcurrentMisses(t *testing.T) {
	c := New(0)
	var calls atomic.Int32
	release := make(chan struct{})
	loader := func() (*schedule.Table, error) {
		calls.Add(1)
		<-release
		return tableOf(1), nil
	}

	const workers = 8
	var wg sync.WaitGroup
	results := make([]*schedule.Table, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			table, err := c.Load("same", loader)
			assert.NoError(t, err)
			results[i] = table
		}(i)
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, table := range results {
		assert.Same(t, results[0], table)
	}
	// Only the caller that ran the loader is a miss.
	assert.Equal(t, Stats{Entries: 1, Hits: workers - 1, Misses: 1}, c.Stats())
}

func TestLoadDoesNotCacheFailures(t *testing.T) {
	c := New(0)
	_, err := c.Load("bad", func() (*schedule.Table, error) {
		return nil, errors.NoData("bad.xlsx", fmt.Errorf("corrupt"))
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeNoData))

	_, ok := c.Get("bad")
	assert.False(t, ok)

	table, err := c.Load("bad", func() (*schedule.Table, error) { return tableOf(2), nil })
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
}

func TestEvictsOldest(t *testing.T) {
	c := New(2)
	for _, key := range []SourceKey{"a", "b", "c"} {
		_, err := c.Load(key, func() (*schedule.Table, error) { return tableOf(1), nil })
		require.NoError(t, err)
	}

	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Stats().Entries)

	c.Invalidate("c")
	_, ok = c.Get("c")
	assert.False(t, ok)
}

func TestPutServesWithoutLoading(t *testing.T) {
	c := New(0)
	table := tableOf(2)
	c.Put("file:abc", table)

	got, err := c.Load("file:abc", func() (*schedule.Table, error) {
		t.Fatal("loader must not run for a stored key")
		return nil, nil
	})
	require.NoError(t, err)
	assert.Same(t, table, got)
	assert.Equal(t, Stats{Entries: 1, Hits: 1, Misses: 0}, c.Stats())

	c.Invalidate("file:abc")
	c.Invalidate("file:abc")
	assert.Equal(t, 0, c.Stats().Entries)
}

func TestFileKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.csv")
	require.NoError(t, os.WriteFile(path, []byte("days\nM\n"), 0o644))

	k1, err := FileKey(path)
	require.NoError(t, err)
	k2, err := FileKey(path)
	require.NoError(t, err)
	assert.Equal(t, k1, k2)

	require.NoError(t, os.WriteFile(path, []byte("days\nM\nT\n"), 0o644))
	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, later, later))
	k3, err := FileKey(path)
	require.NoError(t, err)
	assert.NotEqual(t, k1, k3)

	_, err = FileKey(filepath.Join(t.TempDir(), "absent.xlsx"))
	assert.True(t, errors.Is(err, errors.CodeNoData))
}

func TestBlobKey(t *testing.T) {
	assert.Equal(t, BlobKey([]byte("abc")), BlobKey([]byte("abc")))
	assert.NotEqual(t, BlobKey([]byte("abc")), BlobKey([]byte("abd")))
	assert.Contains(t, string(BlobKey(nil)), "blob:")
}

func TestSourceKeyShort(t *testing.T) {
	blob := BlobKey([]byte("abc"))
	assert.Equal(t, "blob:ba7816bf8f01", blob.Short())
	assert.Equal(t, "plain", SourceKey("plain").Short())

	path := filepath.Join(t.TempDir(), "schedule.csv")
	require.NoError(t, os.WriteFile(path, []byte("days\nM\n"), 0o644))
	file, err := FileKey(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(file.Short(), "file:"))
	assert.Len(t, file.Short(), len("file:")+12)
}
