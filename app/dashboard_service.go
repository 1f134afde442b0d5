package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"loadboard/adapters/excel"
	"loadboard/domain/core"
	"loadboard/domain/schedule"
	"loadboard/internal/analytics"
	"loadboard/internal/cache"
	"loadboard/internal/dataset"
	"loadboard/internal/errors"
	"loadboard/internal/normalizer"
	"loadboard/ports"
)

// Snapshot is the schedule the dashboard currently shows
type Snapshot struct {
	Key      cache.SourceKey // file key when Path is set, otherwise the blob key
	Blob     cache.SourceKey // content hash of the upload, empty for files
	Source   string
	Path     string // empty for uploads that were not persisted
	Table    *schedule.Table
	LoadedAt time.Time
}

// DashboardConfig holds the settings the service needs from the app config
type DashboardConfig struct {
	ScheduleFile   string
	Reader         excel.ReaderConfig
	TopN           int
	MaxUploadBytes int64
}

// DashboardService owns the current schedule and answers dashboard queries over it
type DashboardService struct {
	tables  *cache.TableCache
	storage *dataset.LocalFileStorage
	config  DashboardConfig

	mu      sync.RWMutex
	current *Snapshot
}

var _ ports.DashboardPort = (*DashboardService)(nil)

// NewDashboardService creates a dashboard service
func NewDashboardService(tables *cache.TableCache, storage *dataset.LocalFileStorage, config DashboardConfig) *DashboardService {
	if tables == nil {
		tables = cache.New(cache.DefaultMaxEntries)
	}
	if config.TopN <= 0 {
		config.TopN = analytics.DefaultTopN
	}
	return &DashboardService{
		tables:  tables,
		storage: storage,
		config:  config,
	}
}

// Start loads the configured schedule file, falling back to the most recent upload.
// A NO_DATA error means the UI should ask for an upload.
func (s *DashboardService) Start(ctx context.Context) error {
	var firstErr error
	if s.config.ScheduleFile != "" {
		_, err := s.LoadFile(ctx, s.config.ScheduleFile)
		if err == nil {
			return nil
		}
		log.Printf("[DashboardService] Could not load %s: %v", s.config.ScheduleFile, err)
		firstErr = err
	}

	if s.storage != nil {
		if err := s.loadLatestUpload(ctx); err == nil {
			return nil
		} else if firstErr == nil {
			firstErr = err
		}
	}

	if firstErr == nil {
		firstErr = errors.NoData(s.config.ScheduleFile, core.ErrSourceAbsent)
	}
	return firstErr
}

// loadLatestUpload loads the newest stored upload. Uploads that no longer parse
// are removed so the next newest one is tried.
func (s *DashboardService) loadLatestUpload(ctx context.Context) error {
	for {
		latest, err := s.storage.Latest(ctx)
		if err != nil {
			log.Printf("[DashboardService] Could not list uploads: %v", err)
			return errors.NoData(s.config.ScheduleFile, err)
		}
		if latest == "" {
			return errors.NoData(s.config.ScheduleFile, core.ErrSourceAbsent)
		}
		_, err = s.LoadFile(ctx, latest)
		if err == nil || !errors.Is(err, errors.CodeNoData) {
			return err
		}
		log.Printf("[DashboardService] Removing unreadable upload %s: %v", latest, err)
		if delErr := s.storage.Delete(ctx, latest); delErr != nil {
			log.Printf("[DashboardService] Could not remove %s: %v", latest, delErr)
			return err
		}
	}
}

// LoadFile reads and cleans a schedule file and makes it current. Unchanged
// files are served from the cache.
func (s *DashboardService) LoadFile(ctx context.Context, path string) (*schedule.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key, err := cache.FileKey(path)
	if err != nil {
		return nil, err
	}
	table, err := s.tables.Load(key, cleaner(excel.NewDataReader(path, s.config.Reader)))
	if err != nil {
		return nil, err
	}
	s.setCurrent(&Snapshot{Key: key, Source: path, Path: path, Table: table, LoadedAt: time.Now()})
	return table, nil
}

// Upload parses an uploaded spreadsheet, stores it under the upload directory and
// makes it current. Files that do not parse are not stored.
func (s *DashboardService) Upload(ctx context.Context, filename string, r io.Reader) (*schedule.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	src := r
	if s.config.MaxUploadBytes > 0 {
		src = io.LimitReader(r, s.config.MaxUploadBytes+1)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read upload")
	}
	if s.config.MaxUploadBytes > 0 && int64(len(data)) > s.config.MaxUploadBytes {
		return nil, errors.InvalidInput(fmt.Sprintf("%s exceeds the %d byte limit", filename, s.config.MaxUploadBytes))
	}
	if s.storage != nil {
		if err := s.storage.Validate(filename, int64(len(data))); err != nil {
			return nil, err
		}
	}

	key := cache.BlobKey(data)
	table, err := s.tables.Load(key, cleaner(excel.NewBlobReader(filename, data, s.config.Reader)))
	if err != nil {
		return nil, err
	}

	if cur := s.currentSnapshot(); cur != nil && cur.Blob == key && cur.Table == table {
		log.Printf("[DashboardService] %s matches the current upload %s, not storing again", filename, key.Short())
		return table, nil
	}

	snap := &Snapshot{Key: key, Blob: key, Source: filename, Table: table, LoadedAt: time.Now()}
	if s.storage != nil {
		stored, err := s.storage.Store(ctx, bytes.NewReader(data), filename)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to store upload %s", filename)
		}
		snap.Path = stored.Path
		log.Printf("[DashboardService] Stored upload %s as %s (%d bytes)", filename, stored.Path, stored.Size)

		// The stored copy holds the same bytes, so it shares the cleaned table.
		if fileKey, err := cache.FileKey(stored.Path); err == nil {
			s.tables.Put(fileKey, table)
			snap.Key = fileKey
		} else {
			log.Printf("[DashboardService] Could not stat %s, serving the upload from memory: %v", stored.Path, err)
			snap.Path = ""
		}
	}
	s.setCurrent(snap)
	return table, nil
}

// Snapshot returns the current schedule, reloading its file if it changed on disk
func (s *DashboardService) Snapshot(ctx context.Context) (*Snapshot, error) {
	snap := s.currentSnapshot()
	if snap == nil {
		return nil, errors.NoData(s.config.ScheduleFile, core.ErrSourceAbsent)
	}
	if snap.Path == "" {
		return snap, nil
	}
	key, err := cache.FileKey(snap.Path)
	if err != nil || key == snap.Key {
		return snap, nil
	}

	log.Printf("[DashboardService] %s changed on disk, reloading", snap.Path)
	table, err := s.tables.Load(key, cleaner(excel.NewDataReader(snap.Path, s.config.Reader)))
	if err != nil {
		log.Printf("[DashboardService] Reload failed, keeping previous table: %v", err)
		return snap, nil
	}
	s.tables.Invalidate(snap.Key)
	next := &Snapshot{Key: key, Source: snap.Source, Path: snap.Path, Table: table, LoadedAt: time.Now()}
	return s.replaceCurrent(snap, next), nil
}

// Table returns the current cleaned schedule
func (s *DashboardService) Table(ctx context.Context) (*schedule.Table, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Table, nil
}

// Records applies the filter to the current schedule
func (s *DashboardService) Records(ctx context.Context, filter analytics.Filter) (analytics.View, error) {
	table, err := s.Table(ctx)
	if err != nil {
		return analytics.View{}, err
	}
	return analytics.Apply(table, filter), nil
}

// Summary computes the dashboard for the filter
func (s *DashboardService) Summary(ctx context.Context, filter analytics.Filter) (analytics.Summary, error) {
	table, err := s.Table(ctx)
	if err != nil {
		return analytics.Summary{}, err
	}
	return analytics.Summarize(table, analytics.Apply(table, filter), s.config.TopN), nil
}

// Options lists the filter choices for the current schedule
func (s *DashboardService) Options(ctx context.Context) (analytics.Options, error) {
	table, err := s.Table(ctx)
	if err != nil {
		return analytics.Options{}, err
	}
	return analytics.FilterOptions(table), nil
}

// Health reports the loaded source and cache counters
func (s *DashboardService) Health(ctx context.Context) ports.Health {
	h := ports.Health{Cache: s.tables.Stats()}
	if snap := s.currentSnapshot(); snap != nil {
		loadedAt := snap.LoadedAt
		h.Loaded = true
		h.Source = snap.Source
		h.Records = snap.Table.Len()
		h.Dropped = snap.Table.Dropped
		h.LoadedAt = &loadedAt
	}
	return h
}

// TopN is the length of the ranked lists
func (s *DashboardService) TopN() int {
	return s.config.TopN
}

func (s *DashboardService) currentSnapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// replaceCurrent swaps old for next unless another load already replaced it,
// and returns whichever snapshot is current afterwards.
func (s *DashboardService) replaceCurrent(old, next *Snapshot) *Snapshot {
	s.mu.Lock()
	if s.current != old {
		cur := s.current
		s.mu.Unlock()
		return cur
	}
	s.current = next
	s.mu.Unlock()
	log.Printf("[DashboardService] Serving %s: %d sessions, %d dropped", next.Source, next.Table.Len(), next.Table.Dropped)
	return next
}

func (s *DashboardService) setCurrent(snap *Snapshot) {
	s.mu.Lock()
	s.current = snap
	s.mu.Unlock()
	log.Printf("[DashboardService] Serving %s: %d sessions, %d dropped", snap.Source, snap.Table.Len(), snap.Table.Dropped)
}

// cleaner turns a source into a cache loader
func cleaner(src ports.ScheduleSource) cache.Loader {
	return func() (*schedule.Table, error) {
		raw, err := src.ReadData()
		if err != nil {
			return nil, err
		}
		return normalizer.Clean(raw), nil
	}
}
