package ports

import (
	"context"
	"io"
	"time"

	"loadboard/domain/schedule"
	"loadboard/internal/analytics"
	"loadboard/internal/cache"
)

// DashboardPort is the read side used by the UI and API handlers.
// Every method fails with NO_DATA until a schedule has been loaded.
type DashboardPort interface {
	// Table returns the current cleaned schedule
	Table(ctx context.Context) (*schedule.Table, error)

	// Records applies the filter to the current schedule
	Records(ctx context.Context, filter analytics.Filter) (analytics.View, error)

	// Summary computes every dashboard aggregation for the filter
	Summary(ctx context.Context, filter analytics.Filter) (analytics.Summary, error)

	// Options lists the choices for the filter controls
	Options(ctx context.Context) (analytics.Options, error)

	// Upload stores a replacement spreadsheet and makes it current
	Upload(ctx context.Context, filename string, r io.Reader) (*schedule.Table, error)

	// Health reports what is loaded and how the cache is doing
	Health(ctx context.Context) Health
}

// Health describes the currently loaded schedule
type Health struct {
	Loaded   bool        `json:"loaded"`
	Source   string      `json:"source,omitempty"`
	Records  int         `json:"records"`
	Dropped  int         `json:"dropped"`
	LoadedAt *time.Time  `json:"loaded_at,omitempty"`
	Cache    cache.Stats `json:"cache"`
}
