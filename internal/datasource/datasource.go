// Package datasource defines tabular input feeds for the decision cycle and
// a fixed-set registry to address them by name.
package datasource

import (
	"context"
	"time"
)

// triggerResolution is the bucket size trigger times are truncated to, so
// every source fetched in the same cycle sees the same logical timestamp.
const triggerResolution = 5 * time.Minute

// Row is one column-ordered record of a fetch. Values are positionally
// aligned with the source's Columns.
type Row []string

// DataSource is a named tabular feed. Fetch returns the rows visible at the
// given trigger time; implementations must be safe for repeated calls with
// the same trigger.
type DataSource interface {
	// Name returns the registry key of the source.
	Name() string
	// Columns returns the column names of fetched rows, in order.
	Columns() []string
	// Fetch returns the rows for the given trigger time.
	Fetch(ctx context.Context, triggerTime time.Time) ([]Row, error)
}

// TruncateTrigger rounds a trigger time down to the cycle resolution.
func TruncateTrigger(t time.Time) time.Time {
	return t.Truncate(triggerResolution)
}
