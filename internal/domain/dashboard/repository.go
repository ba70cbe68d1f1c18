package dashboard

import (
	"context"
	"time"
)

// StatusCounts holds per-status attendance tallies for a single date.
type StatusCounts struct {
	Present int
	Absent  int
	OnLeave int
}

type DashboardRepository interface {
	CountByStatus(ctx context.Context, date time.Time) (StatusCounts, error)
	CountActiveEmployees(ctx context.Context) (int, error)
}
