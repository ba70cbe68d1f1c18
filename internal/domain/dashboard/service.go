package dashboard

import "context"

type DashboardService interface {
	TodaySummary(ctx context.Context) (SummaryResponse, error)
}
