package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/hadirhq/hadir-backend-go/internal/domain/dashboard"
	"github.com/hadirhq/hadir-backend-go/internal/pkg/database"
)

type dashboardRepository struct {
	db *database.DB
}

// CountByStatus implements dashboard.DashboardRepository.
func (d *dashboardRepository) CountByStatus(ctx context.Context, date time.Time) (dashboard.StatusCounts, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'present'),
			COUNT(*) FILTER (WHERE status = 'absent'),
			COUNT(*) FILTER (WHERE status = 'on_leave')
		FROM attendance_records
		WHERE date = $1
	`

	var counts dashboard.StatusCounts
	err := q.QueryRow(ctx, query, date).Scan(&counts.Present, &counts.Absent, &counts.OnLeave)
	if err != nil {
		return dashboard.StatusCounts{}, fmt.Errorf("failed to count attendance by status: %w", err)
	}

	return counts, nil
}

// CountActiveEmployees implements dashboard.DashboardRepository.
func (d *dashboardRepository) CountActiveEmployees(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, d.db)

	var total int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE is_active = TRUE`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count active employees: %w", err)
	}

	return total, nil
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepository{db: db}
}
