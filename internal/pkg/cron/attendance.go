package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/hadirhq/hadir-backend-go/internal/domain/attendance"
	"github.com/hadirhq/hadir-backend-go/internal/domain/employee"
	"github.com/hadirhq/hadir-backend-go/internal/domain/policy"
	"github.com/hadirhq/hadir-backend-go/internal/pkg/database"
	"github.com/hadirhq/hadir-backend-go/internal/repository/postgresql"
)

// AttendanceJobs writes explicit absence records for working days nobody
// scanned on, so payroll and the dashboard never have to infer absences
// from missing rows.
type AttendanceJobs struct {
	db             *database.DB
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	policyRepo     policy.PolicyRepository
}

func NewAttendanceJobs(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	policyRepo policy.PolicyRepository,
) *AttendanceJobs {
	return &AttendanceJobs{
		db:             db,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		policyRepo:     policyRepo,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_absent_employees", 1*time.Hour, j.MarkAbsentEmployees)
}

// MarkAbsentEmployees backfills absent records for yesterday. Running
// hourly keeps the job cheap and idempotent; the conditional insert makes
// repeat runs no-ops.
func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	pol, err := j.policyRepo.Get(ctx)
	if err != nil {
		return err
	}

	local := time.Now().In(pol.Location())
	yesterday := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)

	if !policy.IsWorkingDay(yesterday) {
		return nil
	}

	employees, err := j.employeeRepo.GetActive(ctx)
	if err != nil {
		return err
	}

	// The whole backfill commits or rolls back as one unit, so a failure
	// partway through never leaves the day half marked.
	marked := 0
	err = postgresql.WithTransaction(ctx, j.db, func(tx pgx.Tx) error {
		txCtx := postgresql.ContextWithTx(ctx, tx)

		for _, emp := range employees {
			rec, err := j.attendanceRepo.GetByEmployeeAndDate(txCtx, emp.ID, yesterday)
			if err != nil {
				return err
			}
			if rec != nil {
				continue
			}
			if err := j.attendanceRepo.MarkAbsent(txCtx, emp.ID, yesterday); err != nil {
				return err
			}
			marked++
		}
		return nil
	})
	if err != nil {
		return err
	}

	if marked > 0 {
		slog.Info("Cron: marked employees absent",
			"date", yesterday.Format("2006-01-02"),
			"count", marked,
		)
	}

	return nil
}
