package dashboard

import (
	"context"
	"time"

	"github.com/hadirhq/hadir-backend-go/internal/domain/attendance"
	"github.com/hadirhq/hadir-backend-go/internal/domain/dashboard"
	"github.com/hadirhq/hadir-backend-go/internal/domain/policy"
)

type DashboardServiceImpl struct {
	dashboardRepo  dashboard.DashboardRepository
	attendanceRepo attendance.AttendanceRepository
	policyRepo     policy.PolicyRepository
	now            func() time.Time
}

func NewDashboardService(
	dashboardRepo dashboard.DashboardRepository,
	attendanceRepo attendance.AttendanceRepository,
	policyRepo policy.PolicyRepository,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		dashboardRepo:  dashboardRepo,
		attendanceRepo: attendanceRepo,
		policyRepo:     policyRepo,
		now:            time.Now,
	}
}

// TodaySummary implements dashboard.DashboardService.
func (d *DashboardServiceImpl) TodaySummary(ctx context.Context) (dashboard.SummaryResponse, error) {
	pol, err := d.policyRepo.Get(ctx)
	if err != nil {
		return dashboard.SummaryResponse{}, err
	}

	local := d.now().In(pol.Location())
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)

	counts, err := d.dashboardRepo.CountByStatus(ctx, today)
	if err != nil {
		return dashboard.SummaryResponse{}, err
	}

	totalEmployees, err := d.dashboardRepo.CountActiveEmployees(ctx)
	if err != nil {
		return dashboard.SummaryResponse{}, err
	}

	notYetArrived := totalEmployees - counts.Present - counts.Absent - counts.OnLeave
	if notYetArrived < 0 {
		notYetArrived = 0
	}

	dateStr := today.Format("2006-01-02")
	recent, _, err := d.attendanceRepo.List(ctx, attendance.AttendanceFilter{
		Date:  &dateStr,
		Page:  1,
		Limit: 10,
	})
	if err != nil {
		return dashboard.SummaryResponse{}, err
	}

	recentResponses := make([]attendance.AttendanceResponse, 0, len(recent))
	for _, rec := range recent {
		recentResponses = append(recentResponses, mapRecordToResponse(rec))
	}

	return dashboard.SummaryResponse{
		Summary: dashboard.TodaySummary{
			Date:           dateStr,
			TotalEmployees: totalEmployees,
			Present:        counts.Present,
			Absent:         counts.Absent,
			OnLeave:        counts.OnLeave,
			NotYetArrived:  notYetArrived,
		},
		Recent: recentResponses,
	}, nil
}

func mapRecordToResponse(rec attendance.AttendanceRecord) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:           rec.ID,
		EmployeeID:   rec.EmployeeID,
		Date:         rec.Date.Format("2006-01-02"),
		Status:       string(rec.Status),
		DelayMinutes: rec.DelayMinutes,
	}
	if rec.CheckInTime != nil {
		s := rec.CheckInTime.Format(time.RFC3339)
		resp.CheckInTime = &s
	}
	if rec.CheckOutTime != nil {
		s := rec.CheckOutTime.Format(time.RFC3339)
		resp.CheckOutTime = &s
	}
	if rec.EmployeeName != nil {
		resp.EmployeeName = *rec.EmployeeName
	}
	return resp
}
