package payroll

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hadirhq/hadir-backend-go/internal/domain/attendance"
	"github.com/hadirhq/hadir-backend-go/internal/domain/employee"
	"github.com/hadirhq/hadir-backend-go/internal/domain/payroll"
	"github.com/hadirhq/hadir-backend-go/internal/domain/policy"
	"github.com/hadirhq/hadir-backend-go/internal/pkg/genai"
)

type PayrollServiceImpl struct {
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	policyRepo     policy.PolicyRepository
	payrollRepo    payroll.PayrollRepository
	narrative      *genai.Client
	now            func() time.Time
}

func NewPayrollService(
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	policyRepo policy.PolicyRepository,
	payrollRepo payroll.PayrollRepository,
	narrative *genai.Client,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		policyRepo:     policyRepo,
		payrollRepo:    payrollRepo,
		narrative:      narrative,
		now:            time.Now,
	}
}

// Preview implements payroll.PayrollService.
func (p *PayrollServiceImpl) Preview(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.PayrollPreviewResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollPreviewResponse{}, err
	}

	period := req.Period()
	records, total, err := p.buildRecords(ctx, period, req.Overtime)
	if err != nil {
		return payroll.PayrollPreviewResponse{}, err
	}

	return payroll.PayrollPreviewResponse{
		PeriodMonth: period.Month,
		PeriodYear:  period.Year,
		PeriodLabel: period.Label(),
		TotalNetPay: total,
		Records:     records,
	}, nil
}

// Disburse implements payroll.PayrollService.
func (p *PayrollServiceImpl) Disburse(ctx context.Context, req payroll.DisburseRequest) (payroll.PayrollHistoryResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollHistoryResponse{}, err
	}

	period := req.Period()
	records, total, err := p.buildRecords(ctx, period, req.Overtime)
	if err != nil {
		return payroll.PayrollHistoryResponse{}, err
	}

	history := payroll.PayrollHistory{
		PeriodMonth: period.Month,
		PeriodYear:  period.Year,
		GeneratedAt: p.now().UTC(),
		TotalNetPay: total,
		Records:     records,
	}

	// The narrative is advisory. A failing or unconfigured generative
	// endpoint never blocks a disbursement.
	if p.narrative != nil && p.narrative.Enabled() {
		text, err := p.narrative.PayrollNarrative(ctx, period.Label(), records)
		if err != nil {
			slog.WarnContext(ctx, "payroll narrative generation failed",
				slog.String("period", period.Label()),
				slog.Any("error", err),
			)
		} else if text != "" {
			history.Narrative = &text
		}
	}

	created, err := p.payrollRepo.CreateHistory(ctx, history)
	if err != nil {
		return payroll.PayrollHistoryResponse{}, err
	}

	return mapHistoryToResponse(created), nil
}

// GetHistory implements payroll.PayrollService.
func (p *PayrollServiceImpl) GetHistory(ctx context.Context, month, year int) (payroll.PayrollHistoryResponse, error) {
	period := payroll.Period{Month: month, Year: year}
	if err := period.Validate(); err != nil {
		return payroll.PayrollHistoryResponse{}, err
	}

	history, err := p.payrollRepo.GetHistory(ctx, period)
	if err != nil {
		return payroll.PayrollHistoryResponse{}, err
	}

	return mapHistoryToResponse(history), nil
}

// ListHistory implements payroll.PayrollService.
func (p *PayrollServiceImpl) ListHistory(ctx context.Context) (payroll.ListPayrollHistoryResponse, error) {
	entries, err := p.payrollRepo.ListHistory(ctx)
	if err != nil {
		return payroll.ListPayrollHistoryResponse{}, err
	}

	responses := make([]payroll.PayrollHistoryResponse, 0, len(entries))
	for _, h := range entries {
		responses = append(responses, mapHistoryToResponse(h))
	}

	return payroll.ListPayrollHistoryResponse{History: responses}, nil
}

// buildRecords computes the deterministic payroll records for a period.
// Disburse and Preview share this path so a disbursed snapshot is always
// exactly what the preview showed.
func (p *PayrollServiceImpl) buildRecords(ctx context.Context, period payroll.Period, overtime []payroll.OvertimeInput) ([]payroll.PayrollRecord, decimal.Decimal, error) {
	pol, err := p.policyRepo.Get(ctx)
	if err != nil {
		return nil, decimal.Zero, err
	}

	employees, err := p.employeeRepo.GetActive(ctx)
	if err != nil {
		return nil, decimal.Zero, err
	}

	from, to := periodDateRange(period)
	attendances, err := p.attendanceRepo.QueryRange(ctx, nil, from, to)
	if err != nil {
		return nil, decimal.Zero, err
	}

	byEmployee := make(map[string][]attendance.AttendanceRecord)
	for _, rec := range attendances {
		byEmployee[rec.EmployeeID] = append(byEmployee[rec.EmployeeID], rec)
	}

	overtimeByEmployee := make(map[string]decimal.Decimal, len(overtime))
	for _, ot := range overtime {
		overtimeByEmployee[ot.EmployeeID] = ot.Amount
	}

	workingDays := countWorkingDays(period)
	evaluated := elapsedWorkingDays(period, p.now().In(pol.Location()))

	records := make([]payroll.PayrollRecord, 0, len(employees))
	total := decimal.Zero

	for _, emp := range employees {
		rec, err := p.buildEmployeeRecord(emp, byEmployee[emp.ID], pol, workingDays, evaluated, overtimeByEmployee[emp.ID])
		if err != nil {
			return nil, decimal.Zero, err
		}
		records = append(records, rec)
		total = total.Add(rec.NetPay)
	}

	return records, total, nil
}

func (p *PayrollServiceImpl) buildEmployeeRecord(
	emp employee.Employee,
	attendances []attendance.AttendanceRecord,
	pol policy.AttendancePolicy,
	workingDays int,
	evaluatedDays int,
	overtime decimal.Decimal,
) (payroll.PayrollRecord, error) {
	var delays []int
	var absentDays, onLeaveDays, workedDays int

	recordedDays := 0
	for _, rec := range attendances {
		if !policy.IsWorkingDay(rec.Date) {
			continue
		}
		recordedDays++
		switch rec.Status {
		case attendance.StatusPresent:
			workedDays++
			delays = append(delays, rec.DelayMinutes)
		case attendance.StatusAbsent:
			absentDays++
		case attendance.StatusOnLeave:
			onLeaveDays++
		}
	}

	// Working days already past with no record at all count as absences
	// the absence job has not written yet.
	if missing := evaluatedDays - recordedDays; missing > 0 {
		absentDays += missing
	}

	deduction, err := ComputePeriodDeduction(delays, pol, emp.DailyRate(workingDays))
	if err != nil {
		return payroll.PayrollRecord{}, err
	}

	gross := emp.GrossPay()
	net := gross.Sub(deduction.Amount).Add(overtime)

	rec := payroll.PayrollRecord{
		EmployeeID:        emp.ID,
		EmployeeName:      emp.Name,
		GrossPay:          gross,
		Deductions:        deduction.Amount,
		Overtime:          overtime,
		NetPay:            net,
		TotalDelayMinutes: deduction.TotalDelayMinutes,
		AbsentDays:        absentDays,
		OnLeaveDays:       onLeaveDays,
		WorkedDays:        workedDays,
	}

	// Absences never auto-deduct a day's pay; they surface for a human
	// decision instead.
	if absentDays > 0 {
		rec.NeedsReview = true
		note := "unexplained absences in period"
		rec.Notes = &note
	}

	return rec, nil
}

func mapHistoryToResponse(h payroll.PayrollHistory) payroll.PayrollHistoryResponse {
	period := payroll.Period{Month: h.PeriodMonth, Year: h.PeriodYear}
	return payroll.PayrollHistoryResponse{
		ID:          h.ID,
		PeriodMonth: h.PeriodMonth,
		PeriodYear:  h.PeriodYear,
		PeriodLabel: period.Label(),
		GeneratedAt: h.GeneratedAt,
		TotalNetPay: h.TotalNetPay,
		Records:     h.Records,
		Narrative:   h.Narrative,
	}
}

// periodDateRange returns the inclusive date keys covering the period,
// matching how scan dates are normalized.
func periodDateRange(period payroll.Period) (time.Time, time.Time) {
	from := time.Date(period.Year, time.Month(period.Month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	return from, to
}

// countWorkingDays counts scheduled working days in the whole period.
func countWorkingDays(period payroll.Period) int {
	from, to := periodDateRange(period)
	count := 0
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		if policy.IsWorkingDay(day) {
			count++
		}
	}
	return count
}

// elapsedWorkingDays counts working days of the period that are already in
// the past relative to the local date, so an in-progress month does not
// flag the future as absent.
func elapsedWorkingDays(period payroll.Period, localNow time.Time) int {
	from, to := periodDateRange(period)
	today := time.Date(localNow.Year(), localNow.Month(), localNow.Day(), 0, 0, 0, 0, time.UTC)
	count := 0
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		if !day.Before(today) {
			break
		}
		if policy.IsWorkingDay(day) {
			count++
		}
	}
	return count
}
