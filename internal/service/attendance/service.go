package attendance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/hadirhq/hadir-backend-go/internal/domain/attendance"
	"github.com/hadirhq/hadir-backend-go/internal/domain/policy"
	"github.com/hadirhq/hadir-backend-go/internal/pkg/qrtoken"
	"github.com/hadirhq/hadir-backend-go/internal/pkg/validator"
)

// scanRetries bounds how many times a scan re-reads the day record after
// losing a write race to a concurrent scan for the same employee.
const scanRetries = 3

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	policyRepo     policy.PolicyRepository
	now            func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	policyRepo policy.PolicyRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		policyRepo:     policyRepo,
		now:            time.Now,
	}
}

func employeeIDFromClaims(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", fmt.Errorf("employee_id claim is missing or invalid")
	}
	return employeeID, nil
}

// Scan implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Scan(ctx context.Context, req attendance.ScanRequest) (attendance.ScanResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ScanResponse{}, err
	}

	employeeID, err := employeeIDFromClaims(ctx)
	if err != nil {
		return attendance.ScanResponse{}, err
	}

	pol, err := a.policyRepo.Get(ctx)
	if err != nil {
		return attendance.ScanResponse{}, err
	}

	var lastErr error
	for attempt := 0; attempt < scanRetries; attempt++ {
		now := a.now()
		day := localDate(now, pol)

		existing, err := a.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, day)
		if err != nil {
			return attendance.ScanResponse{}, err
		}

		decision, err := EvaluateScan(now, pol, existing, req)
		if err != nil {
			return attendance.ScanResponse{}, err
		}

		resp, err := a.applyDecision(ctx, decision, employeeID, day, now, existing, req)
		if err != nil {
			// Losing the race means another scan changed the day state.
			// Re-read and re-evaluate so a duplicate becomes a clean
			// rejection instead of a second write.
			if errors.Is(err, attendance.ErrConcurrentWriteConflict) {
				lastErr = err
				continue
			}
			return attendance.ScanResponse{}, err
		}

		return resp, nil
	}

	return attendance.ScanResponse{}, lastErr
}

func (a *AttendanceServiceImpl) applyDecision(
	ctx context.Context,
	decision Decision,
	employeeID string,
	day time.Time,
	now time.Time,
	existing *attendance.AttendanceRecord,
	req attendance.ScanRequest,
) (attendance.ScanResponse, error) {
	switch decision.Event {
	case attendance.ScanEventCheckedIn:
		rec := attendance.AttendanceRecord{
			EmployeeID:       employeeID,
			Date:             day,
			CheckInTime:      &now,
			Status:           attendance.StatusPresent,
			DelayMinutes:     decision.DelayMinutes,
			CheckInLatitude:  req.Latitude,
			CheckInLongitude: req.Longitude,
		}
		created, err := a.attendanceRepo.CreateIfAbsent(ctx, rec)
		if err != nil {
			return attendance.ScanResponse{}, err
		}
		return attendance.ScanResponse{
			Event:        attendance.ScanEventCheckedIn,
			RecordedAt:   now.Format(time.RFC3339),
			DelayMinutes: created.DelayMinutes,
			Record:       mapRecordToResponse(created),
		}, nil

	case attendance.ScanEventCheckedOut:
		if err := a.attendanceRepo.CompleteCheckOut(ctx, existing.ID, now, req.Latitude, req.Longitude); err != nil {
			return attendance.ScanResponse{}, err
		}
		updated := *existing
		updated.CheckOutTime = &now
		updated.CheckOutLatitude = req.Latitude
		updated.CheckOutLongitude = req.Longitude
		return attendance.ScanResponse{
			Event:        attendance.ScanEventCheckedOut,
			RecordedAt:   now.Format(time.RFC3339),
			DelayMinutes: updated.DelayMinutes,
			Record:       mapRecordToResponse(updated),
		}, nil

	default:
		return attendance.ScanResponse{}, fmt.Errorf("unknown scan event %q", decision.Event)
	}
}

// CurrentQRToken implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CurrentQRToken(ctx context.Context) (attendance.QRTokenResponse, error) {
	pol, err := a.policyRepo.Get(ctx)
	if err != nil {
		return attendance.QRTokenResponse{}, err
	}

	issuedAt := a.now()
	return attendance.QRTokenResponse{
		Token:           qrtoken.Encode(issuedAt),
		LifespanSeconds: pol.QRLifespanSeconds,
		IssuedAt:        issuedAt.Format(time.RFC3339),
	}, nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	employeeID, err := employeeIDFromClaims(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	// The caller's identity always wins over whatever the filter says.
	filter.EmployeeID = &employeeID

	return a.list(ctx, filter)
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	return a.list(ctx, filter)
}

func (a *AttendanceServiceImpl) list(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	records, total, err := a.attendanceRepo.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	// Delay total covers the whole filtered range, not just this page.
	delayTotal, err := a.attendanceRepo.SumDelayMinutes(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, mapRecordToResponse(rec))
	}

	return attendance.ListAttendanceResponse{
		TotalCount:        total,
		Page:              filter.Page,
		Limit:             filter.Limit,
		TotalPages:        int(math.Ceil(float64(total) / float64(filter.Limit))),
		TotalDelayMinutes: delayTotal,
		Attendances:       responses,
	}, nil
}

// UpdateAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	rec, err := a.attendanceRepo.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if req.CheckInTime != nil {
		t, err := time.Parse(time.RFC3339, *req.CheckInTime)
		if err != nil {
			return attendance.AttendanceResponse{}, validator.ValidationErrors{
				{Field: "check_in_time", Message: "must be an RFC3339 timestamp"},
			}
		}
		rec.CheckInTime = &t
	}
	if req.CheckOutTime != nil {
		t, err := time.Parse(time.RFC3339, *req.CheckOutTime)
		if err != nil {
			return attendance.AttendanceResponse{}, validator.ValidationErrors{
				{Field: "check_out_time", Message: "must be an RFC3339 timestamp"},
			}
		}
		rec.CheckOutTime = &t
	}
	if req.Status != nil {
		rec.Status = attendance.Status(*req.Status)
	}
	if req.DelayMinutes != nil {
		rec.DelayMinutes = *req.DelayMinutes
	}

	// A correction must leave the record well formed: check-out only
	// exists alongside a check-in, and strictly after it.
	if rec.CheckOutTime != nil {
		if rec.CheckInTime == nil {
			return attendance.AttendanceResponse{}, validator.ValidationErrors{
				{Field: "check_out_time", Message: "cannot be set on a record with no check-in"},
			}
		}
		if !rec.CheckOutTime.After(*rec.CheckInTime) {
			return attendance.AttendanceResponse{}, validator.ValidationErrors{
				{Field: "check_out_time", Message: "must be after check_in_time"},
			}
		}
	}

	if err := a.attendanceRepo.Update(ctx, rec); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return mapRecordToResponse(rec), nil
}

// localDate collapses an instant to the calendar day it falls on in the
// policy timezone, normalized for use as the daily record key.
func localDate(now time.Time, pol policy.AttendancePolicy) time.Time {
	local := now.In(pol.Location())
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}

func mapRecordToResponse(rec attendance.AttendanceRecord) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:                rec.ID,
		EmployeeID:        rec.EmployeeID,
		Date:              rec.Date.Format("2006-01-02"),
		CheckInTime:       timePtrToString(rec.CheckInTime),
		CheckOutTime:      timePtrToString(rec.CheckOutTime),
		Status:            string(rec.Status),
		DelayMinutes:      rec.DelayMinutes,
		CheckInLatitude:   rec.CheckInLatitude,
		CheckInLongitude:  rec.CheckInLongitude,
		CheckOutLatitude:  rec.CheckOutLatitude,
		CheckOutLongitude: rec.CheckOutLongitude,
	}
	if rec.EmployeeName != nil {
		resp.EmployeeName = *rec.EmployeeName
	}
	return resp
}
