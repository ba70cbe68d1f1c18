package attendance

import "context"

// AttendanceService defines business logic for attendance operations.
type AttendanceService interface {
	// Scan runs the check-in state machine for the authenticated employee:
	// first valid scan of the day checks in, a scan after the lockout
	// window checks out, anything else is a rejection or a no-op.
	Scan(ctx context.Context, req ScanRequest) (ScanResponse, error)

	// CurrentQRToken issues the rotating token for the kiosk display.
	CurrentQRToken(ctx context.Context) (QRTokenResponse, error)

	// GetMyAttendance retrieves records for the authenticated employee.
	GetMyAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// ListAttendance retrieves records across employees (admin).
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// UpdateAttendance applies an administrative correction.
	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)
}
