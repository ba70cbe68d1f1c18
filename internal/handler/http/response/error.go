package response

import (
	"errors"
	"net/http"

	"github.com/hadirhq/hadir-backend-go/internal/domain/attendance"
	"github.com/hadirhq/hadir-backend-go/internal/domain/auth"
	"github.com/hadirhq/hadir-backend-go/internal/domain/employee"
	"github.com/hadirhq/hadir-backend-go/internal/domain/payroll"
	"github.com/hadirhq/hadir-backend-go/internal/domain/policy"
	"github.com/hadirhq/hadir-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// A geofence rejection carries the measured distance for the scanner UI.
	var geofenceErr *attendance.OutsideGeofenceError
	if errors.As(err, &geofenceErr) {
		Forbidden(w, geofenceErr.Error())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid username or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrAccountNotLinked):
		Forbidden(w, "No employee account is linked to this identity")
	case errors.Is(err, auth.ErrAdminRequired), errors.Is(err, auth.ErrPermissionDenied):
		Forbidden(w, "Insufficient permissions")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrInvalidToken):
		BadRequest(w, "Invalid QR code", nil)
	case errors.Is(err, attendance.ErrExpiredToken):
		BadRequest(w, "QR code has expired, scan the current one", nil)
	case errors.Is(err, attendance.ErrLocationRequired):
		BadRequest(w, "Location is required to check in", nil)
	case errors.Is(err, attendance.ErrOutsideGeofence):
		Forbidden(w, "Outside the allowed check-in area")
	case errors.Is(err, attendance.ErrAlreadyRegistered):
		Conflict(w, "Attendance already registered, try again later to check out")
	case errors.Is(err, attendance.ErrDayAlreadyComplete):
		Conflict(w, "Attendance for today is already complete")
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrConcurrentWriteConflict):
		ServiceUnavailable(w, "Scan collided with another update, please retry")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrUsernameExists):
		Conflict(w, "Username already taken")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Policy domain errors
	case errors.Is(err, policy.ErrPolicyMissing):
		InternalServerError(w, "Attendance policy is not configured")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrAlreadyDisbursed):
		Conflict(w, "Payroll for this period has already been disbursed")
	case errors.Is(err, payroll.ErrHistoryNotFound):
		NotFound(w, "Payroll history entry not found")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
