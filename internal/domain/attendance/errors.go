package attendance

import (
	"errors"
	"fmt"
)

// Scan rejection and conflict errors. Every scan-time failure is
// recovered into a user-facing rejection; none of them mutates state.
var (
	ErrInvalidToken            = errors.New("qr token is invalid")
	ErrExpiredToken            = errors.New("qr token has expired, scan again")
	ErrLocationRequired        = errors.New("a device location is required to check in")
	ErrOutsideGeofence         = errors.New("you are outside the allowed check-in radius")
	ErrAlreadyRegistered       = errors.New("attendance already registered a short while ago")
	ErrDayAlreadyComplete      = errors.New("check-in and check-out are already recorded for today")
	ErrRecordNotFound          = errors.New("attendance record not found")
	ErrConcurrentWriteConflict = errors.New("attendance record was modified concurrently")
)

// OutsideGeofenceError carries the computed distance so the rejection
// message can tell the employee how far away they are.
type OutsideGeofenceError struct {
	DistanceMeters float64
	AllowedMeters  float64
}

func (e *OutsideGeofenceError) Error() string {
	return fmt.Sprintf("you are %.0f m from the site; check-in is allowed within %.0f m", e.DistanceMeters, e.AllowedMeters)
}

func (e *OutsideGeofenceError) Is(target error) bool {
	return target == ErrOutsideGeofence
}
