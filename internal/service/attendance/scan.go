package attendance

import (
	"errors"
	"time"

	"github.com/hadirhq/hadir-backend-go/internal/domain/attendance"
	"github.com/hadirhq/hadir-backend-go/internal/domain/policy"
	"github.com/hadirhq/hadir-backend-go/internal/pkg/geo"
	"github.com/hadirhq/hadir-backend-go/internal/pkg/qrtoken"
)

// LockoutWindow is how long after a check-in further scans are treated as
// duplicates rather than check-outs. It keeps a double tap at the kiosk
// from closing the day one second after opening it.
const LockoutWindow = time.Hour

// Decision is the outcome of evaluating one scan against the day's record.
type Decision struct {
	Event        attendance.ScanEvent
	DelayMinutes int // raw lateness, only meaningful on check-in
}

// EvaluateScan runs the full gate sequence for one scan: token freshness,
// geofence, then the day state machine. It is pure; the caller supplies the
// clock, the policy snapshot and the existing record (nil when the employee
// has no record for the day).
func EvaluateScan(now time.Time, pol policy.AttendancePolicy, existing *attendance.AttendanceRecord, req attendance.ScanRequest) (Decision, error) {
	if _, err := qrtoken.Decode(req.Token, now, pol.QRLifespan()); err != nil {
		switch {
		case errors.Is(err, qrtoken.ErrExpiredToken):
			return Decision{}, attendance.ErrExpiredToken
		default:
			return Decision{}, attendance.ErrInvalidToken
		}
	}

	if pol.GeofenceEnabled {
		if req.Latitude == nil || req.Longitude == nil {
			return Decision{}, attendance.ErrLocationRequired
		}
		result := geo.Validate(
			geo.Coordinate{Latitude: *req.Latitude, Longitude: *req.Longitude},
			geo.Coordinate{Latitude: pol.SiteLatitude, Longitude: pol.SiteLongitude},
			pol.AllowedRadiusMeters,
		)
		if !result.Within {
			return Decision{}, &attendance.OutsideGeofenceError{
				DistanceMeters: result.DistanceMeters,
				AllowedMeters:  pol.AllowedRadiusMeters,
			}
		}
	}

	if existing == nil {
		delay, err := checkInDelay(now, pol)
		if err != nil {
			return Decision{}, err
		}
		return Decision{Event: attendance.ScanEventCheckedIn, DelayMinutes: delay}, nil
	}

	if existing.IsComplete() {
		return Decision{}, attendance.ErrDayAlreadyComplete
	}

	// A record without a check-in was written by an admin or the absence
	// job; the day is no longer the scanner's to drive.
	if existing.CheckInTime == nil {
		return Decision{}, attendance.ErrDayAlreadyComplete
	}

	if now.Sub(*existing.CheckInTime) < LockoutWindow {
		return Decision{}, attendance.ErrAlreadyRegistered
	}

	return Decision{Event: attendance.ScanEventCheckedOut}, nil
}

// checkInDelay measures how many whole minutes the scan lands after the
// scheduled start of the local day. Early arrivals get zero, never credit.
func checkInDelay(now time.Time, pol policy.AttendancePolicy) (int, error) {
	loc := pol.Location()
	local := now.In(loc)
	start, err := pol.ScheduledStart(local, loc)
	if err != nil {
		return 0, err
	}
	delay := int(local.Sub(start).Minutes())
	if delay < 0 {
		delay = 0
	}
	return delay, nil
}
