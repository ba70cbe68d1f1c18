package attendance

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadirhq/hadir-backend-go/internal/domain/attendance"
	"github.com/hadirhq/hadir-backend-go/internal/domain/policy"
	"github.com/hadirhq/hadir-backend-go/internal/pkg/qrtoken"
)

func testPolicy() policy.AttendancePolicy {
	pol := policy.Default()
	pol.Timezone = "UTC"
	return pol
}

func onSiteRequest(token string, pol policy.AttendancePolicy) attendance.ScanRequest {
	lat := pol.SiteLatitude
	lng := pol.SiteLongitude
	return attendance.ScanRequest{Token: token, Latitude: &lat, Longitude: &lng}
}

func TestEvaluateScan_FirstScanChecksIn(t *testing.T) {
	pol := testPolicy()
	now := time.Date(2026, 3, 2, 8, 55, 0, 0, time.UTC)

	decision, err := EvaluateScan(now, pol, nil, onSiteRequest(qrtoken.Encode(now), pol))

	require.NoError(t, err)
	assert.Equal(t, attendance.ScanEventCheckedIn, decision.Event)
	assert.Equal(t, 0, decision.DelayMinutes, "early arrival must not accrue delay")
}

func TestEvaluateScan_LateCheckInRecordsRawDelay(t *testing.T) {
	pol := testPolicy()
	now := time.Date(2026, 3, 2, 9, 25, 0, 0, time.UTC)

	decision, err := EvaluateScan(now, pol, nil, onSiteRequest(qrtoken.Encode(now), pol))

	require.NoError(t, err)
	assert.Equal(t, attendance.ScanEventCheckedIn, decision.Event)
	assert.Equal(t, 25, decision.DelayMinutes, "delay is raw minutes past start, before any grace")
}

func TestEvaluateScan_StaleToken(t *testing.T) {
	pol := testPolicy()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	stale := qrtoken.Encode(now.Add(-time.Duration(pol.QRLifespanSeconds+1) * time.Second))

	_, err := EvaluateScan(now, pol, nil, onSiteRequest(stale, pol))

	assert.ErrorIs(t, err, attendance.ErrExpiredToken)
}

func TestEvaluateScan_MalformedToken(t *testing.T) {
	pol := testPolicy()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	_, err := EvaluateScan(now, pol, nil, onSiteRequest("not-a-token", pol))

	assert.ErrorIs(t, err, attendance.ErrInvalidToken)
}

func TestEvaluateScan_MissingLocationWithGeofence(t *testing.T) {
	pol := testPolicy()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	_, err := EvaluateScan(now, pol, nil, attendance.ScanRequest{Token: qrtoken.Encode(now)})

	assert.ErrorIs(t, err, attendance.ErrLocationRequired)
}

func TestEvaluateScan_OutsideGeofence(t *testing.T) {
	pol := testPolicy()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	// Roughly 2 km north of the site.
	lat := pol.SiteLatitude + 0.018
	lng := pol.SiteLongitude
	req := attendance.ScanRequest{Token: qrtoken.Encode(now), Latitude: &lat, Longitude: &lng}

	_, err := EvaluateScan(now, pol, nil, req)

	require.ErrorIs(t, err, attendance.ErrOutsideGeofence)

	var geofenceErr *attendance.OutsideGeofenceError
	require.True(t, errors.As(err, &geofenceErr))
	assert.Greater(t, geofenceErr.DistanceMeters, pol.AllowedRadiusMeters)
}

func TestEvaluateScan_GeofenceDisabledSkipsLocation(t *testing.T) {
	pol := testPolicy()
	pol.GeofenceEnabled = false
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	decision, err := EvaluateScan(now, pol, nil, attendance.ScanRequest{Token: qrtoken.Encode(now)})

	require.NoError(t, err)
	assert.Equal(t, attendance.ScanEventCheckedIn, decision.Event)
}

func TestEvaluateScan_WithinLockoutRejectsDuplicate(t *testing.T) {
	pol := testPolicy()
	checkIn := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	now := checkIn.Add(30 * time.Minute)
	existing := &attendance.AttendanceRecord{
		ID:          "rec-1",
		CheckInTime: &checkIn,
		Status:      attendance.StatusPresent,
	}

	_, err := EvaluateScan(now, pol, existing, onSiteRequest(qrtoken.Encode(now), pol))

	assert.ErrorIs(t, err, attendance.ErrAlreadyRegistered)
}

func TestEvaluateScan_LockoutBoundary(t *testing.T) {
	pol := testPolicy()
	checkIn := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	existing := &attendance.AttendanceRecord{
		ID:          "rec-1",
		CheckInTime: &checkIn,
		Status:      attendance.StatusPresent,
	}

	// One second short of the window is still a duplicate.
	_, err := EvaluateScan(checkIn.Add(LockoutWindow-time.Second), pol, existing, onSiteRequest(qrtoken.Encode(checkIn.Add(LockoutWindow-time.Second)), pol))
	assert.ErrorIs(t, err, attendance.ErrAlreadyRegistered)

	// Exactly at the window the scan becomes a check-out.
	decision, err := EvaluateScan(checkIn.Add(LockoutWindow), pol, existing, onSiteRequest(qrtoken.Encode(checkIn.Add(LockoutWindow)), pol))
	require.NoError(t, err)
	assert.Equal(t, attendance.ScanEventCheckedOut, decision.Event)
}

func TestEvaluateScan_CompletedDayRejectsFurtherScans(t *testing.T) {
	pol := testPolicy()
	checkIn := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	checkOut := checkIn.Add(8 * time.Hour)
	now := checkOut.Add(time.Minute)
	existing := &attendance.AttendanceRecord{
		ID:           "rec-1",
		CheckInTime:  &checkIn,
		CheckOutTime: &checkOut,
		Status:       attendance.StatusPresent,
	}

	_, err := EvaluateScan(now, pol, existing, onSiteRequest(qrtoken.Encode(now), pol))

	assert.ErrorIs(t, err, attendance.ErrDayAlreadyComplete)
}

func TestEvaluateScan_AdminMarkedDayRejectsScan(t *testing.T) {
	pol := testPolicy()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	existing := &attendance.AttendanceRecord{
		ID:     "rec-1",
		Status: attendance.StatusOnLeave,
	}

	_, err := EvaluateScan(now, pol, existing, onSiteRequest(qrtoken.Encode(now), pol))

	assert.ErrorIs(t, err, attendance.ErrDayAlreadyComplete)
}
