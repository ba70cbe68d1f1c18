package attendance

import (
	"github.com/hadirhq/hadir-backend-go/internal/pkg/validator"
)

// ScanRequest is what the check-in device submits: the decoded QR string
// plus an optional geolocation reading. A geolocation timeout on the
// device surfaces here as absent coordinates, never as a hang.
type ScanRequest struct {
	Token     string   `json:"token"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

func (r ScanRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Token) {
		errs = append(errs, validator.ValidationError{Field: "token", Message: "token is required"})
	}
	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "latitude and longitude must be provided together"})
	}
	if r.Latitude != nil && !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "must be between -90 and 90"})
	}
	if r.Longitude != nil && !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{Field: "longitude", Message: "must be between -180 and 180"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ScanEvent says which transition a successful scan performed.
type ScanEvent string

const (
	ScanEventCheckedIn  ScanEvent = "checked_in"
	ScanEventCheckedOut ScanEvent = "checked_out"
)

type ScanResponse struct {
	Event        ScanEvent          `json:"event"`
	RecordedAt   string             `json:"recorded_at"`
	DelayMinutes int                `json:"delay_minutes"`
	Record       AttendanceResponse `json:"record"`
}

type UpdateAttendanceRequest struct {
	ID           string   `json:"-"`
	CheckInTime  *string  `json:"check_in_time,omitempty"`  // RFC3339
	CheckOutTime *string  `json:"check_out_time,omitempty"` // RFC3339
	Status       *string  `json:"status,omitempty"`
	DelayMinutes *int     `json:"delay_minutes,omitempty"`
}

func (r UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Status != nil {
		s := Status(*r.Status)
		if s != StatusPresent && s != StatusAbsent && s != StatusOnLeave {
			errs = append(errs, validator.ValidationError{Field: "status", Message: "must be 'present', 'absent' or 'on_leave'"})
		}
	}
	if r.DelayMinutes != nil && *r.DelayMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "delay_minutes", Message: "must be zero or positive"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceFilter struct {
	EmployeeID *string
	Date       *string
	StartDate  *string
	EndDate    *string
	Status     *string
	Page       int
	Limit      int
}

type AttendanceResponse struct {
	ID                string   `json:"id"`
	EmployeeID        string   `json:"employee_id"`
	EmployeeName      string   `json:"employee_name,omitempty"`
	Date              string   `json:"date"`
	CheckInTime       *string  `json:"check_in_time,omitempty"`
	CheckOutTime      *string  `json:"check_out_time,omitempty"`
	Status            string   `json:"status"`
	DelayMinutes      int      `json:"delay_minutes"`
	CheckInLatitude   *float64 `json:"check_in_latitude,omitempty"`
	CheckInLongitude  *float64 `json:"check_in_longitude,omitempty"`
	CheckOutLatitude  *float64 `json:"check_out_latitude,omitempty"`
	CheckOutLongitude *float64 `json:"check_out_longitude,omitempty"`
}

type ListAttendanceResponse struct {
	TotalCount        int64                `json:"total_count"`
	Page              int                  `json:"page"`
	Limit             int                  `json:"limit"`
	TotalPages        int                  `json:"total_pages"`
	TotalDelayMinutes int                  `json:"total_delay_minutes"`
	Attendances       []AttendanceResponse `json:"attendances"`
}

// QRTokenResponse feeds the kiosk screen that renders the rotating code.
type QRTokenResponse struct {
	Token           string `json:"token"`
	LifespanSeconds int    `json:"lifespan_seconds"`
	IssuedAt        string `json:"issued_at"`
}
