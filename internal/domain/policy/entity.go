package policy

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Smallest values the settings screen accepts. Anything below these makes
// check-ins physically impossible to pass.
const (
	MinAllowedRadiusMeters = 5
	MinQRLifespanSeconds   = 5
)

type GraceScope string

const (
	GraceScopeDaily   GraceScope = "daily"
	GraceScopeMonthly GraceScope = "monthly"
)

type DeductionUnit string

const (
	DeductionUnitMinutes DeductionUnit = "minutes"
	DeductionUnitHours   DeductionUnit = "hours"
	DeductionUnitAmount  DeductionUnit = "amount"
)

type RuleScope string

const (
	RuleScopeDaily   RuleScope = "daily"
	RuleScopeMonthly RuleScope = "monthly"
)

// DeductionRule maps a lateness threshold to a penalty. Rules are kept in
// configured order; selection picks the greatest threshold not exceeding
// the effective delay, and on equal thresholds the later rule wins.
type DeductionRule struct {
	ThresholdMinutes int             `json:"threshold_minutes"`
	Unit             DeductionUnit   `json:"unit"`
	Value            decimal.Decimal `json:"value"`
	Scope            RuleScope       `json:"scope"`
}

// AttendancePolicy is the company-wide singleton read by every scan and
// payroll evaluation. Callers receive a value copy and must treat it as an
// immutable snapshot for the duration of one evaluation.
type AttendancePolicy struct {
	ID                  string
	CompanyStartTime    string // "HH:MM" local wall clock
	CompanyEndTime      string // "HH:MM" local wall clock
	GracePeriodMinutes  int
	GracePeriodScope    GraceScope
	DeductionRules      []DeductionRule
	GeofenceEnabled     bool
	SiteLatitude        float64
	SiteLongitude       float64
	AllowedRadiusMeters float64
	QRLifespanSeconds   int
	Timezone            string
	UpdatedAt           time.Time
}

// QRLifespan returns the token freshness window as a duration.
func (p AttendancePolicy) QRLifespan() time.Duration {
	return time.Duration(p.QRLifespanSeconds) * time.Second
}

// ScheduledStart anchors the company start time onto a calendar day in the
// policy timezone.
func (p AttendancePolicy) ScheduledStart(day time.Time, loc *time.Location) (time.Time, error) {
	return anchorWallClock(p.CompanyStartTime, day, loc)
}

// ScheduledEnd anchors the company end time onto a calendar day in the
// policy timezone.
func (p AttendancePolicy) ScheduledEnd(day time.Time, loc *time.Location) (time.Time, error) {
	return anchorWallClock(p.CompanyEndTime, day, loc)
}

// WorkingMinutesPerDay is the span between scheduled start and end, used
// to pro-rate minutes/hours deduction units into money.
func (p AttendancePolicy) WorkingMinutesPerDay() (int, error) {
	loc := time.UTC
	day := time.Date(2000, 1, 1, 0, 0, 0, 0, loc)
	start, err := p.ScheduledStart(day, loc)
	if err != nil {
		return 0, err
	}
	end, err := p.ScheduledEnd(day, loc)
	if err != nil {
		return 0, err
	}
	mins := int(end.Sub(start).Minutes())
	if mins <= 0 {
		return 0, fmt.Errorf("company end time %q is not after start time %q", p.CompanyEndTime, p.CompanyStartTime)
	}
	return mins, nil
}

// Location resolves the policy timezone, falling back to UTC when the
// name is unknown on this host.
func (p AttendancePolicy) Location() *time.Location {
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func anchorWallClock(wallClock string, day time.Time, loc *time.Location) (time.Time, error) {
	t, err := time.Parse("15:04", wallClock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid wall clock %q: %w", wallClock, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}

// IsWorkingDay reports whether the site operates on the given day. The
// working week runs Sunday through Thursday.
func IsWorkingDay(day time.Time) bool {
	wd := day.Weekday()
	return wd != time.Friday && wd != time.Saturday
}

// Default returns the policy seeded on first boot, matching the settings
// screen defaults.
func Default() AttendancePolicy {
	return AttendancePolicy{
		CompanyStartTime:   "09:00",
		CompanyEndTime:     "17:00",
		GracePeriodMinutes: 10,
		GracePeriodScope:   GraceScopeDaily,
		DeductionRules: []DeductionRule{
			{ThresholdMinutes: 15, Unit: DeductionUnitMinutes, Value: decimal.NewFromInt(30), Scope: RuleScopeDaily},
			{ThresholdMinutes: 30, Unit: DeductionUnitHours, Value: decimal.NewFromInt(1), Scope: RuleScopeDaily},
		},
		GeofenceEnabled:     true,
		SiteLatitude:        30.0444,
		SiteLongitude:       31.2357,
		AllowedRadiusMeters: 200,
		QRLifespanSeconds:   15,
		Timezone:            "Africa/Cairo",
	}
}
