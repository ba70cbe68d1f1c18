package policy

import (
	"strconv"

	"github.com/hadirhq/hadir-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type DeductionRuleInput struct {
	ThresholdMinutes int             `json:"threshold_minutes"`
	Unit             string          `json:"unit"`
	Value            decimal.Decimal `json:"value"`
	Scope            string          `json:"scope"`
}

type UpdatePolicyRequest struct {
	CompanyStartTime    string               `json:"company_start_time"`
	CompanyEndTime      string               `json:"company_end_time"`
	GracePeriodMinutes  int                  `json:"grace_period_minutes"`
	GracePeriodScope    string               `json:"grace_period_scope"`
	DeductionRules      []DeductionRuleInput `json:"deduction_rules"`
	GeofenceEnabled     bool                 `json:"geofence_enabled"`
	SiteLatitude        float64              `json:"site_latitude"`
	SiteLongitude       float64              `json:"site_longitude"`
	AllowedRadiusMeters float64              `json:"allowed_radius_meters"`
	QRLifespanSeconds   int                  `json:"qr_lifespan_seconds"`
	Timezone            *string              `json:"timezone,omitempty"`
}

func (r UpdatePolicyRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidWallClock(r.CompanyStartTime) {
		errs = append(errs, validator.ValidationError{Field: "company_start_time", Message: "must be HH:MM, e.g. 09:00"})
	}
	if !validator.IsValidWallClock(r.CompanyEndTime) {
		errs = append(errs, validator.ValidationError{Field: "company_end_time", Message: "must be HH:MM, e.g. 17:00"})
	}
	if r.GracePeriodMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "grace_period_minutes", Message: "must be zero or positive"})
	}
	scope := GraceScope(r.GracePeriodScope)
	if scope != GraceScopeDaily && scope != GraceScopeMonthly {
		errs = append(errs, validator.ValidationError{Field: "grace_period_scope", Message: "must be 'daily' or 'monthly'"})
	}
	for i, rule := range r.DeductionRules {
		field := "deduction_rules[" + strconv.Itoa(i) + "]"
		if rule.ThresholdMinutes < 1 {
			errs = append(errs, validator.ValidationError{Field: field + ".threshold_minutes", Message: "must be positive"})
		}
		unit := DeductionUnit(rule.Unit)
		if unit != DeductionUnitMinutes && unit != DeductionUnitHours && unit != DeductionUnitAmount {
			errs = append(errs, validator.ValidationError{Field: field + ".unit", Message: "must be 'minutes', 'hours' or 'amount'"})
		}
		if !rule.Value.IsPositive() {
			errs = append(errs, validator.ValidationError{Field: field + ".value", Message: "must be positive"})
		}
		rs := RuleScope(rule.Scope)
		if rs != RuleScopeDaily && rs != RuleScopeMonthly {
			errs = append(errs, validator.ValidationError{Field: field + ".scope", Message: "must be 'daily' or 'monthly'"})
		}
	}
	if !validator.IsValidLatitude(r.SiteLatitude) {
		errs = append(errs, validator.ValidationError{Field: "site_latitude", Message: "must be between -90 and 90"})
	}
	if !validator.IsValidLongitude(r.SiteLongitude) {
		errs = append(errs, validator.ValidationError{Field: "site_longitude", Message: "must be between -180 and 180"})
	}
	if r.AllowedRadiusMeters < MinAllowedRadiusMeters {
		errs = append(errs, validator.ValidationError{Field: "allowed_radius_meters", Message: "must be at least 5 meters"})
	}
	if r.QRLifespanSeconds < MinQRLifespanSeconds {
		errs = append(errs, validator.ValidationError{Field: "qr_lifespan_seconds", Message: "must be at least 5 seconds"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToPolicy converts a validated request into the entity.
func (r UpdatePolicyRequest) ToPolicy() AttendancePolicy {
	rules := make([]DeductionRule, 0, len(r.DeductionRules))
	for _, rule := range r.DeductionRules {
		rules = append(rules, DeductionRule{
			ThresholdMinutes: rule.ThresholdMinutes,
			Unit:             DeductionUnit(rule.Unit),
			Value:            rule.Value,
			Scope:            RuleScope(rule.Scope),
		})
	}
	p := AttendancePolicy{
		CompanyStartTime:    r.CompanyStartTime,
		CompanyEndTime:      r.CompanyEndTime,
		GracePeriodMinutes:  r.GracePeriodMinutes,
		GracePeriodScope:    GraceScope(r.GracePeriodScope),
		DeductionRules:      rules,
		GeofenceEnabled:     r.GeofenceEnabled,
		SiteLatitude:        r.SiteLatitude,
		SiteLongitude:       r.SiteLongitude,
		AllowedRadiusMeters: r.AllowedRadiusMeters,
		QRLifespanSeconds:   r.QRLifespanSeconds,
		Timezone:            Default().Timezone,
	}
	if r.Timezone != nil && *r.Timezone != "" {
		p.Timezone = *r.Timezone
	}
	return p
}

type PolicyResponse struct {
	CompanyStartTime    string          `json:"company_start_time"`
	CompanyEndTime      string          `json:"company_end_time"`
	GracePeriodMinutes  int             `json:"grace_period_minutes"`
	GracePeriodScope    string          `json:"grace_period_scope"`
	DeductionRules      []DeductionRule `json:"deduction_rules"`
	GeofenceEnabled     bool            `json:"geofence_enabled"`
	SiteLatitude        float64         `json:"site_latitude"`
	SiteLongitude       float64         `json:"site_longitude"`
	AllowedRadiusMeters float64         `json:"allowed_radius_meters"`
	QRLifespanSeconds   int             `json:"qr_lifespan_seconds"`
	Timezone            string          `json:"timezone"`
	UpdatedAt           string          `json:"updated_at"`
}
