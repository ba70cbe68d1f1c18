package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hadirhq/hadir-backend-go/internal/domain/policy"
	"github.com/hadirhq/hadir-backend-go/internal/pkg/database"
)

type policyRepository struct {
	db *database.DB
}

// Get implements policy.PolicyRepository.
func (p *policyRepository) Get(ctx context.Context) (policy.AttendancePolicy, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT id, company_start_time, company_end_time,
			   grace_period_minutes, grace_period_scope, deduction_rules,
			   geofence_enabled, site_latitude, site_longitude, allowed_radius_meters,
			   qr_lifespan_seconds, timezone, updated_at
		FROM attendance_policies
		LIMIT 1
	`

	var pol policy.AttendancePolicy
	var rulesJSON []byte

	err := q.QueryRow(ctx, query).Scan(
		&pol.ID, &pol.CompanyStartTime, &pol.CompanyEndTime,
		&pol.GracePeriodMinutes, &pol.GracePeriodScope, &rulesJSON,
		&pol.GeofenceEnabled, &pol.SiteLatitude, &pol.SiteLongitude, &pol.AllowedRadiusMeters,
		&pol.QRLifespanSeconds, &pol.Timezone, &pol.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return policy.AttendancePolicy{}, policy.ErrPolicyMissing
		}
		return policy.AttendancePolicy{}, fmt.Errorf("failed to get attendance policy: %w", err)
	}

	if err := json.Unmarshal(rulesJSON, &pol.DeductionRules); err != nil {
		return policy.AttendancePolicy{}, fmt.Errorf("failed to unmarshal deduction rules: %w", err)
	}

	return pol, nil
}

// Upsert implements policy.PolicyRepository. The table holds a single row
// keyed by a fixed id so concurrent updates settle on last-writer-wins.
func (p *policyRepository) Upsert(ctx context.Context, pol policy.AttendancePolicy) (policy.AttendancePolicy, error) {
	q := GetQuerier(ctx, p.db)

	rulesJSON, err := json.Marshal(pol.DeductionRules)
	if err != nil {
		return policy.AttendancePolicy{}, fmt.Errorf("failed to marshal deduction rules: %w", err)
	}

	query := `
		INSERT INTO attendance_policies (
			id, company_start_time, company_end_time,
			grace_period_minutes, grace_period_scope, deduction_rules,
			geofence_enabled, site_latitude, site_longitude, allowed_radius_meters,
			qr_lifespan_seconds, timezone, updated_at
		) VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		ON CONFLICT (id) DO UPDATE SET
			company_start_time = EXCLUDED.company_start_time,
			company_end_time = EXCLUDED.company_end_time,
			grace_period_minutes = EXCLUDED.grace_period_minutes,
			grace_period_scope = EXCLUDED.grace_period_scope,
			deduction_rules = EXCLUDED.deduction_rules,
			geofence_enabled = EXCLUDED.geofence_enabled,
			site_latitude = EXCLUDED.site_latitude,
			site_longitude = EXCLUDED.site_longitude,
			allowed_radius_meters = EXCLUDED.allowed_radius_meters,
			qr_lifespan_seconds = EXCLUDED.qr_lifespan_seconds,
			timezone = EXCLUDED.timezone,
			updated_at = NOW()
		RETURNING id, updated_at
	`

	err = q.QueryRow(ctx, query,
		pol.CompanyStartTime, pol.CompanyEndTime,
		pol.GracePeriodMinutes, pol.GracePeriodScope, rulesJSON,
		pol.GeofenceEnabled, pol.SiteLatitude, pol.SiteLongitude, pol.AllowedRadiusMeters,
		pol.QRLifespanSeconds, pol.Timezone,
	).Scan(&pol.ID, &pol.UpdatedAt)

	if err != nil {
		return policy.AttendancePolicy{}, fmt.Errorf("failed to upsert attendance policy: %w", err)
	}

	return pol, nil
}

func NewPolicyRepository(db *database.DB) policy.PolicyRepository {
	return &policyRepository{db: db}
}
