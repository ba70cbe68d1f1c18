package policy

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadirhq/hadir-backend-go/internal/domain/policy"
	"github.com/hadirhq/hadir-backend-go/internal/pkg/validator"
)

type fakePolicyRepo struct {
	stored  *policy.AttendancePolicy
	upserts int
}

func (r *fakePolicyRepo) Get(ctx context.Context) (policy.AttendancePolicy, error) {
	if r.stored == nil {
		return policy.AttendancePolicy{}, policy.ErrPolicyMissing
	}
	return *r.stored, nil
}

func (r *fakePolicyRepo) Upsert(ctx context.Context, p policy.AttendancePolicy) (policy.AttendancePolicy, error) {
	r.stored = &p
	r.upserts++
	return p, nil
}

func validUpdateRequest() policy.UpdatePolicyRequest {
	return policy.UpdatePolicyRequest{
		CompanyStartTime:   "08:30",
		CompanyEndTime:     "16:30",
		GracePeriodMinutes: 5,
		GracePeriodScope:   "monthly",
		DeductionRules: []policy.DeductionRuleInput{
			{ThresholdMinutes: 20, Unit: "minutes", Value: decimal.NewFromInt(20), Scope: "daily"},
		},
		GeofenceEnabled:     false,
		SiteLatitude:        30.0444,
		SiteLongitude:       31.2357,
		AllowedRadiusMeters: 150,
		QRLifespanSeconds:   20,
	}
}

func TestUpdatePolicy(t *testing.T) {
	repo := &fakePolicyRepo{}
	svc := NewPolicyService(repo)

	resp, err := svc.Update(context.Background(), validUpdateRequest())
	require.NoError(t, err)

	assert.Equal(t, "08:30", resp.CompanyStartTime)
	assert.Equal(t, "monthly", resp.GracePeriodScope)
	assert.Len(t, resp.DeductionRules, 1)
	require.NotNil(t, repo.stored)
	assert.Equal(t, 20, repo.stored.QRLifespanSeconds)
}

func TestUpdatePolicyRejectsBadInput(t *testing.T) {
	repo := &fakePolicyRepo{}
	svc := NewPolicyService(repo)

	req := validUpdateRequest()
	req.CompanyStartTime = "9am"
	req.GracePeriodScope = "weekly"
	req.DeductionRules[0].Value = decimal.NewFromInt(-5)

	_, err := svc.Update(context.Background(), req)
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	assert.Contains(t, fields, "company_start_time")
	assert.Contains(t, fields, "grace_period_scope")
	assert.Contains(t, fields, "deduction_rules[0].value")

	// Nothing reaches the store on validation failure.
	assert.Zero(t, repo.upserts)
}

func TestUpdatePolicyRejectsInvertedSchedule(t *testing.T) {
	repo := &fakePolicyRepo{}
	svc := NewPolicyService(repo)

	req := validUpdateRequest()
	req.CompanyStartTime = "17:00"
	req.CompanyEndTime = "09:00"

	_, err := svc.Update(context.Background(), req)
	assert.Error(t, err)
	assert.Zero(t, repo.upserts)
}

func TestEnsureDefaultSeedsOnce(t *testing.T) {
	repo := &fakePolicyRepo{}
	svc := NewPolicyService(repo)

	require.NoError(t, svc.EnsureDefault(context.Background()))
	require.NotNil(t, repo.stored)
	assert.Equal(t, "09:00", repo.stored.CompanyStartTime)
	assert.Equal(t, "Africa/Cairo", repo.stored.Timezone)
	assert.Equal(t, 1, repo.upserts)

	// A second call sees the existing row and leaves it alone.
	require.NoError(t, svc.EnsureDefault(context.Background()))
	assert.Equal(t, 1, repo.upserts)
}

func TestGetMissingPolicy(t *testing.T) {
	svc := NewPolicyService(&fakePolicyRepo{})

	_, err := svc.Get(context.Background())
	assert.ErrorIs(t, err, policy.ErrPolicyMissing)
}
