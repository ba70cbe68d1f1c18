package policy

import (
	"context"
	"errors"
	"time"

	"github.com/hadirhq/hadir-backend-go/internal/domain/policy"
)

type PolicyServiceImpl struct {
	policyRepo policy.PolicyRepository
}

func NewPolicyService(policyRepo policy.PolicyRepository) policy.PolicyService {
	return &PolicyServiceImpl{policyRepo: policyRepo}
}

// Get implements policy.PolicyService.
func (p *PolicyServiceImpl) Get(ctx context.Context) (policy.PolicyResponse, error) {
	pol, err := p.policyRepo.Get(ctx)
	if err != nil {
		return policy.PolicyResponse{}, err
	}
	return mapPolicyToResponse(pol), nil
}

// Update implements policy.PolicyService.
func (p *PolicyServiceImpl) Update(ctx context.Context, req policy.UpdatePolicyRequest) (policy.PolicyResponse, error) {
	if err := req.Validate(); err != nil {
		return policy.PolicyResponse{}, err
	}

	pol := req.ToPolicy()
	if _, err := pol.WorkingMinutesPerDay(); err != nil {
		return policy.PolicyResponse{}, err
	}

	updated, err := p.policyRepo.Upsert(ctx, pol)
	if err != nil {
		return policy.PolicyResponse{}, err
	}

	return mapPolicyToResponse(updated), nil
}

// EnsureDefault implements policy.PolicyService.
func (p *PolicyServiceImpl) EnsureDefault(ctx context.Context) error {
	_, err := p.policyRepo.Get(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, policy.ErrPolicyMissing) {
		return err
	}

	_, err = p.policyRepo.Upsert(ctx, policy.Default())
	return err
}

func mapPolicyToResponse(pol policy.AttendancePolicy) policy.PolicyResponse {
	return policy.PolicyResponse{
		CompanyStartTime:    pol.CompanyStartTime,
		CompanyEndTime:      pol.CompanyEndTime,
		GracePeriodMinutes:  pol.GracePeriodMinutes,
		GracePeriodScope:    string(pol.GracePeriodScope),
		DeductionRules:      pol.DeductionRules,
		GeofenceEnabled:     pol.GeofenceEnabled,
		SiteLatitude:        pol.SiteLatitude,
		SiteLongitude:       pol.SiteLongitude,
		AllowedRadiusMeters: pol.AllowedRadiusMeters,
		QRLifespanSeconds:   pol.QRLifespanSeconds,
		Timezone:            pol.Timezone,
		UpdatedAt:           pol.UpdatedAt.Format(time.RFC3339),
	}
}
