package policy

import "context"

type PolicyService interface {
	Get(ctx context.Context) (PolicyResponse, error)
	Update(ctx context.Context, req UpdatePolicyRequest) (PolicyResponse, error)

	// EnsureDefault seeds the singleton policy on first boot.
	EnsureDefault(ctx context.Context) error
}
