package policy

import "errors"

var (
	// ErrPolicyMissing is a hard failure requiring operator intervention;
	// scans and payroll runs cannot proceed without a policy.
	ErrPolicyMissing = errors.New("attendance policy is not configured")
)
