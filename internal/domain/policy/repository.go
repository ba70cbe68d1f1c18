package policy

import "context"

// PolicyRepository owns the single AttendancePolicy row.
type PolicyRepository interface {
	// Get returns the current policy or ErrPolicyMissing.
	Get(ctx context.Context) (AttendancePolicy, error)

	// Upsert replaces the singleton policy.
	Upsert(ctx context.Context, p AttendancePolicy) (AttendancePolicy, error)
}
