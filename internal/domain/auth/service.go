package auth

import "context"

// AuthService resolves credentials into a stable employee identity and
// issues tokens. The attendance core never authenticates anything itself;
// it only consumes the employee_id this layer puts in the claims.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	LoginWithGoogle(ctx context.Context, email string) (LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (RefreshResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}
