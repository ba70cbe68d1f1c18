package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrInvalidToken        = errors.New("invalid or malformed token")
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenRevoked = errors.New("refresh token revoked")
	ErrAccountNotLinked    = errors.New("no employee account is linked to this identity")
	ErrAdminRequired       = errors.New("administrator privilege required")
	ErrPermissionDenied    = errors.New("insufficient permissions for this operation")
)
