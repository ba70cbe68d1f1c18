package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrUsernameExists   = errors.New("username already taken")
	ErrEmailExists      = errors.New("email already registered")
)
