package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hadirhq/hadir-backend-go/internal/domain/auth"
	"github.com/hadirhq/hadir-backend-go/internal/domain/employee"
	"github.com/hadirhq/hadir-backend-go/internal/pkg/jwt"
)

type fakeEmployeeRepo struct {
	byUsername map[string]employee.Employee
	byEmail    map[string]employee.Employee
	byID       map[string]employee.Employee
}

func newFakeEmployeeRepo(emps ...employee.Employee) *fakeEmployeeRepo {
	r := &fakeEmployeeRepo{
		byUsername: map[string]employee.Employee{},
		byEmail:    map[string]employee.Employee{},
		byID:       map[string]employee.Employee{},
	}
	for _, e := range emps {
		r.byUsername[e.Username] = e
		r.byID[e.ID] = e
		if e.Email != nil {
			r.byEmail[*e.Email] = e
		}
	}
	return r
}

func (r *fakeEmployeeRepo) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	return emp, nil
}

func (r *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := r.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *fakeEmployeeRepo) GetByUsername(ctx context.Context, username string) (employee.Employee, error) {
	emp, ok := r.byUsername[username]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *fakeEmployeeRepo) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	emp, ok := r.byEmail[email]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *fakeEmployeeRepo) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

func (r *fakeEmployeeRepo) GetActive(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (r *fakeEmployeeRepo) Update(ctx context.Context, emp employee.Employee) error { return nil }

func (r *fakeEmployeeRepo) Deactivate(ctx context.Context, id string) error { return nil }

type fakeJWTRepo struct {
	stored  map[string]string
	revoked map[string]bool
}

func newFakeJWTRepo() *fakeJWTRepo {
	return &fakeJWTRepo{stored: map[string]string{}, revoked: map[string]bool{}}
}

func (r *fakeJWTRepo) CreateRefreshToken(ctx context.Context, employeeID, token string, expiresAt int64) error {
	r.stored[token] = employeeID
	return nil
}

func (r *fakeJWTRepo) IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error) {
	return r.revoked[token], nil
}

func (r *fakeJWTRepo) RevokeRefreshToken(ctx context.Context, token string) error {
	r.revoked[token] = true
	return nil
}

func hashOf(t *testing.T, password string) *string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	s := string(hash)
	return &s
}

func testEmployee(t *testing.T) employee.Employee {
	t.Helper()
	email := "sara@example.com"
	return employee.Employee{
		ID:           "emp-1",
		Name:         "Sara Adel",
		Username:     "sara.adel",
		Email:        &email,
		PasswordHash: hashOf(t, "correct-horse"),
		Role:         auth.RoleEmployee,
		IsActive:     true,
	}
}

func newTestService(t *testing.T, emps ...employee.Employee) (auth.AuthService, *fakeJWTRepo) {
	t.Helper()
	jwtRepo := newFakeJWTRepo()
	jwtService := jwt.NewJWTService("test-secret-key", "15m", "168h")
	return NewAuthService(newFakeEmployeeRepo(emps...), jwtRepo, jwtService), jwtRepo
}

func TestLogin(t *testing.T) {
	svc, jwtRepo := newTestService(t, testEmployee(t))

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		Username: "sara.adel",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "emp-1", resp.EmployeeID)
	assert.Equal(t, "Sara Adel", resp.Name)
	assert.Equal(t, "employee", resp.Role)

	// The refresh token must be persisted so it can be revoked later.
	assert.Equal(t, "emp-1", jwtRepo.stored[resp.RefreshToken])
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t, testEmployee(t))

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Username: "sara.adel",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginUnknownUsername(t *testing.T) {
	svc, _ := newTestService(t, testEmployee(t))

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Username: "nobody",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginDeactivatedAccount(t *testing.T) {
	emp := testEmployee(t)
	emp.IsActive = false
	svc, _ := newTestService(t, emp)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Username: "sara.adel",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginNoPasswordSet(t *testing.T) {
	emp := testEmployee(t)
	emp.PasswordHash = nil
	svc, _ := newTestService(t, emp)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Username: "sara.adel",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginWithGoogle(t *testing.T) {
	svc, _ := newTestService(t, testEmployee(t))

	resp, err := svc.LoginWithGoogle(context.Background(), "sara@example.com")
	require.NoError(t, err)
	assert.Equal(t, "emp-1", resp.EmployeeID)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLoginWithGoogleUnlinkedEmail(t *testing.T) {
	svc, _ := newTestService(t, testEmployee(t))

	_, err := svc.LoginWithGoogle(context.Background(), "stranger@example.com")
	assert.ErrorIs(t, err, auth.ErrAccountNotLinked)
}

func TestRefresh(t *testing.T) {
	svc, _ := newTestService(t, testEmployee(t))

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Username: "sara.adel",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	resp, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestRefreshRevokedToken(t *testing.T) {
	svc, jwtRepo := newTestService(t, testEmployee(t))

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Username: "sara.adel",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	require.NoError(t, jwtRepo.RevokeRefreshToken(context.Background(), login.RefreshToken))

	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestRefreshGarbageToken(t *testing.T) {
	svc, _ := newTestService(t, testEmployee(t))

	_, err := svc.Refresh(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, _ := newTestService(t, testEmployee(t))

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Username: "sara.adel",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	// Access tokens carry type "access" and must not be usable for refresh.
	_, err = svc.Refresh(context.Background(), login.AccessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestLogout(t *testing.T) {
	svc, jwtRepo := newTestService(t, testEmployee(t))

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Username: "sara.adel",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), login.RefreshToken))

	revoked, err := jwtRepo.IsRefreshTokenRevoked(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.True(t, revoked)

	// An empty token is a no-op, not an error.
	assert.NoError(t, svc.Logout(context.Background(), ""))
}
