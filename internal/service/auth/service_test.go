package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/nimbus-hr/hrms-backend-go/internal/domain/auth"
	"github.com/nimbus-hr/hrms-backend-go/internal/domain/user"
	"github.com/nimbus-hr/hrms-backend-go/internal/pkg/jwt"
)

type memUserRepo struct {
	users []user.User
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (m *memUserRepo) GetByBiometricID(_ context.Context, id string) (user.User, error) {
	for _, u := range m.users {
		if u.BiometricID != nil && *u.BiometricID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func newTestAuthService(t *testing.T) (*AuthServiceImpl, *memUserRepo) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret!"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &memUserRepo{users: []user.User{{
		ID: "u1", Name: "Asha", Email: "asha@example.com",
		PasswordHash: string(hash), Role: user.RoleEmployee,
	}}}
	jwtService := jwt.NewJWTService("test-secret-key", "15m", "168h")
	return NewAuthService(repo, jwtService), repo
}

func TestLogin_Success(t *testing.T) {
	svc, _ := newTestAuthService(t)

	resp, cookie, err := svc.Login(context.Background(), auth.LoginRequest{
		Email: "asha@example.com", Password: "s3cret!",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "u1", resp.UserID)
	assert.Equal(t, "employee", resp.Role)
	require.NotNil(t, cookie)
	assert.Equal(t, "refresh_token", cookie.Name)
	assert.True(t, cookie.HttpOnly)
}

func TestLogin_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, _, err1 := svc.Login(ctx, auth.LoginRequest{Email: "asha@example.com", Password: "nope"})
	_, _, err2 := svc.Login(ctx, auth.LoginRequest{Email: "ghost@example.com", Password: "nope"})

	assert.ErrorIs(t, err1, auth.ErrInvalidCredentials)
	assert.ErrorIs(t, err2, auth.ErrInvalidCredentials)
}

func TestLogin_MissingCredentials(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, _, err := svc.Login(context.Background(), auth.LoginRequest{Email: "asha@example.com"})
	assert.ErrorIs(t, err, auth.ErrMissingCredentials)
}

func TestRefresh(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	resp, err := svc.Refresh(ctx, "u1")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Asha", resp.Name)

	_, err = svc.Refresh(ctx, "nobody")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
