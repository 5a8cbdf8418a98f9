// Package auth implements credential verification and token issuance.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/nimbus-hr/hrms-backend-go/internal/domain/auth"
	"github.com/nimbus-hr/hrms-backend-go/internal/domain/user"
	"github.com/nimbus-hr/hrms-backend-go/internal/pkg/jwt"
)

type AuthServiceImpl struct {
	userRepo   user.UserRepository
	jwtService jwt.Service
}

func NewAuthService(userRepo user.UserRepository, jwtService jwt.Service) *AuthServiceImpl {
	return &AuthServiceImpl{userRepo: userRepo, jwtService: jwtService}
}

// Login verifies credentials and issues a token pair. The refresh token is
// returned as a cookie; a wrong password and an unknown email produce the same
// error.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, *http.Cookie, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, nil, err
	}

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, nil, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, nil, auth.ErrInvalidCredentials
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return auth.LoginResponse{}, nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, refreshExpiresAt, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.LoginResponse{}, nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return auth.LoginResponse{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
		UserID:      u.ID,
		Name:        u.Name,
		Role:        string(u.Role),
	}, s.jwtService.RefreshTokenCookie(refreshToken, refreshExpiresAt), nil
}

// Refresh issues a fresh access token for an already-validated refresh token
// subject.
func (s *AuthServiceImpl) Refresh(ctx context.Context, userID string) (auth.LoginResponse, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidToken
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to look up user: %w", err)
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.LoginResponse{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
		UserID:      u.ID,
		Name:        u.Name,
		Role:        string(u.Role),
	}, nil
}
