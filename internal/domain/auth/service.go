package auth

import (
	"context"
	"net/http"
)

// AuthService verifies credentials and issues tokens.
type AuthService interface {
	// Login returns the access token payload and the refresh token cookie.
	Login(ctx context.Context, req LoginRequest) (LoginResponse, *http.Cookie, error)

	// Refresh issues a new access token for a validated refresh subject.
	Refresh(ctx context.Context, userID string) (LoginResponse, error)
}
