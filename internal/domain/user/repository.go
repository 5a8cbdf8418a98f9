package user

import "context"

// UserRepository defines data access for the user directory.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (User, error)

	GetByEmail(ctx context.Context, email string) (User, error)

	// GetByBiometricID maps a device-reported identity to a user. Returns
	// ErrUserNotFound when no account carries that biometric id; the sync
	// job skips such events.
	GetByBiometricID(ctx context.Context, biometricID string) (User, error)
}
