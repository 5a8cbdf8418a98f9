package user

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrHRAccessRequired    = errors.New("hr access required")
	ErrAdminAccessRequired = errors.New("admin access required")
)
