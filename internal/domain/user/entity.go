package user

import "time"

type Role string

const (
	RoleEmployee Role = "employee"
	RoleHR       Role = "hr"
	RoleAdmin    Role = "admin"
)

// User is a directory entry. BiometricID is the identity the hardware
// terminal reports for this person; it is nullable because not every account
// is enrolled on the device.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Department   *string
	BiometricID  *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleHR, RoleAdmin:
		return true
	}
	return false
}
