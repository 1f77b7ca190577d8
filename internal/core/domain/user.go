package domain

import "time"

const (
	UsernameMinLength = 3
	UsernameMaxLength = 30
	PasswordMinLength = 6
	// bcrypt ignores everything past 72 bytes.
	PasswordMaxBytes = 72
)

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

// Session is the result of a successful register or login.
type Session struct {
	Token string
	User  User
}
