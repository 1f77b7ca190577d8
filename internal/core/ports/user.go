package ports

import (
	"context"

	"taskmanager/internal/core/domain"
)

type UserRepository interface {
	Insert(ctx context.Context, user domain.User) error
	FindByID(ctx context.Context, userID string) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
}

// TokenIssuer creates and checks bearer tokens carrying a user id.
type TokenIssuer interface {
	Issue(userID string) (string, error)
	Verify(token string) (string, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

type AuthService interface {
	Register(ctx context.Context, input domain.RegisterInput) (domain.Session, error)
	Login(ctx context.Context, input domain.LoginInput) (domain.Session, error)
	Authenticate(ctx context.Context, token string) (domain.User, error)
}
