package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/ports"
)

type AuthService struct {
	userRepository ports.UserRepository
	hasher         ports.PasswordHasher
	tokens         ports.TokenIssuer
	now            func() time.Time
}

func NewAuthService(userRepository ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenIssuer) *AuthService {
	return &AuthService{
		userRepository: userRepository,
		hasher:         hasher,
		tokens:         tokens,
		now:            storeNow,
	}
}

func (s *AuthService) Register(ctx context.Context, input domain.RegisterInput) (domain.Session, error) {
	input, err := domain.ValidateRegister(input)
	if err != nil {
		return domain.Session{}, err
	}

	exists, err := s.userRepository.ExistsByEmailOrUsername(ctx, input.Email, input.Username)
	if err != nil {
		return domain.Session{}, fmt.Errorf("check user existence: %w", err)
	}
	if exists {
		return domain.Session{}, domain.ErrUserExists
	}

	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return domain.Session{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	user := domain.User{
		ID:           domain.NewID(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// A concurrent registration can still hit the unique indexes; the
	// repository reports that as ErrUserExists.
	if err := s.userRepository.Insert(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return domain.Session{}, err
		}
		return domain.Session{}, fmt.Errorf("create user: %w", err)
	}

	return s.newSession(user)
}

func (s *AuthService) Login(ctx context.Context, input domain.LoginInput) (domain.Session, error) {
	input, err := domain.ValidateLogin(input)
	if err != nil {
		return domain.Session{}, err
	}

	user, err := s.userRepository.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Session{}, domain.ErrInvalidCredentials
		}
		return domain.Session{}, fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Verify(input.Password, user.PasswordHash) {
		return domain.Session{}, domain.ErrInvalidCredentials
	}

	return s.newSession(user)
}

// Authenticate resolves a bearer token to the user it was issued for.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.User, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return domain.User{}, err
	}

	user, err := s.userRepository.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.User{}, domain.ErrInvalidToken
		}
		return domain.User{}, fmt.Errorf("find token user: %w", err)
	}
	return user, nil
}

func (s *AuthService) newSession(user domain.User) (domain.Session, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return domain.Session{}, fmt.Errorf("issue token: %w", err)
	}
	return domain.Session{Token: token, User: user}, nil
}

var _ ports.AuthService = (*AuthService)(nil)
