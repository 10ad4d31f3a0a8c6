package service

import (
	"context"
	"errors"
	"time"

	"bloghub/internal/apperror"
	"bloghub/internal/middleware/auth"
	"bloghub/internal/microservices/http-api/models"
	"bloghub/internal/microservices/http-api/repository"
)

const (
	MsgInvalidCredentials = "invalid credentials"
	MsgUsernameTaken      = "username already exists"
	MsgInvalidToken       = "invalid or expired token"
)

// AuthResult is a user together with a freshly issued token.
type AuthResult struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

type AuthService interface {
	Register(ctx context.Context, username, password string) (*AuthResult, error)
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	// Authenticate verifies a bearer token and loads its principal.
	Authenticate(ctx context.Context, token string) (*models.User, error)
	TokenTTL() time.Duration
}

type authService struct {
	userRepo repository.UserRepository
	tokens   TokenService
	now      func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, tokens TokenService) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		now:      time.Now,
	}
}

func (s *authService) TokenTTL() time.Duration {
	return s.tokens.TTL()
}

// Register creates a user with a bcrypt hash and signs them in.
func (s *authService) Register(ctx context.Context, username, password string) (*AuthResult, error) {
	if len(password) > auth.MaxPasswordBytes {
		return nil, apperror.NewValidation("invalid request", map[string]string{
			"password": "must be at most 72 bytes",
		})
	}

	// Check if user exists
	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, apperror.NewConflict(MsgUsernameTaken, nil)
	} else if !repository.IsNotFound(err) {
		return nil, apperror.NewInternal("failed to look up user", err)
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return nil, apperror.NewInternal("failed to hash password", err)
	}

	user := &models.User{
		Username:  username,
		Password:  hashedPassword,
		CreatedAt: s.now().UTC(),
	}

	// the unique index settles concurrent registrations of the same name
	if err := s.userRepo.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperror.NewConflict(MsgUsernameTaken, err)
		}
		return nil, apperror.NewInternal("failed to create user", err)
	}

	return s.issue(user)
}

// Login checks the password. Unknown usernames and wrong passwords are
// indistinguishable to the caller, in message and in timing.
func (s *authService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if !repository.IsNotFound(err) {
			return nil, apperror.NewInternal("failed to look up user", err)
		}
		auth.BurnCompare(password)
		return nil, apperror.NewUnauthorized(MsgInvalidCredentials, nil)
	}

	if !auth.VerifyPassword(user.Password, password) {
		return nil, apperror.NewUnauthorized(MsgInvalidCredentials, nil)
	}

	return s.issue(user)
}

func (s *authService) issue(user *models.User) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// Authenticate returns Unauthorized for any token problem and for a principal
// that no longer exists. Store failures stay Internal.
func (s *authService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, apperror.NewUnauthorized(MsgInvalidToken, err)
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.NewUnauthorized(MsgInvalidToken, errors.New("token subject no longer exists"))
		}
		return nil, apperror.NewInternal("failed to load token subject", err)
	}
	return user, nil
}
