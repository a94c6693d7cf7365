package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/job-tracker/internal/config"
	"github.com/jonathan/job-tracker/internal/db"
	"github.com/jonathan/job-tracker/internal/types"
)

// UserService handles account registration and login.
type UserService struct {
	db             *db.DB
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a UserService with the given dependencies.
func NewUserService(database *db.DB, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{db: database, passwordConfig: passwordConfig}
}

// Register creates a new account with a hashed password.
func (s *UserService) Register(ctx context.Context, req *types.CreateUserRequest) (*types.User, error) {
	existing, err := s.db.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, &ErrEmailAlreadyExists{Email: req.Email}
	}

	hash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.db.CreateUser(ctx, req.Name, req.Email, hash)
	if err != nil {
		// The existence check above races against concurrent registrations;
		// the unique constraint is the authority.
		if errors.Is(err, db.ErrDuplicateEmail) {
			return nil, &ErrEmailAlreadyExists{Email: req.Email}
		}
		return nil, err
	}

	return toAPIUser(user), nil
}

// Login verifies credentials and returns the account.
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.User, error) {
	user, err := s.db.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	// Verify against a missing user the same way as a bad password, so the
	// response does not reveal whether the email is registered.
	if user == nil || !s.passwordConfig.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}

	return toAPIUser(user), nil
}

func toAPIUser(u *db.User) *types.User {
	return &types.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
