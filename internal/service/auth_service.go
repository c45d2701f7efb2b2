package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/yourorg/shipkeeper/internal/domain"
	"github.com/yourorg/shipkeeper/internal/repository"
	"github.com/yourorg/shipkeeper/internal/security/auth"
)

// AuthService authenticates seeded dashboard accounts and issues session
// tokens. Credentials are compared exactly, case-sensitive, against the
// stored values; accounts are immutable after seeding.
type AuthService struct {
	states *repository.StateRepository
	tokens *auth.TokenManager
	logger *slog.Logger
}

// LoginResult is returned on successful authentication
type LoginResult struct {
	UserID string      `json:"userId"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
	Token  string      `json:"token"`
}

// NewAuthService creates a new authentication service
func NewAuthService(states *repository.StateRepository, tokens *auth.TokenManager, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		states: states,
		tokens: tokens,
		logger: logger,
	}
}

// Login authenticates a user and returns a session token
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, errors.New("email and password are required")
	}

	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		s.logger.Error("failed to generate token",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
		return nil, errors.New("failed to generate token")
	}

	s.logger.Info("user logged in",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)

	return &LoginResult{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		Token:  token,
	}, nil
}

// Authenticate matches email+password exactly against the user collection.
// A failed match returns domain.ErrInvalidCredentials, which is distinct
// from a storage failure.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	state, err := s.states.Load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range state.Users {
		u := &state.Users[i]
		if u.Email == email && u.Password == password {
			return u, nil
		}
	}

	s.logger.Info("authentication failed", slog.String("email", email))
	return nil, domain.ErrInvalidCredentials
}

// GetUser returns a user by id
func (s *AuthService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	state, err := s.states.Load(ctx)
	if err != nil {
		return nil, err
	}
	user := state.UserByID(id)
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

// ListUsers returns every seeded account
func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	state, err := s.states.Load(ctx)
	if err != nil {
		return nil, err
	}
	return state.Users, nil
}
