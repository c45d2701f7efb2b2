package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yourorg/shipkeeper/internal/domain"
	"github.com/yourorg/shipkeeper/internal/security/auth"
)

func TestLogin(t *testing.T) {
	states := newTestStates(t, fleetState())
	tokens := auth.NewTokenManager("test-secret", "shipkeeper", time.Hour)
	s := NewAuthService(states, tokens, nil)
	ctx := context.Background()

	result, err := s.Login(ctx, "admin@entnt.in", "admin123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected a token")
	}
	if result.UserID != "1" || result.Role != domain.RoleAdmin {
		t.Fatalf("unexpected identity: %+v", result)
	}

	claims, err := tokens.ValidateToken(result.Token)
	if err != nil {
		t.Fatalf("token should validate: %v", err)
	}
	if claims.UserID != "1" || claims.Email != "admin@entnt.in" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	states := newTestStates(t, fleetState())
	tokens := auth.NewTokenManager("test-secret", "shipkeeper", time.Hour)
	s := NewAuthService(states, tokens, nil)
	ctx := context.Background()

	// wrong password
	if _, err := s.Login(ctx, "admin@entnt.in", "nope"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	// unknown email
	if _, err := s.Login(ctx, "ghost@entnt.in", "admin123"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	// case-sensitive exact match
	if _, err := s.Login(ctx, "Admin@entnt.in", "admin123"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected match to be exact, got %v", err)
	}
}

func TestGetUser(t *testing.T) {
	states := newTestStates(t, fleetState())
	s := NewAuthService(states, nil, nil)
	ctx := context.Background()

	u, err := s.GetUser(ctx, "3")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if u.Role != domain.RoleEngineer {
		t.Errorf("role = %s, want Engineer", u.Role)
	}

	if _, err := s.GetUser(ctx, "99"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
