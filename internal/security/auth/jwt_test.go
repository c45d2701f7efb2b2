package auth

import (
	"testing"
	"time"
)

func TestGenerateAndValidateToken(t *testing.T) {
	tm := NewTokenManager("test-secret", "shipkeeper", time.Hour)

	token, err := tm.GenerateToken("1", "admin@entnt.in", "Admin")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a token")
	}

	claims, err := tm.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.UserID != "1" || claims.Email != "admin@entnt.in" || claims.Role != "Admin" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.Issuer != "shipkeeper" {
		t.Errorf("issuer = %q", claims.Issuer)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager("secret-a", "shipkeeper", time.Hour)
	other := NewTokenManager("secret-b", "shipkeeper", time.Hour)

	token, err := tm.GenerateToken("1", "admin@entnt.in", "Admin")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := other.ValidateToken(token); err == nil {
		t.Fatalf("expected validation to fail with the wrong secret")
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	tm := &TokenManager{secret: "test-secret", issuer: "shipkeeper", expiresIn: -time.Minute}

	token, err := tm.GenerateToken("1", "admin@entnt.in", "Admin")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := tm.ValidateToken(token); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestGenerateRequiresUserID(t *testing.T) {
	tm := NewTokenManager("test-secret", "", 0)
	if _, err := tm.GenerateToken("", "admin@entnt.in", "Admin"); err == nil {
		t.Fatalf("expected error for empty user id")
	}
}

func TestExtractToken(t *testing.T) {
	token, err := ExtractToken("Bearer abc.def.ghi")
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if token != "abc.def.ghi" {
		t.Fatalf("token = %q", token)
	}

	for _, header := range []string{"", "abc.def.ghi", "Basic abc", "Bearer a b"} {
		if _, err := ExtractToken(header); err == nil {
			t.Errorf("expected %q to be rejected", header)
		}
	}
}
