package auth

import (
	"testing"
	"time"

	"github.com/mhammadjaber00/almasasuite/internal/core/appctx"
)

func testJWTService() *JWTService {
	return NewJWTService(JWTConfig{
		Secret:         "test-secret",
		Issuer:         "almasasuite-test",
		AccessTokenTTL: time.Hour,
	})
}

func TestTokenRoundTrip(t *testing.T) {
	svc := testJWTService()

	tokenString, expiresAt, err := svc.GenerateAccessToken("user-1", "Layla", appctx.RoleManager)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if time.Until(expiresAt) > time.Hour || time.Until(expiresAt) < 55*time.Minute {
		t.Errorf("expiry %s not within the configured TTL", expiresAt)
	}

	user, err := svc.ValidateToken(tokenString)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.UserID != "user-1" {
		t.Errorf("user id = %s, want user-1", user.UserID)
	}
	if user.Name != "Layla" {
		t.Errorf("name = %s, want Layla", user.Name)
	}
	if user.Role != appctx.RoleManager {
		t.Errorf("role = %s, want %s", user.Role, appctx.RoleManager)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	tokenString, _, err := testJWTService().GenerateAccessToken("user-1", "Layla", appctx.RoleCashier)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	other := NewJWTService(JWTConfig{
		Secret:         "different-secret",
		Issuer:         "almasasuite-test",
		AccessTokenTTL: time.Hour,
	})
	if _, err := other.ValidateToken(tokenString); err == nil {
		t.Error("token signed with another secret must be rejected")
	}
}

func TestValidateToken_Expired(t *testing.T) {
	svc := NewJWTService(JWTConfig{
		Secret:         "test-secret",
		Issuer:         "almasasuite-test",
		AccessTokenTTL: -time.Minute,
	})

	tokenString, _, err := svc.GenerateAccessToken("user-1", "Layla", appctx.RoleCashier)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.ValidateToken(tokenString); err == nil {
		t.Error("expired token must be rejected")
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	if _, err := testJWTService().ValidateToken("not.a.token"); err == nil {
		t.Error("malformed token must be rejected")
	}
}
