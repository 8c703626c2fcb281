package auth

import (
	"context"
	"testing"
	"time"

	"github.com/mhammadjaber00/almasasuite/internal/core/appctx"
)

func TestUserValidate(t *testing.T) {
	ctx := context.Background()

	u := NewUser("layla", "Layla", appctx.RoleCashier, "hash")
	if err := u.Validate(ctx); err != nil {
		t.Errorf("valid user rejected: %v", err)
	}

	u.Role = "owner"
	if err := u.Validate(ctx); err == nil {
		t.Error("unknown role must be rejected")
	}

	u = NewUser("", "Layla", appctx.RoleCashier, "hash")
	if err := u.Validate(ctx); err == nil {
		t.Error("empty username must be rejected")
	}
}

func TestAccountLockout(t *testing.T) {
	u := NewUser("layla", "Layla", appctx.RoleCashier, "hash")

	for i := 0; i < 4; i++ {
		u.RecordFailedLogin(5, 15*time.Minute)
	}
	if u.IsLocked() {
		t.Fatal("account must not lock before the attempt limit")
	}
	if err := u.CanLogin(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	u.RecordFailedLogin(5, 15*time.Minute)
	if !u.IsLocked() {
		t.Fatal("account must lock at the attempt limit")
	}
	if err := u.CanLogin(); err == nil {
		t.Fatal("locked account must not log in")
	}

	u.RecordSuccessfulLogin()
	if u.IsLocked() {
		t.Error("successful login must clear the lock")
	}
	if u.FailedLoginAttempts != 0 {
		t.Errorf("failed attempts = %d, want 0", u.FailedLoginAttempts)
	}
	if u.LastLoginAt == nil {
		t.Error("successful login must stamp LastLoginAt")
	}
}

func TestCanLogin_Inactive(t *testing.T) {
	u := NewUser("layla", "Layla", appctx.RoleCashier, "hash")
	u.IsActive = false

	if err := u.CanLogin(); err == nil {
		t.Error("disabled account must not log in")
	}
}

func TestExpiredLockClears(t *testing.T) {
	u := NewUser("layla", "Layla", appctx.RoleCashier, "hash")
	past := time.Now().Add(-time.Minute)
	u.LockedUntil = &past

	if u.IsLocked() {
		t.Error("an expired lock no longer applies")
	}
	if err := u.CanLogin(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
