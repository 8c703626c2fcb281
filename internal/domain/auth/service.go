package auth

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mhammadjaber00/almasasuite/internal/core/apperror"
	"github.com/mhammadjaber00/almasasuite/internal/core/id"
	"github.com/mhammadjaber00/almasasuite/internal/core/tx"
	"github.com/mhammadjaber00/almasasuite/pkg/logger"
)

const (
	maxFailedAttempts = 5
	lockDuration      = 15 * time.Minute
	minPinLength      = 4
)

// Service provides login and staff management.
type Service struct {
	repo       Repository
	jwtService *JWTService
	txManager  tx.Manager
}

// NewService creates a new auth service.
func NewService(repo Repository, jwtService *JWTService, txManager tx.Manager) *Service {
	return &Service{
		repo:       repo,
		jwtService: jwtService,
		txManager:  txManager,
	}
}

// Login verifies credentials and issues an access token.
// Failed attempts count toward a temporary lockout.
func (s *Service) Login(ctx context.Context, creds Credentials) (*Token, *User, error) {
	username := strings.TrimSpace(creds.Username)
	if username == "" || creds.Pin == "" {
		return nil, nil, apperror.NewValidation("username and pin are required")
	}

	var token *Token
	var user *User

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		u, err := s.repo.GetByUsername(ctx, username)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewUnauthorized("invalid credentials")
			}
			return err
		}

		if err := u.CanLogin(); err != nil {
			return err
		}

		if bcrypt.CompareHashAndPassword([]byte(u.PinHash), []byte(creds.Pin)) != nil {
			u.RecordFailedLogin(maxFailedAttempts, lockDuration)
			if updErr := s.repo.Update(ctx, u); updErr != nil {
				return updErr
			}
			logger.Warn(ctx, "failed login attempt",
				"username", username,
				"attempts", u.FailedLoginAttempts,
			)
			return apperror.NewUnauthorized("invalid credentials")
		}

		u.RecordSuccessfulLogin()
		if err := s.repo.Update(ctx, u); err != nil {
			return err
		}

		accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(u.ID.String(), u.Name, u.Role)
		if err != nil {
			return err
		}

		token = &Token{
			AccessToken: accessToken,
			ExpiresAt:   expiresAt,
			TokenType:   "Bearer",
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	logger.Info(ctx, "user logged in", "user_id", user.ID.String(), "role", user.Role)
	return token, user, nil
}

// CreateUser registers a new staff member with a bcrypt-hashed PIN.
func (s *Service) CreateUser(ctx context.Context, username, name, role, pin string) (*User, error) {
	if len(pin) < minPinLength {
		return nil, apperror.NewValidation("pin is too short").
			WithDetail("field", "pin").
			WithDetail("min_length", minPinLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	u := NewUser(strings.TrimSpace(username), strings.TrimSpace(name), role, string(hash))
	if err := u.Validate(ctx); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.repo.GetByUsername(ctx, u.Username)
		if err != nil && !apperror.IsNotFound(err) {
			return err
		}
		if existing != nil {
			return apperror.NewDuplicate("user", "username", u.Username)
		}
		return s.repo.Create(ctx, u)
	})
	if err != nil {
		return nil, err
	}

	return u, nil
}

// ChangePin updates a user's PIN after verifying the current one.
func (s *Service) ChangePin(ctx context.Context, userID id.ID, currentPin, newPin string) error {
	if len(newPin) < minPinLength {
		return apperror.NewValidation("pin is too short").
			WithDetail("field", "pin").
			WithDetail("min_length", minPinLength)
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		u, err := s.repo.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		if bcrypt.CompareHashAndPassword([]byte(u.PinHash), []byte(currentPin)) != nil {
			return apperror.NewUnauthorized("current pin is incorrect")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(newPin), bcrypt.DefaultCost)
		if err != nil {
			return apperror.NewInternal(err)
		}

		u.PinHash = string(hash)
		u.UpdatedAt = time.Now().UTC()
		return s.repo.Update(ctx, u)
	})
}

// ListUsers returns staff members.
func (s *Service) ListUsers(ctx context.Context, activeOnly bool) ([]*User, error) {
	return s.repo.List(ctx, activeOnly)
}

// DeactivateUser disables a staff account.
func (s *Service) DeactivateUser(ctx context.Context, userID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		u, err := s.repo.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if !u.IsActive {
			return nil
		}
		u.IsActive = false
		u.UpdatedAt = time.Now().UTC()
		return s.repo.Update(ctx, u)
	})
}
