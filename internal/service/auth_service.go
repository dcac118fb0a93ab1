package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"shopkart/internal/auth"
	apperrors "shopkart/internal/errors"
	"shopkart/internal/model"
	"shopkart/internal/repository"
)

const bcryptCost = 10

// AuthService handles registration, login and profile operations.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (user *model.User, token string, err error)
	Login(ctx context.Context, email, password string) (user *model.User, token string, err error)
	Profile(ctx context.Context, actorID uuid.UUID) (*model.User, error)
	UpdateProfile(ctx context.Context, actorID uuid.UUID, name, email *string) (*model.User, error)
	Logout(ctx context.Context, tokenID string, remaining time.Duration) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// NormalizeEmail lowercases and trims an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user with a hashed password and issues a session
// token. Every registration gets the "user" role; admins are provisioned out
// of band.
func (s *authService) Register(ctx context.Context, name, email, password string) (*model.User, string, error) {
	email = NormalizeEmail(email)

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, "", apperrors.NewConflictError("email already in use")
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, "", fmt.Errorf("check user existence: %w", err)
	}

	user := &model.User{
		Name:  strings.TrimSpace(name),
		Email: email,
		Role:  model.RoleUser,
	}
	// The minimum length applies to the plaintext, before hashing.
	if len(password) < 6 {
		return nil, "", apperrors.NewValidationError("password must be at least 6 characters")
	}
	if fieldErrs := user.Validate(); len(fieldErrs) > 0 {
		return nil, "", apperrors.NewValidationError(fieldErrs.Messages()...)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hashed)

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	_, token, err := s.jwtService.GenerateSessionToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("generate session token: %w", err)
	}

	return user, token, nil
}

// Login authenticates a user and issues a session token. The failure message
// never says whether the email or the password was wrong.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, "", apperrors.NewAuthError("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperrors.NewAuthError("invalid email or password")
	}

	_, token, err := s.jwtService.GenerateSessionToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("generate session token: %w", err)
	}

	return user, token, nil
}

// Profile returns the actor's user record.
func (s *authService) Profile(ctx context.Context, actorID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// UpdateProfile updates only the supplied fields. Password and role are not
// reachable through this path.
func (s *authService) UpdateProfile(ctx context.Context, actorID uuid.UUID, name, email *string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if email != nil {
		normalized := NormalizeEmail(*email)
		if normalized != user.Email {
			owner, err := s.userRepo.FindByEmail(ctx, normalized)
			if err == nil && owner != nil && owner.ID != user.ID {
				return nil, apperrors.NewConflictError("email already in use")
			}
			if err != nil && err != gorm.ErrRecordNotFound {
				return nil, fmt.Errorf("check email owner: %w", err)
			}
		}
		user.Email = normalized
	}
	if name != nil {
		user.Name = strings.TrimSpace(*name)
	}

	if fieldErrs := user.Validate(); len(fieldErrs) > 0 {
		return nil, apperrors.NewValidationError(fieldErrs.Messages()...)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// Logout revokes the session token until it would have expired anyway.
func (s *authService) Logout(ctx context.Context, tokenID string, remaining time.Duration) error {
	if tokenID == "" || remaining <= 0 {
		return nil
	}
	return s.tokenStore.RevokeToken(ctx, tokenID, remaining)
}
