// Copyright 2025 Les Gardiens de la Légende
// Licensed under the EUPL-1.2

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"

	"codeberg.org/lesgardiens/boardclub/internal/models"
	"codeberg.org/lesgardiens/boardclub/internal/repository"
	"codeberg.org/lesgardiens/boardclub/internal/services/email"
	"codeberg.org/lesgardiens/boardclub/internal/services/token"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrDuplicatePseudo    = errors.New("pseudo already taken")
	ErrPasswordMismatch   = errors.New("password confirmation does not match")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrInvalidToken       = errors.New("invalid verification token")
)

// dummyHash is used for constant-time login to prevent timing attacks
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password-for-timing"), bcrypt.DefaultCost)

// Mailer queues outbound mail without blocking the caller. Satisfied by
// *email.Queue.
type Mailer interface {
	Enqueue(m email.Message)
}

// Service implements account signup, login, email verification, profile
// updates and logout on top of the repository and the token service.
type Service struct {
	repo            *repository.Repository
	tokens          *token.Service
	mailer          Mailer
	passwords       *PasswordValidator
	baseURL         string
	requireVerified bool
}

func NewService(repo *repository.Repository, tokens *token.Service, mailer Mailer, baseURL string, requireVerified bool) *Service {
	return &Service{
		repo:            repo,
		tokens:          tokens,
		mailer:          mailer,
		passwords:       DefaultPasswordValidator(),
		baseURL:         baseURL,
		requireVerified: requireVerified,
	}
}

// PasswordValidator returns the password validator for use in handlers
func (s *Service) PasswordValidator() *PasswordValidator {
	return s.passwords
}

// SignupParams holds the parameters for account creation.
type SignupParams struct {
	Pseudo          string
	EmailAddress    string
	Password        string
	PasswordConfirm string
	FirstName       string
	LastName        string
	Avatar          *string
}

// Signup creates a new member account and queues the verification mail.
// Checks run in a fixed order so the first failing one determines the
// reported error: email format, email free, pseudo free, password
// confirmation, password strength.
func (s *Service) Signup(ctx context.Context, params SignupParams) (*models.User, error) {
	if _, err := mail.ParseAddress(params.EmailAddress); err != nil {
		return nil, ErrInvalidEmail
	}

	if _, err := s.repo.GetUserByEmail(ctx, params.EmailAddress); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	if _, err := s.repo.GetUserByPseudo(ctx, params.Pseudo); err == nil {
		return nil, ErrDuplicatePseudo
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing pseudo: %w", err)
	}

	if params.Password != params.PasswordConfirm {
		return nil, ErrPasswordMismatch
	}

	if validation := s.passwords.Validate(params.Password); !validation.Valid {
		return nil, &PasswordValidationError{Errors: validation.Errors}
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Pseudo:       params.Pseudo,
		EmailAddress: params.EmailAddress,
		PasswordHash: string(passwordHash),
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Avatar:       params.Avatar,
		Role:         models.RoleMember,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		// The pre-checks race with concurrent signups; the UNIQUE
		// constraints are authoritative.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, s.classifyDuplicate(ctx, params.EmailAddress)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.sendVerification(user)

	slog.Info("signup_success", "user_id", user.ID, "pseudo", user.Pseudo)
	return user, nil
}

// classifyDuplicate decides which UNIQUE constraint fired by re-checking
// the email column.
func (s *Service) classifyDuplicate(ctx context.Context, emailAddress string) error {
	if _, err := s.repo.GetUserByEmail(ctx, emailAddress); err == nil {
		return ErrDuplicateEmail
	}
	return ErrDuplicatePseudo
}

// sendVerification issues a verification token and queues the mail.
// Failures are logged and never surface to the caller; the account is
// created either way.
func (s *Service) sendVerification(user *models.User) {
	tok, err := s.tokens.IssueVerification(user)
	if err != nil {
		slog.Error("verification_token_failed", "user_id", user.ID, "error", err)
		return
	}
	s.mailer.Enqueue(email.Verification(s.baseURL, user.EmailAddress, user.ID, tok))
}

// VerifyEmail marks the account's email as verified after checking the
// verification token against the account. Returns true when the account
// was already verified; the token is not inspected in that case.
func (s *Service) VerifyEmail(ctx context.Context, userID int64, tokenString string) (bool, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, ErrUserNotFound
		}
		return false, fmt.Errorf("failed to get user: %w", err)
	}

	if user.EmailVerified {
		return true, nil
	}

	claims, err := s.tokens.ParseVerification(tokenString, user.Pseudo)
	if err != nil {
		return false, ErrInvalidToken
	}
	if claims.UserID != user.ID {
		return false, ErrInvalidToken
	}

	if err := s.repo.MarkEmailVerified(ctx, user.ID); err != nil {
		return false, fmt.Errorf("failed to mark email verified: %w", err)
	}

	slog.Info("email_verified", "user_id", user.ID, "pseudo", user.Pseudo)
	return false, nil
}

// LoginResult carries the authenticated user and the signed token.
type LoginResult struct {
	User  *models.User
	Token string
}

// Login authenticates a member by pseudo and password and issues a token.
func (s *Service) Login(ctx context.Context, pseudo, password string) (*LoginResult, error) {
	user, err := s.repo.GetUserByPseudo(ctx, pseudo)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Constant-time: always perform bcrypt comparison to prevent timing attacks
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			slog.Warn("login_failed", "pseudo", pseudo, "reason", "user_not_found")
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		slog.Warn("login_failed", "pseudo", pseudo, "reason", "invalid_password")
		return nil, ErrInvalidCredentials
	}

	if s.requireVerified && !user.EmailVerified {
		slog.Warn("login_failed", "pseudo", pseudo, "reason", "email_not_verified")
		return nil, ErrEmailNotVerified
	}

	tok, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	slog.Info("login_success", "user_id", user.ID, "pseudo", pseudo)
	return &LoginResult{User: user, Token: tok}, nil
}

// Logout revokes the token carried by the given claims. The revocation is
// written to the registry before the caller answers, so a replayed token
// is rejected from then on.
func (s *Service) Logout(ctx context.Context, claims *token.Claims) error {
	if err := s.repo.RevokeToken(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	slog.Info("logout_success", "user_id", claims.UserID, "jti", claims.ID)
	return nil
}

// UpdateParams holds a partial profile update. Nil pointers leave the
// corresponding field untouched. CurrentPassword is always required.
type UpdateParams struct {
	CurrentPassword    string
	Pseudo             *string
	EmailAddress       *string
	FirstName          *string
	LastName           *string
	Avatar             *string
	NewPassword        *string
	NewPasswordConfirm *string
}

// UpdateProfile applies a partial update to a member's profile after
// re-checking their current password. Nothing is written when any check
// fails.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, params UpdateParams) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(params.CurrentPassword)); err != nil {
		slog.Warn("update_failed", "user_id", userID, "reason", "invalid_password")
		return nil, ErrInvalidCredentials
	}

	if params.EmailAddress != nil {
		if _, err := mail.ParseAddress(*params.EmailAddress); err != nil {
			return nil, ErrInvalidEmail
		}
		user.EmailAddress = *params.EmailAddress
	}

	if params.NewPassword != nil {
		if params.NewPasswordConfirm == nil || *params.NewPassword != *params.NewPasswordConfirm {
			return nil, ErrPasswordMismatch
		}
		if validation := s.passwords.Validate(*params.NewPassword); !validation.Valid {
			return nil, &PasswordValidationError{Errors: validation.Errors}
		}
		passwordHash, err := bcrypt.GenerateFromPassword([]byte(*params.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(passwordHash)
	}

	if params.Pseudo != nil {
		user.Pseudo = *params.Pseudo
	}
	if params.FirstName != nil {
		user.FirstName = *params.FirstName
	}
	if params.LastName != nil {
		user.LastName = *params.LastName
	}
	if params.Avatar != nil {
		user.Avatar = params.Avatar
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, s.classifyUpdateDuplicate(ctx, user)
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.mailer.Enqueue(email.ProfileChanged(user.EmailAddress, user.Pseudo))

	slog.Info("profile_updated", "user_id", user.ID, "pseudo", user.Pseudo)
	return user, nil
}

func (s *Service) classifyUpdateDuplicate(ctx context.Context, user *models.User) error {
	other, err := s.repo.GetUserByEmail(ctx, user.EmailAddress)
	if err == nil && other.ID != user.ID {
		return ErrDuplicateEmail
	}
	return ErrDuplicatePseudo
}
