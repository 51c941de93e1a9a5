package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/utafrali/glamstore/internal/domain"
	"github.com/utafrali/glamstore/internal/repository"
	"github.com/utafrali/glamstore/internal/session"

	apperrors "github.com/utafrali/glamstore/pkg/errors"
)

// bcryptCost is the cost factor for bcrypt password hashing.
const bcryptCost = 12

// minPasswordLength is the minimum password length required.
const minPasswordLength = 8

// RegisterInput holds the parameters for creating a new account.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// LoginInput holds the parameters for signing in.
type LoginInput struct {
	Email    string
	Password string
}

// AuthService implements registration, login, and logout. Signing in binds
// the account onto the visitor's existing session rather than issuing a new
// one.
type AuthService struct {
	userRepo repository.UserRepository
	sessions session.Store
	logger   *slog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(userRepo repository.UserRepository, sessions session.Store, logger *slog.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		sessions: sessions,
		logger:   logger,
	}
}

// Register creates a new customer account and signs it in on the session.
func (s *AuthService) Register(ctx context.Context, sess *session.Session, input RegisterInput) (*domain.User, error) {
	if input.Name == "" {
		return nil, apperrors.InvalidInput("name is required")
	}
	if input.Email == "" {
		return nil, apperrors.InvalidInput("email is required")
	}
	if input.Phone == "" {
		return nil, apperrors.InvalidInput("phone is required")
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Name:         input.Name,
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:        strings.TrimSpace(input.Phone),
		PasswordHash: string(hashedPassword),
		Role:         domain.RoleCustomer,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := s.signIn(ctx, sess, user); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return user, nil
}

// Login authenticates a user and binds it to the session. Session contents
// such as a cart from an earlier sign-in are left untouched.
func (s *AuthService) Login(ctx context.Context, sess *session.Session, input LoginInput) (*domain.User, error) {
	if input.Email == "" {
		return nil, apperrors.InvalidInput("email is required")
	}
	if input.Password == "" {
		return nil, apperrors.InvalidInput("password is required")
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		return nil, apperrors.Unauthorized("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, apperrors.Unauthorized("invalid email or password")
	}

	if err := s.signIn(ctx, sess, user); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user logged in",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return user, nil
}

// Logout destroys the session, discarding both the login and the cart.
func (s *AuthService) Logout(ctx context.Context, sess *session.Session) error {
	if err := s.sessions.Delete(ctx, sess.ID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged out",
		slog.String("user_id", sess.UserID),
	)

	return nil
}

func (s *AuthService) signIn(ctx context.Context, sess *session.Session, user *domain.User) error {
	sess.UserID = user.ID
	sess.UserName = user.Name
	sess.Role = user.Role

	if err := s.sessions.Save(ctx, sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return apperrors.InvalidInput(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	var hasUpper, hasLower, hasDigit bool
	for _, ch := range password {
		switch {
		case unicode.IsUpper(ch):
			hasUpper = true
		case unicode.IsLower(ch):
			hasLower = true
		case unicode.IsDigit(ch):
			hasDigit = true
		}
	}

	if !hasUpper || !hasLower || !hasDigit {
		return apperrors.InvalidInput("password must contain at least one uppercase letter, one lowercase letter, and one digit")
	}

	return nil
}
