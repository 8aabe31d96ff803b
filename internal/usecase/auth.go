package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	domainErrors "github.com/virebo/lanthandel/internal/domain/errors"
	"github.com/virebo/lanthandel/internal/domain/model"
	"github.com/virebo/lanthandel/internal/domain/repository"
	"github.com/virebo/lanthandel/internal/pkg/auth"
)

const minPasswordLength = 6

// SellerCredentials is the single backoffice account, configured at startup.
type SellerCredentials struct {
	Email    string
	Password string
}

// AuthUseCase handles customer registration and login plus the seller console
// login.
type AuthUseCase struct {
	users    repository.UserRepository
	hasher   auth.PasswordHasher
	strategy auth.Strategy
	seller   SellerCredentials
	logger   *slog.Logger
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(
	users repository.UserRepository,
	hasher auth.PasswordHasher,
	strategy auth.Strategy,
	seller SellerCredentials,
	logger *slog.Logger,
) *AuthUseCase {
	seller.Email = normalizeEmail(seller.Email)
	return &AuthUseCase{
		users:    users,
		hasher:   hasher,
		strategy: strategy,
		seller:   seller,
		logger:   logger,
	}
}

// Register creates a customer account and returns the user with a fresh
// session token.
func (u *AuthUseCase) Register(ctx context.Context, name, email, password string) (*model.User, string, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || len(password) < minPasswordLength {
		return nil, "", domainErrors.ErrValidation
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, "", domainErrors.ErrValidation
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, "", domainErrors.ErrValidation
		}
		return nil, "", err
	}

	user, err := u.users.Create(ctx, name, email, hash)
	if err != nil {
		return nil, "", err
	}

	token, err := u.strategy.IssueToken(user.ID.String(), auth.RoleCustomer)
	if err != nil {
		return nil, "", err
	}

	u.logger.Info("customer registered", slog.String("user", user.ID.String()))
	return user, token, nil
}

// Login authenticates a customer by email and password.
func (u *AuthUseCase) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrValidation
	}

	user, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := u.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.strategy.IssueToken(user.ID.String(), auth.RoleCustomer)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// SellerLogin authenticates the backoffice account against the configured
// credentials.
func (u *AuthUseCase) SellerLogin(_ context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(u.seller.Email)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(u.seller.Password)) == 1
	if !emailOK || !passwordOK {
		return "", domainErrors.ErrInvalidCredentials
	}
	return u.strategy.IssueToken(u.seller.Email, auth.RoleSeller)
}

// Profile returns the customer behind an authenticated session.
func (u *AuthUseCase) Profile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	return u.users.GetByID(ctx, userID)
}

// ParseToken validates a session token and returns its subject and role.
func (u *AuthUseCase) ParseToken(token string) (string, auth.Role, error) {
	return u.strategy.ParseToken(token)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
