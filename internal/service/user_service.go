package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	dom "github.com/anmshpython/to-do-list/internal/domain"
	"github.com/anmshpython/to-do-list/internal/repo"
	"github.com/anmshpython/to-do-list/internal/utils"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput = errors.New("email, name and password are required")
	ErrEmailTaken   = errors.New("email already registered")

	// ErrInvalidCredentials is the umbrella for failed logins. The two
	// concrete causes below match it via errors.Is, so callers that do not
	// care which field was wrong can treat both the same.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnknownEmail       = fmt.Errorf("%w: unknown email", ErrInvalidCredentials)
	ErrWrongPassword      = fmt.Errorf("%w: wrong password", ErrInvalidCredentials)
)

// UserService handles registration and authentication.
type UserService struct {
	repo repo.UserRepo
}

// NewUserService returns a new UserService.
func NewUserService(repo repo.UserRepo) *UserService {
	return &UserService{repo: repo}
}

// Register creates a new user with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, email, name, password string) (dom.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	name = strings.TrimSpace(name)
	if email == "" || name == "" || password == "" {
		return dom.User{}, ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return dom.User{}, err
	}
	u, err := s.repo.Create(ctx, email, name, string(hash))
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.User{}, ErrEmailTaken
		}
		return dom.User{}, err
	}
	return u, nil
}

// Authenticate checks email and password; returns the user if valid.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (dom.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return dom.User{}, ErrInvalidCredentials
	}
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrUnknownEmail
		}
		return dom.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return dom.User{}, ErrWrongPassword
	}
	return u, nil
}
