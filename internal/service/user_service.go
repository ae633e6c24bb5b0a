package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	dom "taskmanager/internal/domain"
	"taskmanager/internal/repo"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid username or password")
var ErrUsernameTaken = errors.New("username already taken")

// UserService handles user auth logic.
type UserService struct {
	repo repo.UserRepo
	cost int

	dummyOnce sync.Once
	dummyHash []byte
}

// NewUserService returns a new UserService. cost <= 0 selects bcrypt.DefaultCost.
func NewUserService(repo repo.UserRepo, cost int) *UserService {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &UserService{repo: repo, cost: cost}
}

// ValidateCredentials checks username and password; returns user if valid.
// Unknown users, wrong passwords and inactive accounts are indistinguishable.
func (s *UserService) ValidateCredentials(ctx context.Context, username, password string) (dom.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return dom.User{}, ErrInvalidCredentials
	}
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// Burn the same bcrypt time as a real comparison.
			_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
			return dom.User{}, ErrInvalidCredentials
		}
		return dom.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return dom.User{}, ErrInvalidCredentials
	}
	if !u.IsActive {
		return dom.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// Register creates a new active user with hashed password.
func (s *UserService) Register(ctx context.Context, username, email, password string) (dom.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" {
		return dom.User{}, newFieldError("username", "This field is required.")
	}
	if password == "" {
		return dom.User{}, newFieldError("password", "This field is required.")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return dom.User{}, newFieldError("password", "Ensure this field has no more than 72 bytes.")
		}
		return dom.User{}, err
	}
	u, err := s.repo.Create(ctx, dom.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     true,
	})
	if err != nil {
		if errors.Is(err, repo.ErrConflict) {
			verr := newFieldError("username", "A user with that username already exists.")
			verr.cause = ErrUsernameTaken
			return dom.User{}, verr
		}
		return dom.User{}, err
	}
	return u, nil
}

// LookupActive implements auth.UserLookup.
func (s *UserService) LookupActive(ctx context.Context, id int64) (dom.User, bool, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return dom.User{}, false, nil
		}
		return dom.User{}, false, err
	}
	return u, u.IsActive, nil
}

// Delete removes the account and, through the schema, everything it owns.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	return notFound(s.repo.Delete(ctx, id))
}

func (s *UserService) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password-for-timing"), s.cost)
	})
	return s.dummyHash
}
