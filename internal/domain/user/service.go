package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"mealplanner/internal/domain/session"
)

// dummyPassword feeds the compare that runs for unknown emails.
const dummyPassword = "mealplanner-timing-equalizer"

type TokenEncoder interface {
	Encode(identity session.Identity) (string, error)
}

type Service struct {
	repo   Repository
	hasher Hasher
	tokens TokenEncoder

	dummyOnce sync.Once
	dummyHash string
	dummyErr  error
}

func NewService(repo Repository, hasher Hasher, tokens TokenEncoder) *Service {
	return &Service{repo: repo, hasher: hasher, tokens: tokens}
}

func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", ErrInvalidCredentials
	}
	if len(password) > MaxPasswordBytes {
		s.compareDummy(password[:MaxPasswordBytes])
		return "", ErrInvalidCredentials
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		s.compareDummy(password)
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("compare password: %w", err)
	}

	return s.issue(ctx, user)
}

func (s *Service) Register(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", ErrEmailRequired
	}
	if password == "" {
		return "", ErrPasswordRequired
	}
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", err
	}

	user := User{
		UUID:         uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.repo.CreateUser(ctx, &user); err != nil {
		return "", err
	}

	return fmt.Sprintf("User %s registered successfully.", email), nil
}

// Refresh re-reads the user's memberships and issues a token with a fresh
// snapshot and validity window.
func (s *Service) Refresh(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", ErrUserNotFound
	}
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return s.issue(ctx, user)
}

func (s *Service) issue(ctx context.Context, user *User) (string, error) {
	groups, err := s.repo.ListGroupRefs(ctx, user.UUID)
	if err != nil {
		return "", err
	}
	if groups == nil {
		groups = []session.GroupRef{}
	}

	return s.tokens.Encode(session.Identity{
		UUID:   user.UUID,
		Email:  user.Email,
		Groups: groups,
	})
}

func (s *Service) compareDummy(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, s.dummyErr = s.hasher.Hash(dummyPassword)
	})
	if s.dummyErr == nil {
		_ = s.hasher.Compare(s.dummyHash, password)
	}
}
