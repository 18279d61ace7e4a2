package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avatarctic/trip-search/internal/core/apperrors"
	"github.com/avatarctic/trip-search/internal/core/domain/user"
	"github.com/avatarctic/trip-search/internal/core/ports"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type UserService struct {
	repo     ports.UserRepository
	identity ports.IdentityProvider
	logger   *logrus.Logger
}

func NewUserService(repo ports.UserRepository, identity ports.IdentityProvider, logger *logrus.Logger) ports.UserService {
	return &UserService{
		repo:     repo,
		identity: identity,
		logger:   logger,
	}
}

// EnsureUser finds the local user for the token subject, creating the row on
// first sight and refreshing email/name when the provider profile drifted.
func (s *UserService) EnsureUser(ctx context.Context, input user.EnsureUserInput) (*user.User, error) {
	existing, ok, err := s.repo.FindBySubject(ctx, input.Subject)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !ok {
		now := time.Now().UTC()
		u := &user.User{
			ID:        uuid.New(),
			Subject:   input.Subject,
			Email:     input.Email,
			Name:      input.Name,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.repo.Create(ctx, u); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"user_id": u.ID, "subject": u.Subject}).Info("user provisioned")
		}
		return u, nil
	}

	if !profileChanged(existing, input) {
		return existing, nil
	}

	existing.Email = input.Email
	existing.Name = input.Name
	existing.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return existing, nil
}

// RegisterUser creates the account at the identity provider first; the
// provider owns credentials, the local row only mirrors the profile.
func (s *UserService) RegisterUser(ctx context.Context, req *user.CreateUserRequest) (*user.User, error) {
	if s.identity == nil {
		return nil, fmt.Errorf("identity provider is not configured")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := req.Name
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		name = &trimmed
	}

	account, err := s.identity.CreateUser(ctx, email, req.Password, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity account: %w", err)
	}

	_, ok, err := s.repo.FindBySubject(ctx, account.Subject)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if ok {
		return nil, apperrors.Validationf("user %s already exists", account.Subject)
	}

	now := time.Now().UTC()
	u := &user.User{
		ID:        uuid.New(),
		Subject:   account.Subject,
		Email:     &account.Email,
		Name:      account.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"user_id": u.ID, "subject": u.Subject}).Info("user registered")
	}
	return u, nil
}

func profileChanged(existing *user.User, input user.EnsureUserInput) bool {
	return !strPtrEqual(existing.Email, input.Email) || !strPtrEqual(existing.Name, input.Name)
}

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
