package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"taskboard/internal/common"
	"taskboard/internal/common/security"
	"taskboard/internal/domain/model"
	"taskboard/internal/domain/repository"
)

type AuthService struct {
	credentials security.Credentials
	userRepo    repository.UserRepository
	logger      zerolog.Logger
	now         func() time.Time
}

func NewAuthService(credentials security.Credentials, userRepo repository.UserRepository, logger zerolog.Logger) *AuthService {
	return &AuthService{
		credentials: credentials,
		userRepo:    userRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// Authenticate checks username and password against the configured
// credentials and returns the matching user record, creating it on first use.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	if !security.CredentialsMatch(s.credentials, username, password) {
		return nil, common.ErrUnauthorized
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return s.provision(ctx, username, password)
}

func (s *AuthService) provision(ctx context.Context, username, password string) (*model.User, error) {
	hashedPassword, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Username:       username,
		HashedPassword: hashedPassword,
		CreatedAt:      s.now().UTC().Truncate(time.Microsecond),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrConflict) {
			// Another request provisioned the same user first.
			return s.userRepo.FindByUsername(ctx, username)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info().
		Str("username", username).
		Str("user_id", user.ID).
		Msg("provisioned user")
	return user, nil
}
