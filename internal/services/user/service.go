// Package user implements profile reads and owner-guarded updates.
package user

import (
	"context"

	domain "cryptowallet/internal/errors"
	"cryptowallet/internal/models"
	"cryptowallet/internal/repositories"
)

type Service interface {
	// Get returns a user by id regardless of the active flag.
	Get(ctx context.Context, id uint) (*models.User, error)
	// GetProfile returns an active user; inactive users read as absent.
	GetProfile(ctx context.Context, id uint) (*models.User, error)
	Update(ctx context.Context, actorID, id uint, input models.UpdateUserInput) (*models.User, error)
	Delete(ctx context.Context, actorID, id uint) error
}

type service struct {
	userRepo repositories.UserRepository
}

func NewService(userRepo repositories.UserRepository) Service {
	if userRepo == nil {
		panic("user repository is required")
	}
	return &service{userRepo: userRepo}
}

func (s *service) Get(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *service) GetProfile(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *service) Update(ctx context.Context, actorID, id uint, input models.UpdateUserInput) (*models.User, error) {
	if actorID != id {
		return nil, domain.ErrForbidden
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil && *input.Email != user.Email {
		if _, err := s.userRepo.GetByEmail(ctx, *input.Email); err == nil {
			return nil, domain.ErrDuplicateEmail
		}
		user.Email = *input.Email
	}
	if input.Username != nil && *input.Username != user.Username {
		if _, err := s.userRepo.GetByUsername(ctx, *input.Username); err == nil {
			return nil, domain.ErrDuplicateUsername
		}
		user.Username = *input.Username
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) Delete(ctx context.Context, actorID, id uint) error {
	if actorID != id {
		return domain.ErrForbidden
	}

	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return err
	}

	// Users are kept while wallets or transactions still point at them
	inUse, err := s.userRepo.HasReferences(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return domain.ErrUserInUse
	}

	return s.userRepo.Delete(ctx, id)
}
