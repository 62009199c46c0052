// Package auth implements registration, login, and token issuance. The JWT
// secret and token lifetime are injected at startup, never read from
// process-wide state.
package auth

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	domain "cryptowallet/internal/errors"
	"cryptowallet/internal/models"
	"cryptowallet/internal/repositories"
	"cryptowallet/internal/utils"
)

type Service interface {
	Register(ctx context.Context, input models.RegisterUserInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
}

type service struct {
	userRepo repositories.UserRepository
	secret   string
	tokenTTL time.Duration
}

func NewService(userRepo repositories.UserRepository, secret string, tokenTTL time.Duration) Service {
	if userRepo == nil {
		panic("user repository is required")
	}
	if secret == "" {
		panic("jwt secret is required")
	}
	return &service{
		userRepo: userRepo,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

func (s *service) Register(ctx context.Context, input models.RegisterUserInput) (*models.User, error) {
	if _, err := s.userRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrDuplicateEmail
	}
	if _, err := s.userRepo.GetByUsername(ctx, input.Username); err == nil {
		return nil, domain.ErrDuplicateUsername
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	user := &models.User{
		Email:     input.Email,
		Username:  input.Username,
		Password:  string(hashed),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		IsActive:  true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		log.Printf("login failed: incorrect password for user %d", user.ID)
		return nil, "", domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, "", domain.ErrInactiveUser
	}

	token, err := utils.GenerateToken(&models.UserClaims{
		UserID: user.ID,
		Email:  user.Email,
	}, s.secret, s.tokenTTL)
	if err != nil {
		log.Println("error generating token:", err)
		return nil, "", errors.New("error generating token")
	}

	return user, token, nil
}

func (s *service) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}
