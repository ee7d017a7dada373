package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/primeauto/showroom-api/internal/admins"
	"github.com/primeauto/showroom-api/internal/admins/repository"
	"github.com/primeauto/showroom-api/internal/config"
	"github.com/primeauto/showroom-api/internal/tokens"
)

var (
	ErrEmailTaken = errors.New("admin already exists")
	// ErrInvalidCredentials is deliberately uniform: lookups that miss and
	// password mismatches are indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service implements admin registration and login.
type Service struct {
	cfg  *config.Config
	repo repository.Repository
}

func NewService(cfg *config.Config, repo repository.Repository) *Service {
	return &Service{cfg: cfg, repo: repo}
}

// Register hashes the password and persists a new admin. Role is always
// "admin", regardless of what the caller sends.
func (s *Service) Register(ctx context.Context, email, password string) (*admins.Admin, error) {
	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("admin lookup: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	a := &admins.Admin{
		Email:        email,
		PasswordHash: string(hash),
		Role:         admins.RoleAdmin,
	}
	created, err := s.repo.Create(ctx, a)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("persist admin: %w", err)
	}
	return created, nil
}

// Login verifies the credentials and issues a signed access token embedding
// the admin's id, email and role.
func (s *Service) Login(ctx context.Context, email, password string) (string, *admins.Admin, error) {
	a, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("admin lookup: %w", err)
	}
	if a == nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := tokens.GenerateAccessToken(s.cfg, a, s.cfg.JWT.AccessTokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, a, nil
}
