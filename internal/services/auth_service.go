package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/egysaas25-hub/fit-coach-sub001/internal/models"
	"github.com/egysaas25-hub/fit-coach-sub001/internal/repositories"
	"github.com/egysaas25-hub/fit-coach-sub001/pkg/jwt"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	adminRepo repositories.AdminUserRepository
	tokens    *jwt.TokenManager
	logger    *zap.Logger
}

// NewAuthService creates a new AuthService implementation
func NewAuthService(adminRepo repositories.AdminUserRepository, tokens *jwt.TokenManager, logger *zap.Logger) AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &authService{
		adminRepo: adminRepo,
		tokens:    tokens,
		logger:    logger,
	}
}

// Login handles admin login
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.adminRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		s.logger.Warn("login rejected", zap.String("email", user.Email))
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user.ID.Hex(), user.TenantID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{Token: token, ExpiresAt: expiresAt}, nil
}

// CreateAdmin handles admin registration for seeding and provisioning
func (s *authService) CreateAdmin(ctx context.Context, tenantID, name, email, password, role string) (*models.AdminUser, error) {
	if tenantID == "" || email == "" || password == "" {
		return nil, errors.New("tenant, email and password are required")
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.adminRepo.Create(ctx, &models.AdminUser{
		TenantID: tenantID,
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
		Role:     role,
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
