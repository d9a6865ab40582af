package services

import (
	"context"

	"github.com/egysaas25-hub/fit-coach-sub001/internal/models"
)

// SettingsService resolves, validates, caches and persists tenant settings
type SettingsService interface {
	// Get returns the effective settings for a category, falling back to the
	// built-in default when the tenant has never saved one
	Get(ctx context.Context, tenantID string, category models.Category) (*models.SettingsResult, error)

	// GetAll returns the effective settings for every category
	GetAll(ctx context.Context, tenantID string) ([]*models.SettingsResult, error)

	// Put validates document and overwrites the stored settings for a category
	Put(ctx context.Context, tenantID, userID string, category models.Category, document interface{}) (*models.SettingsResult, error)
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	// Login returns a signed session token for valid admin credentials
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)

	// CreateAdmin hashes the password and stores a new admin user
	CreateAdmin(ctx context.Context, tenantID, name, email, password, role string) (*models.AdminUser, error)
}
