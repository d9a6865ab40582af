package repositories

import (
	"context"
	"errors"

	"github.com/egysaas25-hub/fit-coach-sub001/internal/models"
)

// ErrNotFound is returned when a lookup matches no document
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a write violates a uniqueness constraint
var ErrDuplicate = errors.New("duplicate key")

// SettingsRepository persists tenant settings, one record per (tenantID, category)
type SettingsRepository interface {
	// FindByTenantAndCategory returns ErrNotFound when no record exists
	FindByTenantAndCategory(ctx context.Context, tenantID string, category models.Category) (*models.SettingsRecord, error)

	// Upsert creates the record if absent, otherwise overwrites settings,
	// updatedBy and updatedAt. It returns the record as stored.
	Upsert(ctx context.Context, tenantID string, category models.Category, settings models.Document, updatedBy string) (*models.SettingsRecord, error)
}

// AdminUserRepository defines the interface for admin user data operations
type AdminUserRepository interface {
	// Create returns ErrDuplicate if the email is already taken
	Create(ctx context.Context, adminUser *models.AdminUser) (*models.AdminUser, error)

	// FindByEmail returns ErrNotFound when no user has the email
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
}
