// Package memory provides in-process repository implementations for local
// development and tests. Data does not survive a restart.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/egysaas25-hub/fit-coach-sub001/internal/models"
	"github.com/egysaas25-hub/fit-coach-sub001/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	_ repositories.SettingsRepository  = (*SettingsRepository)(nil)
	_ repositories.AdminUserRepository = (*AdminUserRepository)(nil)
)

type settingsKey struct {
	tenantID string
	category models.Category
}

// SettingsRepository keeps settings records in a map keyed by (tenant, category)
type SettingsRepository struct {
	mu      sync.RWMutex
	records map[settingsKey]models.SettingsRecord
	now     func() time.Time
}

// NewSettingsRepository creates an empty SettingsRepository
func NewSettingsRepository() *SettingsRepository {
	return &SettingsRepository{
		records: make(map[settingsKey]models.SettingsRecord),
		now:     time.Now,
	}
}

// FindByTenantAndCategory returns a copy of the stored record
func (r *SettingsRepository) FindByTenantAndCategory(ctx context.Context, tenantID string, category models.Category) (*models.SettingsRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[settingsKey{tenantID, category}]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	record.Settings = record.Settings.Clone()
	return &record, nil
}

// Upsert creates or overwrites the record for (tenantID, category)
func (r *SettingsRepository) Upsert(ctx context.Context, tenantID string, category models.Category, settings models.Document, updatedBy string) (*models.SettingsRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	key := settingsKey{tenantID, category}
	record, ok := r.records[key]
	if !ok {
		record = models.SettingsRecord{
			ID:        primitive.NewObjectID(),
			TenantID:  tenantID,
			Category:  category,
			CreatedAt: now,
		}
	}
	record.Settings = settings.Clone()
	record.UpdatedBy = updatedBy
	record.UpdatedAt = now
	r.records[key] = record

	record.Settings = record.Settings.Clone()
	return &record, nil
}

// AdminUserRepository keeps admin users in a map keyed by lower-cased email
type AdminUserRepository struct {
	mu    sync.RWMutex
	users map[string]models.AdminUser
}

// NewAdminUserRepository creates an empty AdminUserRepository
func NewAdminUserRepository() *AdminUserRepository {
	return &AdminUserRepository{users: make(map[string]models.AdminUser)}
}

// Create stores a new admin user, rejecting duplicate emails
func (r *AdminUserRepository) Create(ctx context.Context, adminUser *models.AdminUser) (*models.AdminUser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(adminUser.Email)
	if _, exists := r.users[email]; exists {
		return nil, fmt.Errorf("admin user %s: %w", email, repositories.ErrDuplicate)
	}
	now := time.Now().UTC()
	adminUser.ID = primitive.NewObjectID()
	adminUser.Email = email
	adminUser.CreatedAt = now
	adminUser.UpdatedAt = now
	r.users[email] = *adminUser

	stored := *adminUser
	return &stored, nil
}

// FindByEmail looks up a user case-insensitively
func (r *AdminUserRepository) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[strings.ToLower(email)]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &user, nil
}
