package sqldb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/egysaas25-hub/fit-coach-sub001/internal/models"
	"github.com/egysaas25-hub/fit-coach-sub001/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// settingsRow is one (tenant, category) document, serialized as JSON text.
type settingsRow struct {
	ID        string          `gorm:"primaryKey;size:24"`
	TenantID  string          `gorm:"size:64;not null;uniqueIndex:tenant_category_unique"`
	Category  models.Category `gorm:"size:32;not null;uniqueIndex:tenant_category_unique"`
	Settings  string          `gorm:"type:text;not null"`
	UpdatedBy string          `gorm:"size:64"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (settingsRow) TableName() string { return "tenant_settings" }

func (r *settingsRow) record() (*models.SettingsRecord, error) {
	var doc models.Document
	if err := json.Unmarshal([]byte(r.Settings), &doc); err != nil {
		return nil, fmt.Errorf("failed to decode settings for %s/%s: %w", r.TenantID, r.Category, err)
	}
	id, _ := primitive.ObjectIDFromHex(r.ID)
	return &models.SettingsRecord{
		ID:        id,
		TenantID:  r.TenantID,
		Category:  r.Category,
		Settings:  doc,
		UpdatedBy: r.UpdatedBy,
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}, nil
}

// SettingsRepository implements repositories.SettingsRepository on gorm
type SettingsRepository struct {
	db *gorm.DB
}

var _ repositories.SettingsRepository = (*SettingsRepository)(nil)

// NewSettingsRepository creates a new SettingsRepository
func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) FindByTenantAndCategory(ctx context.Context, tenantID string, category models.Category) (*models.SettingsRecord, error) {
	var row settingsRow
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND category = ?", tenantID, category).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find settings: %w", err)
	}
	return row.record()
}

// Upsert replaces the stored document in a single INSERT ... ON CONFLICT so
// concurrent writers for the same key never produce two rows.
func (r *SettingsRepository) Upsert(ctx context.Context, tenantID string, category models.Category, settings models.Document, updatedBy string) (*models.SettingsRecord, error) {
	raw, err := json.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to encode settings: %w", err)
	}

	row := settingsRow{
		ID:        primitive.NewObjectID().Hex(),
		TenantID:  tenantID,
		Category:  category,
		Settings:  string(raw),
		UpdatedBy: updatedBy,
	}
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "category"}},
		DoUpdates: clause.AssignmentColumns([]string{"settings", "updated_by", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert settings: %w", err)
	}
	return r.FindByTenantAndCategory(ctx, tenantID, category)
}
