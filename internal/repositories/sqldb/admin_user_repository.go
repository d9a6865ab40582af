package sqldb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/egysaas25-hub/fit-coach-sub001/internal/models"
	"github.com/egysaas25-hub/fit-coach-sub001/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
)

type adminUserRow struct {
	ID        string `gorm:"primaryKey;size:24"`
	TenantID  string `gorm:"size:64;not null;index"`
	Name      string
	Email     string `gorm:"size:320;not null;uniqueIndex:email_unique"`
	Password  string `gorm:"not null"`
	Role      string `gorm:"size:32"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (adminUserRow) TableName() string { return "admin_users" }

// AdminUserRepository implements repositories.AdminUserRepository on gorm
type AdminUserRepository struct {
	db *gorm.DB
}

var _ repositories.AdminUserRepository = (*AdminUserRepository)(nil)

// NewAdminUserRepository creates a new AdminUserRepository
func NewAdminUserRepository(db *gorm.DB) *AdminUserRepository {
	return &AdminUserRepository{db: db}
}

func (r *AdminUserRepository) Create(ctx context.Context, adminUser *models.AdminUser) (*models.AdminUser, error) {
	id := primitive.NewObjectID()
	row := adminUserRow{
		ID:       id.Hex(),
		TenantID: adminUser.TenantID,
		Name:     adminUser.Name,
		Email:    strings.ToLower(adminUser.Email),
		Password: adminUser.Password,
		Role:     adminUser.Role,
	}
	var existing int64
	if err := r.db.WithContext(ctx).Model(&adminUserRow{}).Where("email = ?", row.Email).Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("failed to check admin user: %w", err)
	}
	if existing > 0 {
		return nil, repositories.ErrDuplicate
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, repositories.ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create admin user: %w", err)
	}

	created := *adminUser
	created.ID = id
	created.Email = row.Email
	created.CreatedAt = row.CreatedAt.UTC()
	created.UpdatedAt = row.UpdatedAt.UTC()
	return &created, nil
}

func (r *AdminUserRepository) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var row adminUserRow
	err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find admin user: %w", err)
	}
	id, _ := primitive.ObjectIDFromHex(row.ID)
	return &models.AdminUser{
		ID:        id,
		TenantID:  row.TenantID,
		Name:      row.Name,
		Email:     row.Email,
		Password:  row.Password,
		Role:      row.Role,
		CreatedAt: row.CreatedAt.UTC(),
		UpdatedAt: row.UpdatedAt.UTC(),
	}, nil
}
