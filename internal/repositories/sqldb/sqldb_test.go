package sqldb

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/egysaas25-hub/fit-coach-sub001/internal/models"
	"github.com/egysaas25-hub/fit-coach-sub001/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(DialectSQLite, filepath.Join(t.TempDir(), "fitcoach.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func TestOpen_UnknownDialect(t *testing.T) {
	_, err := Open("oracle", "")
	assert.Error(t, err)
}

func TestSettingsRepository_UpsertAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewSettingsRepository(openTestDB(t))

	_, err := repo.FindByTenantAndCategory(ctx, "t1", models.CategoryBranding)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	first, err := repo.Upsert(ctx, "t1", models.CategoryBranding, models.Document{
		"companyName":  "Acme",
		"primaryColor": "#112233",
		"social":       map[string]interface{}{"instagram": "@acme"},
	}, "u1")
	require.NoError(t, err)
	assert.False(t, first.ID.IsZero())
	assert.Equal(t, "u1", first.UpdatedBy)
	assert.Equal(t, "@acme", first.Settings["social"].(map[string]interface{})["instagram"])

	second, err := repo.Upsert(ctx, "t1", models.CategoryBranding, models.Document{"companyName": "Acme Fitness"}, "u2")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.False(t, second.UpdatedAt.Before(first.UpdatedAt))
	// overwrite, not merge
	assert.Equal(t, models.Document{"companyName": "Acme Fitness"}, second.Settings)

	_, err = repo.FindByTenantAndCategory(ctx, "t2", models.CategoryBranding)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	_, err = repo.FindByTenantAndCategory(ctx, "t1", models.CategoryGeneral)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestSettingsRepository_ConcurrentUpsertsKeepOneRow(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewSettingsRepository(db)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repo.Upsert(ctx, "t1", models.CategoryGeneral, models.Document{"siteName": "Acme"}, "u1")
		}()
	}
	wg.Wait()

	var count int64
	require.NoError(t, db.Model(&settingsRow{}).Where("tenant_id = ?", "t1").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAdminUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewAdminUserRepository(openTestDB(t))

	created, err := repo.Create(ctx, &models.AdminUser{TenantID: "t1", Name: "Coach", Email: "Coach@Example.com", Password: "hash", Role: "owner"})
	require.NoError(t, err)
	assert.False(t, created.ID.IsZero())
	assert.Equal(t, "coach@example.com", created.Email)

	found, err := repo.FindByEmail(ctx, "COACH@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "t1", found.TenantID)
	assert.Equal(t, "hash", found.Password)

	_, err = repo.Create(ctx, &models.AdminUser{TenantID: "t2", Email: "coach@example.com", Password: "x"})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
