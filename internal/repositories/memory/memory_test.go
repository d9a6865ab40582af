package memory

import (
	"context"
	"testing"
	"time"

	"github.com/egysaas25-hub/fit-coach-sub001/internal/models"
	"github.com/egysaas25-hub/fit-coach-sub001/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsRepository_UpsertAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewSettingsRepository()
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return clock }

	_, err := repo.FindByTenantAndCategory(ctx, "t1", models.CategoryGeneral)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	first, err := repo.Upsert(ctx, "t1", models.CategoryGeneral, models.Document{"siteName": "Acme Gym", "timezone": "UTC"}, "u1")
	require.NoError(t, err)
	assert.Equal(t, clock, first.CreatedAt)
	assert.Equal(t, clock, first.UpdatedAt)

	clock = clock.Add(time.Hour)
	second, err := repo.Upsert(ctx, "t1", models.CategoryGeneral, models.Document{"siteName": "Acme"}, "u2")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.Equal(t, clock, second.UpdatedAt)

	found, err := repo.FindByTenantAndCategory(ctx, "t1", models.CategoryGeneral)
	require.NoError(t, err)
	// overwrite, not merge
	assert.Equal(t, models.Document{"siteName": "Acme"}, found.Settings)
	assert.Equal(t, "u2", found.UpdatedBy)

	_, err = repo.FindByTenantAndCategory(ctx, "t2", models.CategoryGeneral)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestSettingsRepository_IsolatesCallerMutations(t *testing.T) {
	ctx := context.Background()
	repo := NewSettingsRepository()

	doc := models.Document{"siteName": "Acme"}
	_, err := repo.Upsert(ctx, "t1", models.CategoryGeneral, doc, "u1")
	require.NoError(t, err)
	doc["siteName"] = "mutated"

	found, err := repo.FindByTenantAndCategory(ctx, "t1", models.CategoryGeneral)
	require.NoError(t, err)
	found.Settings["siteName"] = "also mutated"

	again, err := repo.FindByTenantAndCategory(ctx, "t1", models.CategoryGeneral)
	require.NoError(t, err)
	assert.Equal(t, "Acme", again.Settings["siteName"])
}

func TestSettingsRepository_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	repo := NewSettingsRepository()

	_, err := repo.Upsert(ctx, "t1", models.CategoryGeneral, models.Document{}, "u1")
	assert.ErrorIs(t, err, context.Canceled)
	_, err = repo.FindByTenantAndCategory(ctx, "t1", models.CategoryGeneral)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAdminUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewAdminUserRepository()

	created, err := repo.Create(ctx, &models.AdminUser{TenantID: "t1", Email: "Coach@Example.com", Password: "hash"})
	require.NoError(t, err)
	assert.Equal(t, "coach@example.com", created.Email)
	assert.False(t, created.ID.IsZero())

	_, err = repo.Create(ctx, &models.AdminUser{TenantID: "t2", Email: "coach@example.COM"})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)

	found, err := repo.FindByEmail(ctx, "COACH@example.com")
	require.NoError(t, err)
	assert.Equal(t, "t1", found.TenantID)

	_, err = repo.FindByEmail(ctx, "other@example.com")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
