package mongodb

import (
	"testing"
	"time"

	"github.com/egysaas25-hub/fit-coach-sub001/internal/models"
	"github.com/egysaas25-hub/fit-coach-sub001/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const settingsNS = "fitcoach." + SettingsCollection

func settingsDoc(tenantID string, category models.Category, settings bson.D, updatedAt time.Time) bson.D {
	return bson.D{
		{Key: "_id", Value: primitive.NewObjectID()},
		{Key: "tenantId", Value: tenantID},
		{Key: "category", Value: string(category)},
		{Key: "settings", Value: settings},
		{Key: "updatedBy", Value: "user-1"},
		{Key: "createdAt", Value: updatedAt},
		{Key: "updatedAt", Value: updatedAt},
	}
}

func TestSettingsRepository_FindByTenantAndCategory(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("found", func(mt *mtest.T) {
		repo := NewSettingsRepository(mt.DB)
		updatedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, settingsNS, mtest.FirstBatch,
			settingsDoc("t1", models.CategoryNotifications, bson.D{
				{Key: "paymentFailed", Value: bson.D{
					{Key: "email", Value: true},
					{Key: "whatsapp", Value: true},
					{Key: "push", Value: false},
				}},
			}, updatedAt),
		))

		record, err := repo.FindByTenantAndCategory(ctx(), "t1", models.CategoryNotifications)
		require.NoError(mt, err)
		assert.Equal(mt, "t1", record.TenantID)
		assert.Equal(mt, models.CategoryNotifications, record.Category)
		assert.Equal(mt, "user-1", record.UpdatedBy)
		assert.True(mt, updatedAt.Equal(record.UpdatedAt))

		// nested documents come back as plain maps, not bson.D
		event, ok := record.Settings["paymentFailed"].(map[string]interface{})
		require.True(mt, ok, "got %T", record.Settings["paymentFailed"])
		assert.Equal(mt, true, event["email"])
		assert.Equal(mt, false, event["push"])
	})

	mt.Run("not found", func(mt *mtest.T) {
		repo := NewSettingsRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, settingsNS, mtest.FirstBatch))

		record, err := repo.FindByTenantAndCategory(ctx(), "t1", models.CategoryGeneral)
		assert.Nil(mt, record)
		assert.ErrorIs(mt, err, repositories.ErrNotFound)
	})

	mt.Run("server error", func(mt *mtest.T) {
		repo := NewSettingsRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "boom",
		}))

		_, err := repo.FindByTenantAndCategory(ctx(), "t1", models.CategoryGeneral)
		require.Error(mt, err)
		assert.NotErrorIs(mt, err, repositories.ErrNotFound)
		assert.Contains(mt, err.Error(), "boom")
	})
}

func TestSettingsRepository_Upsert(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("returns stored record", func(mt *mtest.T) {
		repo := NewSettingsRepository(mt.DB)
		updatedAt := time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{
			Key:   "value",
			Value: settingsDoc("t1", models.CategoryGeneral, bson.D{{Key: "siteName", Value: "Acme Gym"}}, updatedAt),
		}))

		record, err := repo.Upsert(ctx(), "t1", models.CategoryGeneral, models.Document{"siteName": "Acme Gym"}, "user-1")
		require.NoError(mt, err)
		assert.Equal(mt, models.Document{"siteName": "Acme Gym"}, record.Settings)
		assert.True(mt, updatedAt.Equal(record.UpdatedAt))

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "findAndModify", started.CommandName)

		upsert, err := started.Command.LookupErr("upsert")
		require.NoError(mt, err)
		assert.True(mt, upsert.Boolean())
	})

	mt.Run("write failure is propagated", func(mt *mtest.T) {
		repo := NewSettingsRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    91,
			Name:    "ShutdownInProgress",
			Message: "shutting down",
		}))

		record, err := repo.Upsert(ctx(), "t1", models.CategoryGeneral, models.Document{"siteName": "x"}, "user-1")
		assert.Nil(mt, record)
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "failed to upsert settings")
	})
}

func TestEnsureIndexes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("creates both indexes", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())
		require.NoError(mt, EnsureIndexes(ctx(), mt.DB))
	})

	mt.Run("reports failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    85,
			Name:    "IndexOptionsConflict",
			Message: "conflict",
		}))
		err := EnsureIndexes(ctx(), mt.DB)
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), SettingsCollection)
	})
}
