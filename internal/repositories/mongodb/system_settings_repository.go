package mongodb

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/egysaas25-hub/fit-coach-sub001/internal/models"
	"github.com/egysaas25-hub/fit-coach-sub001/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SettingsCollection holds one document per (tenantId, category)
const SettingsCollection = "tenant_settings"

// Ensure SettingsRepository implements repositories.SettingsRepository
var _ repositories.SettingsRepository = (*SettingsRepository)(nil)

// SettingsRepository implements repositories.SettingsRepository
type SettingsRepository struct {
	collection *mongo.Collection
}

// NewSettingsRepository creates a new SettingsRepository.
// Embedded documents decode as maps rather than ordered bson.D so settings
// round-trip to JSON unchanged.
func NewSettingsRepository(db *mongo.Database) *SettingsRepository {
	registry := bson.NewRegistryBuilder().
		RegisterTypeMapEntry(bsontype.EmbeddedDocument, reflect.TypeOf(bson.M{})).
		Build()
	return &SettingsRepository{
		collection: db.Collection(SettingsCollection, options.Collection().SetRegistry(registry)),
	}
}

// FindByTenantAndCategory retrieves the settings record for a tenant and category
func (r *SettingsRepository) FindByTenantAndCategory(ctx context.Context, tenantID string, category models.Category) (*models.SettingsRecord, error) {
	var record models.SettingsRecord
	filter := bson.M{"tenantId": tenantID, "category": category}
	err := r.collection.FindOne(ctx, filter).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find settings for tenant %s category %s: %w", tenantID, category, err)
	}
	record.Settings = record.Settings.Clone()
	return &record, nil
}

// Upsert overwrites the settings document for a tenant and category, or creates it if it doesn't exist.
func (r *SettingsRepository) Upsert(ctx context.Context, tenantID string, category models.Category, settings models.Document, updatedBy string) (*models.SettingsRecord, error) {
	// BSON dates carry millisecond precision
	now := time.Now().UTC().Truncate(time.Millisecond)
	filter := bson.M{"tenantId": tenantID, "category": category}
	update := bson.M{
		"$set": bson.M{
			"settings":  settings,
			"updatedBy": updatedBy,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{
			"createdAt": now,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var record models.SettingsRecord
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&record)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert settings for tenant %s category %s: %w", tenantID, category, err)
	}
	record.Settings = record.Settings.Clone()
	return &record, nil
}
