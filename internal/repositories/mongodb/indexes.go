package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the uniqueness constraints the repositories rely on.
// Creating an index that already exists is a no-op on the server.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	settingsIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "tenantId", Value: 1}, {Key: "category", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("tenant_category_unique"),
	}
	if _, err := db.Collection(SettingsCollection).Indexes().CreateOne(ctx, settingsIdx); err != nil {
		return fmt.Errorf("failed to create %s index: %w", SettingsCollection, err)
	}

	emailIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	}
	if _, err := db.Collection(AdminUsersCollection).Indexes().CreateOne(ctx, emailIdx); err != nil {
		return fmt.Errorf("failed to create %s index: %w", AdminUsersCollection, err)
	}
	return nil
}
