package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/egysaas25-hub/fit-coach-sub001/internal/models"
	"github.com/egysaas25-hub/fit-coach-sub001/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// AdminUsersCollection holds dashboard operator accounts
const AdminUsersCollection = "admin_users"

// Ensure adminUserRepository implements repositories.AdminUserRepository
var _ repositories.AdminUserRepository = (*adminUserRepository)(nil)

type adminUserRepository struct {
	collection *mongo.Collection
}

// NewAdminUserRepository creates a new repository for admin users
func NewAdminUserRepository(db *mongo.Database) repositories.AdminUserRepository {
	return &adminUserRepository{
		collection: db.Collection(AdminUsersCollection),
	}
}

// Create inserts a new admin user into the database
func (r *adminUserRepository) Create(ctx context.Context, adminUser *models.AdminUser) (*models.AdminUser, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	adminUser.ID = primitive.NewObjectID()
	adminUser.Email = strings.ToLower(adminUser.Email)
	adminUser.CreatedAt = now
	adminUser.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, adminUser); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("admin user %s: %w", adminUser.Email, repositories.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to create admin user: %w", err)
	}
	return adminUser, nil
}

// FindByEmail finds an admin user by their email address
func (r *adminUserRepository) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var adminUser models.AdminUser
	filter := bson.M{"email": strings.ToLower(email)}
	err := r.collection.FindOne(ctx, filter).Decode(&adminUser)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find admin user: %w", err)
	}
	return &adminUser, nil
}
