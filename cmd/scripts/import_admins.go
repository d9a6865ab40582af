package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/egysaas25-hub/fit-coach-sub001/internal/logging"
	"github.com/egysaas25-hub/fit-coach-sub001/internal/repositories"
	mongorepo "github.com/egysaas25-hub/fit-coach-sub001/internal/repositories/mongodb"
	"github.com/egysaas25-hub/fit-coach-sub001/internal/services"
	"github.com/egysaas25-hub/fit-coach-sub001/pkg/mongodb"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Imports dashboard admin users from a CSV file with the header
// tenantId,name,email,password,role. A blank tenantId gets a fresh UUID.
func main() {
	logger, err := logging.New(os.Getenv("FITCOACH_LOGLEVEL"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := godotenv.Load(); err != nil {
		logger.Info(".env file not found, using environment variables")
	}

	mongoURI := os.Getenv("FITCOACH_MONGODB_URI")
	if mongoURI == "" {
		logger.Fatal("FITCOACH_MONGODB_URI environment variable is required")
	}
	dbName := os.Getenv("FITCOACH_MONGODB_DATABASE")
	if dbName == "" {
		dbName = "fitcoach"
	}
	if len(os.Args) < 2 {
		logger.Fatal("CSV file path is required as a command line argument")
	}

	ctx := context.Background()
	client, err := mongodb.NewClient(ctx, mongoURI, 10*time.Second)
	if err != nil {
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	db := client.Database(dbName)
	if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
		logger.Fatal("failed to ensure indexes", zap.Error(err))
	}
	// Tokens are never issued here
	auth := services.NewAuthService(mongorepo.NewAdminUserRepository(db), nil, logger)

	file, err := os.Open(os.Args[1])
	if err != nil {
		logger.Fatal("failed to open CSV file", zap.Error(err))
	}
	defer file.Close()

	imported, err := importAdmins(ctx, auth, file, logger)
	if err != nil {
		logger.Fatal("import failed", zap.Error(err))
	}
	logger.Info("admin users imported", zap.Int("count", imported))
}

// importAdmins creates one admin per CSV row, skipping malformed rows and
// emails that already exist. It returns the number of users created.
func importAdmins(ctx context.Context, auth services.AuthService, r io.Reader, logger *zap.Logger) (int, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return 0, fmt.Errorf("failed to parse CSV file: %w", err)
	}
	if len(records) < 2 {
		return 0, errors.New("CSV file is empty or has only header")
	}

	imported := 0
	for i, record := range records[1:] {
		row := i + 2
		if len(record) < 5 {
			logger.Warn("row has fewer than 5 fields, skipping", zap.Int("row", row))
			continue
		}
		tenantID := strings.TrimSpace(record[0])
		if tenantID == "" {
			tenantID = uuid.NewString()
		}
		name := strings.TrimSpace(record[1])
		email := strings.TrimSpace(record[2])
		role := strings.TrimSpace(record[4])
		if role == "" {
			role = "owner"
		}

		user, err := auth.CreateAdmin(ctx, tenantID, name, email, record[3], role)
		if err != nil {
			if errors.Is(err, repositories.ErrDuplicate) {
				logger.Warn("admin already exists, skipping", zap.Int("row", row), zap.String("email", email))
				continue
			}
			logger.Warn("failed to create admin", zap.Int("row", row), zap.Error(err))
			continue
		}
		logger.Info("admin created",
			zap.String("email", user.Email),
			zap.String("tenant_id", user.TenantID))
		imported++
	}
	return imported, nil
}
