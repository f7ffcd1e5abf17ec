package adminRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"membership/config"
	"membership/database"
	"membership/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrAdminNotFound is returned when no admin account matches the email.
var ErrAdminNotFound = errors.New("admin user not found")

// AdminRepository defines admin account data access.
type AdminRepository interface {
	GetByEmail(email string) (*models.AdminUser, error)
	Create(admin *models.AdminUser) error
}

// MongoAdminRepo is the MongoDB-backed implementation of AdminRepository.
type MongoAdminRepo struct {
	coll *mongo.Collection
}

// NewMongoAdminRepo creates a repo bound to the configured database.
func NewMongoAdminRepo() *MongoAdminRepo {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &MongoAdminRepo{coll: db.Collection("adminUsers")}
}

// GetByEmail retrieves an admin account by email.
func (r *MongoAdminRepo) GetByEmail(email string) (*models.AdminUser, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var admin models.AdminUser
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&admin)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("%w: %s", ErrAdminNotFound, email)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch admin user %s: %w", email, err)
	}
	return &admin, nil
}

// Create inserts a new admin account.
func (r *MongoAdminRepo) Create(admin *models.AdminUser) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	admin.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	return nil
}
