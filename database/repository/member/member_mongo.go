package memberRepo

import (
	"context"
	"time"

	"membership/config"
	"membership/database"

	"go.mongodb.org/mongo-driver/mongo"
)

// MongoMemberRepo is the MongoDB-backed implementation of MemberRepository.
type MongoMemberRepo struct {
	coll *mongo.Collection
}

// NewMongoMemberRepo creates a repo bound to the configured database.
func NewMongoMemberRepo() *MongoMemberRepo {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &MongoMemberRepo{
		coll: db.Collection("members"),
	}
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}
