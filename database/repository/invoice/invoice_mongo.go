package invoiceRepo

import (
	"context"
	"time"

	"membership/config"
	"membership/database"

	"go.mongodb.org/mongo-driver/mongo"
)

// MongoInvoiceRepo is the MongoDB-backed implementation of InvoiceRepository.
type MongoInvoiceRepo struct {
	coll        *mongo.Collection
	counterColl *mongo.Collection
	memberColl  *mongo.Collection
}

// NewMongoInvoiceRepo creates a repo bound to the configured database.
func NewMongoInvoiceRepo() *MongoInvoiceRepo {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &MongoInvoiceRepo{
		coll:        db.Collection("invoices"),
		counterColl: db.Collection("counters"),
		memberColl:  db.Collection("members"),
	}
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}
