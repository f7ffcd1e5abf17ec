package invoiceRepo

import (
	"errors"
	"fmt"
	"time"

	"membership/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrInvoiceNotFound is returned when an id does not resolve to a row.
var ErrInvoiceNotFound = errors.New("invoice not found")

// nextInvoiceID atomically increments and returns the invoice id sequence.
func (r *MongoInvoiceRepo) nextInvoiceID() (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": "invoices"}
	update := bson.M{"$inc": bson.M{"seq": int64(1)}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	if err := r.counterColl.FindOneAndUpdate(ctx, filter, update, opts).Decode(&counter); err != nil {
		return 0, fmt.Errorf("failed to advance invoice id sequence: %w", err)
	}
	return counter.Seq, nil
}

// Create inserts a new invoice document with the next id in sequence.
func (r *MongoInvoiceRepo) Create(invoice *models.Invoice) error {
	id, err := r.nextInvoiceID()
	if err != nil {
		return err
	}

	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	invoice.ID = id
	invoice.CreatedAt = now
	invoice.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, invoice); err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}
	return nil
}

// GetByID retrieves an invoice by its numeric id.
func (r *MongoInvoiceRepo) GetByID(id int64) (*models.Invoice, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var invoice models.Invoice
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&invoice)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("%w: id %d", ErrInvoiceNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch invoice with id %d: %w", id, err)
	}
	return &invoice, nil
}

// SetReference assigns the derived reference string to an invoice.
func (r *MongoInvoiceRepo) SetReference(id int64, reference string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	update := bson.M{"$set": bson.M{
		"reference": reference,
		"updatedAt": time.Now(),
	}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to set reference on invoice %d: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: id %d", ErrInvoiceNotFound, id)
	}
	return nil
}

// RecordPayment writes payment fields onto an invoice in place. Each new
// submission overwrites the previous attempt's fields.
func (r *MongoInvoiceRepo) RecordPayment(id int64, record PaymentRecord) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	fields := bson.M{
		"totalAmountInCents": record.TotalAmountInCents,
		"paymentDate":        record.PaymentDate,
		"paymentType":        record.PaymentType,
		"paymentStatus":      record.PaymentStatus,
		"updatedAt":          time.Now(),
	}
	if record.TransactionID != "" {
		fields["transactionId"] = record.TransactionID
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to record payment on invoice %d: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: id %d", ErrInvoiceNotFound, id)
	}
	return nil
}
