package invoiceRepo

import (
	"context"
	"fmt"
	"time"

	"membership/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// markPaidWhere runs the conditional PAID update inside a transaction and
// returns the modified row count. The status predicate in the filter is
// what guarantees a single winner among concurrent confirmations.
func (r *MongoInvoiceRepo) markPaidWhere(ctx context.Context, filter bson.M, set bson.M) (int64, error) {
	filter["paymentStatus"] = bson.M{"$ne": models.PaymentStatusPaid}
	set["paymentStatus"] = models.PaymentStatusPaid
	set["updatedAt"] = time.Now()

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return 0, fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	var modified int64
	txnFn := func(sc mongo.SessionContext) error {
		result, err := r.coll.UpdateOne(sc, filter, bson.M{"$set": set})
		if err != nil {
			return fmt.Errorf("conditional paid update failed: %w", err)
		}
		modified = result.ModifiedCount
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return 0, fmt.Errorf("paid update transaction failed: %w", err)
	}

	return modified, nil
}

// MarkPaidByID records a gateway confirmation against a pending invoice.
func (r *MongoInvoiceRepo) MarkPaidByID(ctx context.Context, id int64, transactionID string) (int64, error) {
	return r.markPaidWhere(ctx,
		bson.M{"id": id},
		bson.M{"transactionId": transactionID},
	)
}

// MarkPaidByReference records an admin acceptance against a pending invoice.
func (r *MongoInvoiceRepo) MarkPaidByReference(ctx context.Context, reference string) (int64, error) {
	return r.markPaidWhere(ctx,
		bson.M{"reference": reference},
		bson.M{},
	)
}

// UnconfirmedPayments lists pending cheque/deposit invoices with the
// member's name joined in by email.
func (r *MongoInvoiceRepo) UnconfirmedPayments(ctx context.Context) ([]models.UnconfirmedPayment, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"paymentStatus": models.PaymentStatusPending,
			"paymentType":   bson.M{"$in": bson.A{models.PaymentTypeCheque, models.PaymentTypeDeposit}},
		}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         r.memberColl.Name(),
			"localField":   "memberEmail",
			"foreignField": "email",
			"as":           "member",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{
			"path":                       "$member",
			"preserveNullAndEmptyArrays": true,
		}}},
		bson.D{{Key: "$project", Value: bson.M{
			"reference":          1,
			"paymentType":        1,
			"totalAmountInCents": 1,
			"paymentStatus":      1,
			"memberFirstName":    "$member.firstName",
			"memberLastName":     "$member.lastName",
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to query unconfirmed payments: %w", err)
	}
	defer cursor.Close(ctx)

	var payments []models.UnconfirmedPayment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("failed to decode unconfirmed payments: %w", err)
	}
	return payments, nil
}
