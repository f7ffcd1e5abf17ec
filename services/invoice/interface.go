package invoice

import (
	"context"

	"membership/models"
)

// InvoiceService owns the invoice lifecycle: creation and reference
// assignment, payment execution and recording, and reconciliation of
// asynchronous gateway confirmations.
type InvoiceService interface {
	// CreateEmptyInvoice creates a zero-amount invoice for a membership
	// event and assigns its reference. Returns the new invoice id.
	CreateEmptyInvoice(ctx context.Context, memberEmail, membershipType string) (int64, error)
	// PayForInvoice executes or records a payment submission. The
	// submission must already have passed shape validation.
	PayForInvoice(ctx context.Context, submission models.PaymentSubmission) error
	// PaypalChargeSuccess reconciles a verified gateway confirmation
	// against the pending invoice it names.
	PaypalChargeSuccess(ctx context.Context, invoiceID int64, transactionID string) error
	// AcceptPayment is the admin confirmation of an offline payment.
	AcceptPayment(ctx context.Context, reference string) error
	// UnconfirmedPaymentList lists pending cheque/deposit invoices for
	// admin review.
	UnconfirmedPaymentList(ctx context.Context) ([]models.UnconfirmedPayment, error)
}
