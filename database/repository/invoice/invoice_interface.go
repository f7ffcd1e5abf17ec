package invoiceRepo

import (
	"context"

	"membership/models"
)

// PaymentRecord carries the fields written to an invoice when a payment
// is submitted or confirmed.
type PaymentRecord struct {
	TotalAmountInCents int64
	PaymentDate        string
	PaymentType        string
	PaymentStatus      string
	TransactionID      string
}

// InvoiceRepository defines invoice data access. MarkPaidByID and
// MarkPaidByReference are conditional updates: they run inside a session
// transaction and report how many pending rows they modified, which is
// the arbiter for concurrent payment confirmations.
type InvoiceRepository interface {
	// Create inserts a new invoice, assigning the next id in sequence.
	Create(invoice *models.Invoice) error
	// GetByID retrieves an invoice by its numeric id.
	GetByID(id int64) (*models.Invoice, error)
	// SetReference assigns the human-readable reference to an invoice.
	SetReference(id int64, reference string) error
	// RecordPayment writes submitted payment fields onto an invoice.
	RecordPayment(id int64, record PaymentRecord) error
	// MarkPaidByID sets PAID and the gateway transaction id on the pending
	// invoice with the given id, returning the number of rows modified.
	MarkPaidByID(ctx context.Context, id int64, transactionID string) (int64, error)
	// MarkPaidByReference sets PAID on the pending invoice with the given
	// reference, returning the number of rows modified.
	MarkPaidByReference(ctx context.Context, reference string) (int64, error)
	// UnconfirmedPayments lists pending cheque/deposit invoices joined
	// with their member's name.
	UnconfirmedPayments(ctx context.Context) ([]models.UnconfirmedPayment, error)
}
