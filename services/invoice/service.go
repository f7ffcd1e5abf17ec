package invoice

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	invoiceRepo "membership/database/repository/invoice"
	"membership/gateway"
	"membership/models"

	"go.uber.org/zap"
)

// DefaultInvoiceService is the production implementation.
type DefaultInvoiceService struct {
	Repo    invoiceRepo.InvoiceRepository
	Charger gateway.CardCharger
	Logger  *zap.Logger
}

// NewInvoiceService wires the lifecycle engine.
func NewInvoiceService(repo invoiceRepo.InvoiceRepository, charger gateway.CardCharger, logger *zap.Logger) *DefaultInvoiceService {
	return &DefaultInvoiceService{
		Repo:    repo,
		Charger: charger,
		Logger:  logger,
	}
}

// MakeReference derives the human-readable invoice reference: the first
// three letters of the membership type, uppercased, then the invoice id.
func MakeReference(membershipType string, invoiceID int64) string {
	prefix := membershipType
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	return strings.ToUpper(prefix) + strconv.FormatInt(invoiceID, 10)
}

// CreateEmptyInvoice inserts a zero-amount invoice and then assigns its
// reference keyed by the new id. There is no compensation between the two
// steps; a never-referenced invoice is reconcilable by the store.
func (s *DefaultInvoiceService) CreateEmptyInvoice(ctx context.Context, memberEmail, membershipType string) (int64, error) {
	inv := &models.Invoice{
		MemberEmail:        memberEmail,
		TotalAmountInCents: 0,
		PaymentDate:        time.Now().Format(time.DateOnly),
		PaymentType:        "",
		PaymentStatus:      models.PaymentStatusPending,
		Reference:          "",
	}

	if err := s.Repo.Create(inv); err != nil {
		s.Logger.Error("failed to create empty invoice",
			zap.String("memberEmail", memberEmail), zap.Error(err))
		return 0, ErrInternal
	}
	s.Logger.Info("created empty invoice",
		zap.Int64("invoiceId", inv.ID), zap.String("memberEmail", memberEmail))

	reference := MakeReference(membershipType, inv.ID)
	if err := s.Repo.SetReference(inv.ID, reference); err != nil {
		s.Logger.Error("failed to assign invoice reference",
			zap.Int64("invoiceId", inv.ID), zap.String("reference", reference), zap.Error(err))
		return 0, ErrInternal
	}
	s.Logger.Info("assigned invoice reference",
		zap.Int64("invoiceId", inv.ID), zap.String("reference", reference))

	return inv.ID, nil
}

// PayForInvoice routes a validated submission to the card-charge path or
// the record-only path. A missing invoice is a hard error, never a no-op.
func (s *DefaultInvoiceService) PayForInvoice(ctx context.Context, submission models.PaymentSubmission) error {
	invoiceID, err := strconv.ParseInt(strings.TrimSpace(submission.InvoiceID), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid invoice id %q: %w", submission.InvoiceID, err)
	}
	totalAmount, err := strconv.ParseFloat(strings.TrimSpace(submission.TotalAmount), 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", submission.TotalAmount, err)
	}

	if _, err := s.Repo.GetByID(invoiceID); err != nil {
		return fmt.Errorf("payment submitted for unresolvable invoice: %w", err)
	}

	record := invoiceRepo.PaymentRecord{
		// Round, don't truncate: 19.99 is 1998.9999... under float64.
		TotalAmountInCents: int64(math.Round(totalAmount * 100)),
		PaymentDate:        time.Now().Format(time.DateOnly),
		PaymentType:        submission.PaymentType,
		PaymentStatus:      models.PaymentStatusPending,
	}

	if submission.PaymentType == models.PaymentTypeStripe {
		result, err := s.Charger.ChargeCard(ctx, submission.StripeToken, totalAmount)
		if err != nil {
			s.Logger.Error("card charge failed",
				zap.Int64("invoiceId", invoiceID),
				zap.String("stripeToken", submission.StripeToken),
				zap.Error(err))
			return &ChargeCardError{Message: "Failed to charge card!"}
		}
		s.Logger.Info("card charged",
			zap.Int64("invoiceId", invoiceID), zap.String("stripeToken", submission.StripeToken))

		record.PaymentStatus = models.PaymentStatusPaid
		record.TransactionID = result.TransactionID
	}

	if err := s.Repo.RecordPayment(invoiceID, record); err != nil {
		return fmt.Errorf("failed to record payment for invoice %d: %w", invoiceID, err)
	}
	s.Logger.Info("recorded payment",
		zap.Int64("invoiceId", invoiceID),
		zap.String("paymentType", record.PaymentType),
		zap.String("paymentStatus", record.PaymentStatus))
	return nil
}

// PaypalChargeSuccess applies a verified gateway confirmation. The
// conditional update must modify exactly one pending row; anything else is
// a reconciliation conflict to be investigated, never silent success.
func (s *DefaultInvoiceService) PaypalChargeSuccess(ctx context.Context, invoiceID int64, transactionID string) error {
	modified, err := s.Repo.MarkPaidByID(ctx, invoiceID, transactionID)
	if err != nil {
		return fmt.Errorf("paypal update failed for invoice %d: %w", invoiceID, err)
	}
	if modified != 1 {
		s.Logger.Error("paypal update did not match one pending invoice",
			zap.Int64("invoiceId", invoiceID),
			zap.String("transactionId", transactionID),
			zap.Int64("modified", modified))
		return fmt.Errorf("%w: invoice %d", ErrReconciliationConflict, invoiceID)
	}
	s.Logger.Info("paypal payment reconciled",
		zap.Int64("invoiceId", invoiceID), zap.String("transactionId", transactionID))
	return nil
}

// AcceptPayment is the admin confirmation of a cheque or deposit payment
// reconciled out of band. Same single-winner contract as the gateway path.
func (s *DefaultInvoiceService) AcceptPayment(ctx context.Context, reference string) error {
	modified, err := s.Repo.MarkPaidByReference(ctx, reference)
	if err != nil {
		return fmt.Errorf("accept payment failed for reference %s: %w", reference, err)
	}
	if modified != 1 {
		s.Logger.Error("accept payment did not match one pending invoice",
			zap.String("reference", reference), zap.Int64("modified", modified))
		return fmt.Errorf("%w: reference %s", ErrReconciliationConflict, reference)
	}
	s.Logger.Info("payment accepted", zap.String("reference", reference))
	return nil
}

// UnconfirmedPaymentList lists pending cheque/deposit invoices joined with
// member names for the admin review surface.
func (s *DefaultInvoiceService) UnconfirmedPaymentList(ctx context.Context) ([]models.UnconfirmedPayment, error) {
	payments, err := s.Repo.UnconfirmedPayments(ctx)
	if err != nil {
		s.Logger.Error("failed to fetch unconfirmed payments", zap.Error(err))
		return nil, ErrInternal
	}
	return payments, nil
}
