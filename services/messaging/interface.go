package messaging

import (
	"context"

	"membership/models"
)

// MessagingService sends membership emails. Verification and welcome
// emails are dispatched through the offline queue; renewal reminders go
// out synchronously so the scheduler can count real sends.
type MessagingService interface {
	SendVerificationEmail(member *models.Member) error
	SendWelcomeEmail(member *models.Member) error
	SendRenewalEmail(ctx context.Context, member *models.Member) error
	// Deliver pushes a single email out through the transport. Used by
	// the queue worker.
	Deliver(ctx context.Context, payload models.EmailPayload) error
}
