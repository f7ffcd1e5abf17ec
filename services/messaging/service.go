package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"membership/config"
	"membership/models"

	"github.com/hibiken/asynq"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// TypeEmailSend is the asynq task type for queued email delivery.
const TypeEmailSend = "email:send"

// DefaultMessagingService sends email through SendGrid, queueing
// non-blocking sends through asynq.
type DefaultMessagingService struct {
	Queue  *asynq.Client
	Logger *zap.Logger
}

// NewMessagingService wires the dispatcher.
func NewMessagingService(queue *asynq.Client, logger *zap.Logger) *DefaultMessagingService {
	return &DefaultMessagingService{
		Queue:  queue,
		Logger: logger,
	}
}

// SendVerificationEmail queues the address-verification email.
func (s *DefaultMessagingService) SendVerificationEmail(member *models.Member) error {
	return s.enqueue(models.EmailPayload{
		To:      member.Email,
		Subject: verificationSubject,
		Body:    verificationBody(member),
	})
}

// SendWelcomeEmail queues the post-verification welcome email.
func (s *DefaultMessagingService) SendWelcomeEmail(member *models.Member) error {
	return s.enqueue(models.EmailPayload{
		To:      member.Email,
		Subject: welcomeSubject,
		Body:    welcomeBody(member),
	})
}

// SendRenewalEmail delivers the renewal reminder synchronously. The
// renewal hash must already be persisted on the member.
func (s *DefaultMessagingService) SendRenewalEmail(ctx context.Context, member *models.Member) error {
	return s.Deliver(ctx, models.EmailPayload{
		To:      member.Email,
		Subject: renewalSubject,
		Body:    renewalBody(member),
	})
}

func (s *DefaultMessagingService) enqueue(payload models.EmailPayload) error {
	if !config.AppConfig.SendEmails {
		s.Logger.Info("email sending disabled, skipping", zap.String("subject", payload.Subject))
		return nil
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}
	if _, err := s.Queue.Enqueue(asynq.NewTask(TypeEmailSend, data)); err != nil {
		return fmt.Errorf("failed to enqueue email: %w", err)
	}
	s.Logger.Info("email queued",
		zap.String("to", payload.To), zap.String("subject", payload.Subject))
	return nil
}

// Deliver sends one email through SendGrid.
func (s *DefaultMessagingService) Deliver(ctx context.Context, payload models.EmailPayload) error {
	if !config.AppConfig.SendEmails {
		s.Logger.Info("email sending disabled, skipping", zap.String("subject", payload.Subject))
		return nil
	}
	if payload.To == "" {
		return fmt.Errorf("invalid email parameters: missing recipient")
	}

	from := mail.NewEmail("Pirate Party", config.AppConfig.MembershipEmail)
	to := mail.NewEmail("", payload.To)
	message := mail.NewSingleEmail(from, payload.Subject, to, payload.Body,
		fmt.Sprintf("<pre>%s</pre>", payload.Body))

	client := sendgrid.NewSendClient(config.AppConfig.SendgridAPIKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d body=%s", response.StatusCode, response.Body)
	}

	s.Logger.Info("email sent",
		zap.String("to", payload.To), zap.String("subject", payload.Subject))
	return nil
}
