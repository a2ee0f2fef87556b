package notify

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"

	"github.com/cleanvent/leadrelay/pkg/logging"
)

// ResendSender sends emails via the Resend API.
type ResendSender struct {
	client    *resend.Client
	fromEmail string
	fromName  string
	logger    *logging.Logger
}

// ResendConfig holds configuration for Resend.
type ResendConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
}

// NewResendSender creates a new Resend email sender.
func NewResendSender(cfg ResendConfig, logger *logging.Logger) *ResendSender {
	if cfg.APIKey == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ResendSender{
		client:    resend.NewClient(cfg.APIKey),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		logger:    logger,
	}
}

// Send sends an email via Resend.
func (s *ResendSender) Send(ctx context.Context, msg EmailMessage) error {
	if s.client == nil {
		return fmt.Errorf("notify: resend client not configured")
	}

	from := s.fromEmail
	if s.fromName != "" {
		from = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}
	to := msg.To
	if msg.ToName != "" {
		to = fmt.Sprintf("%s <%s>", msg.ToName, msg.To)
	}

	req := &resend.SendEmailRequest{
		From:    from,
		To:      []string{to},
		Subject: msg.Subject,
		Text:    msg.Body,
		Html:    msg.HTML,
	}
	if msg.ReplyTo != "" {
		req.ReplyTo = msg.ReplyTo
	}

	sent, err := s.client.Emails.SendWithContext(ctx, req)
	if err != nil {
		s.logger.Error("resend send failed", "error", err, "to", msg.To)
		return fmt.Errorf("notify: resend send failed: %w", err)
	}

	s.logger.Info("email sent via resend", "to", msg.To, "subject", msg.Subject, "email_id", sent.Id)
	return nil
}

// Ensure interface compliance
var _ EmailSender = (*ResendSender)(nil)
