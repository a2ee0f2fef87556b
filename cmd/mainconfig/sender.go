package mainconfig

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"

	appconfig "github.com/cleanvent/leadrelay/internal/config"
	"github.com/cleanvent/leadrelay/internal/notify"
	"github.com/cleanvent/leadrelay/pkg/logging"
)

// BuildEmailSender constructs the configured email provider. The provider
// choice is deployment configuration, not code: the fan-out behaves the
// same regardless of which provider carries the mail.
func BuildEmailSender(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (notify.EmailSender, error) {
	switch cfg.EmailProvider {
	case "mailersend":
		sender := notify.NewMailerSendSender(notify.MailerSendConfig{
			APIKey:    cfg.MailerSendAPIKey,
			BaseURL:   cfg.MailerSendBaseURL,
			FromEmail: cfg.FromEmail,
			FromName:  cfg.FromName,
		}, logger)
		if sender == nil {
			return nil, fmt.Errorf("mailersend provider selected but MAILERSEND_API_KEY is empty")
		}
		return sender, nil
	case "sendgrid":
		sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.FromEmail,
			FromName:  cfg.FromName,
		}, logger)
		if sender == nil {
			return nil, fmt.Errorf("sendgrid provider selected but SENDGRID_API_KEY is empty")
		}
		return sender, nil
	case "resend":
		sender := notify.NewResendSender(notify.ResendConfig{
			APIKey:    cfg.ResendAPIKey,
			FromEmail: cfg.FromEmail,
			FromName:  cfg.FromName,
		}, logger)
		if sender == nil {
			return nil, fmt.Errorf("resend provider selected but RESEND_API_KEY is empty")
		}
		return sender, nil
	case "ses":
		awsCfg, err := LoadAWSConfig(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("load AWS config: %w", err)
		}
		sender := notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.FromEmail,
			FromName:  cfg.FromName,
		}, logger)
		if sender == nil {
			return nil, fmt.Errorf("failed to build SES sender")
		}
		return sender, nil
	case "stub":
		return notify.NewStubEmailSender(logger), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.EmailProvider)
	}
}
