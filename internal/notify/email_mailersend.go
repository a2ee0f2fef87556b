package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cleanvent/leadrelay/pkg/logging"
)

const defaultMailerSendBaseURL = "https://api.mailersend.com"

// MailerSendSender sends emails via the MailerSend v1 REST API. MailerSend
// trial accounts allow only one recipient per API call, so each message
// carries exactly one To entry; the fan-out above this sender already
// issues one call per recipient.
type MailerSendSender struct {
	apiKey     string
	baseURL    string
	fromEmail  string
	fromName   string
	httpClient *http.Client
	logger     *logging.Logger
}

// MailerSendConfig holds configuration for MailerSend.
type MailerSendConfig struct {
	APIKey    string
	BaseURL   string // override for tests; defaults to the public API
	FromEmail string
	FromName  string
}

// NewMailerSendSender creates a new MailerSend email sender.
func NewMailerSendSender(cfg MailerSendConfig, logger *logging.Logger) *MailerSendSender {
	if cfg.APIKey == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultMailerSendBaseURL
	}
	return &MailerSendSender{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		fromEmail:  cfg.FromEmail,
		fromName:   cfg.FromName,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

type mailerSendParty struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type mailerSendRequest struct {
	From    mailerSendParty   `json:"from"`
	To      []mailerSendParty `json:"to"`
	Subject string            `json:"subject"`
	Text    string            `json:"text"`
	HTML    string            `json:"html,omitempty"`
	ReplyTo *mailerSendParty  `json:"reply_to,omitempty"`
}

// Send sends an email via MailerSend.
func (s *MailerSendSender) Send(ctx context.Context, msg EmailMessage) error {
	payload := mailerSendRequest{
		From:    mailerSendParty{Email: s.fromEmail, Name: s.fromName},
		To:      []mailerSendParty{{Email: msg.To, Name: msg.ToName}},
		Subject: msg.Subject,
		Text:    msg.Body,
		HTML:    msg.HTML,
	}
	if msg.ReplyTo != "" {
		payload.ReplyTo = &mailerSendParty{Email: msg.ReplyTo, Name: msg.ReplyToName}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("notify: marshal mailersend request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/email", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notify: build mailersend request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Error("mailersend send failed", "error", err, "to", msg.To)
		return fmt.Errorf("notify: mailersend send failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		// The error body is the only diagnostic MailerSend gives us.
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		s.logger.Error("mailersend returned error status", "status", resp.StatusCode, "to", msg.To)
		return &ProviderError{Provider: "mailersend", StatusCode: resp.StatusCode, Detail: string(detail)}
	}

	s.logger.Info("email sent via mailersend", "to", msg.To, "subject", msg.Subject, "status", resp.StatusCode)
	return nil
}

// Ensure interface compliance
var _ EmailSender = (*MailerSendSender)(nil)
