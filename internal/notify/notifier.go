package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cleanvent/leadrelay/internal/leads"
	"github.com/cleanvent/leadrelay/pkg/logging"
)

const defaultSendTimeout = 10 * time.Second

// Notifier fans one valid lead out to every configured recipient through an
// EmailSender and reports per-recipient outcomes. Recipients are contacted
// independently and concurrently; one failed delivery never blocks or hides
// the others.
type Notifier struct {
	sender      EmailSender
	recipients  []Recipient
	siteName    string
	responseSLA string
	sendTimeout time.Duration
	logger      *logging.Logger
}

// NotifierConfig holds construction-time configuration for the Notifier.
// The recipient list is immutable for the lifetime of the process.
type NotifierConfig struct {
	Recipients  []Recipient
	SiteName    string
	ResponseSLA string
	SendTimeout time.Duration
}

// NewNotifier creates a lead notifier.
func NewNotifier(sender EmailSender, cfg NotifierConfig, logger *logging.Logger) *Notifier {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.SiteName == "" {
		cfg.SiteName = "CleanVent NYC"
	}
	if cfg.ResponseSLA == "" {
		cfg.ResponseSLA = "2 hours"
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = defaultSendTimeout
	}
	return &Notifier{
		sender:      sender,
		recipients:  cfg.Recipients,
		siteName:    cfg.SiteName,
		responseSLA: cfg.ResponseSLA,
		sendTimeout: cfg.SendTimeout,
		logger:      logger,
	}
}

// DeliveryOutcome records the result of one recipient's delivery attempt.
type DeliveryOutcome struct {
	Recipient Recipient
	Err       error
}

// Succeeded reports whether this recipient was notified.
func (o DeliveryOutcome) Succeeded() bool {
	return o.Err == nil
}

// NotificationResult aggregates the outcomes of one fan-out batch, in
// recipient-list order.
type NotificationResult struct {
	Outcomes []DeliveryOutcome
}

// OK reports whether every recipient was notified.
func (r *NotificationResult) OK() bool {
	for _, o := range r.Outcomes {
		if !o.Succeeded() {
			return false
		}
	}
	return true
}

// Failed returns the outcomes that did not succeed, in recipient-list order.
func (r *NotificationResult) Failed() []DeliveryOutcome {
	var failed []DeliveryOutcome
	for _, o := range r.Outcomes {
		if !o.Succeeded() {
			failed = append(failed, o)
		}
	}
	return failed
}

// AllFailed reports whether no recipient was reached at all.
func (r *NotificationResult) AllFailed() bool {
	return len(r.Outcomes) > 0 && len(r.Failed()) == len(r.Outcomes)
}

// Notify validates the submission and, if valid, sends one email per
// configured recipient. It returns leads.ErrMissingFields before any network
// activity when a required field is absent. Otherwise it waits for every
// delivery attempt to settle and returns the full ordered outcome list;
// sending twice with the same input sends every email twice, there is no
// dedup.
func (n *Notifier) Notify(ctx context.Context, sub leads.Submission) (*NotificationResult, error) {
	if err := sub.Validate(); err != nil {
		return nil, err
	}

	subject, text, html := leadMessage(sub, n.siteName, n.responseSLA)

	outcomes := make([]DeliveryOutcome, len(n.recipients))
	var wg sync.WaitGroup
	for i, rcpt := range n.recipients {
		wg.Add(1)
		go func(i int, rcpt Recipient) {
			defer wg.Done()
			outcomes[i] = DeliveryOutcome{
				Recipient: rcpt,
				Err:       n.deliver(ctx, rcpt, sub, subject, text, html),
			}
		}(i, rcpt)
	}
	wg.Wait()

	result := &NotificationResult{Outcomes: outcomes}
	if failed := result.Failed(); len(failed) > 0 {
		n.logger.Error("lead notification incomplete",
			"recipients", len(n.recipients),
			"failed", len(failed),
			"first_error", failed[0].Err,
		)
	} else {
		n.logger.Info("lead notification delivered", "recipients", len(n.recipients), "service", sub.Service)
	}
	return result, nil
}

// deliver sends to a single recipient with its own timeout so one hung
// provider call cannot stall the batch. A panicking sender is converted
// into a failed outcome; it must never take down the sibling deliveries.
func (n *Notifier) deliver(ctx context.Context, rcpt Recipient, sub leads.Submission, subject, text, html string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("notify: sender panicked: %v", r)
		}
	}()

	sendCtx, cancel := context.WithTimeout(ctx, n.sendTimeout)
	defer cancel()

	msg := EmailMessage{
		To:          rcpt.Email,
		ToName:      rcpt.Name,
		Subject:     subject,
		Body:        text,
		HTML:        html,
		ReplyTo:     sub.Email,
		ReplyToName: sub.Name,
	}
	if err := n.sender.Send(sendCtx, msg); err != nil {
		n.logger.Error("lead delivery failed", "to", rcpt.Email, "error", err)
		return err
	}
	return nil
}
