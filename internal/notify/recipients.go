package notify

import (
	"errors"
	"fmt"
	"net/mail"
)

// Recipient is one configured destination that must be informed of every
// valid lead.
type Recipient struct {
	Email string
	Name  string
}

// ErrNoRecipients is returned when the configured recipient list is empty
var ErrNoRecipients = errors.New("no lead recipients configured")

// ParseRecipients parses a comma-separated recipient list such as
// "Omri <omri@example.com>, ops@example.com". Order is preserved; it is the
// order deliveries are reported in.
func ParseRecipients(raw string) ([]Recipient, error) {
	if raw == "" {
		return nil, ErrNoRecipients
	}
	addrs, err := mail.ParseAddressList(raw)
	if err != nil {
		return nil, fmt.Errorf("notify: parse recipient list: %w", err)
	}
	recipients := make([]Recipient, 0, len(addrs))
	for _, a := range addrs {
		recipients = append(recipients, Recipient{Email: a.Address, Name: a.Name})
	}
	if len(recipients) == 0 {
		return nil, ErrNoRecipients
	}
	return recipients, nil
}
