package notify

import "fmt"

// ProviderError reports a non-success response from an email provider's
// API. Detail carries the provider's error body for diagnostics; it never
// contains credentials because senders only capture response payloads.
type ProviderError struct {
	Provider   string
	StatusCode int
	Detail     string
}

func (e *ProviderError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("notify: %s returned status %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("notify: %s returned status %d: %s", e.Provider, e.StatusCode, e.Detail)
}
