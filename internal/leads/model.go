package leads

import "strings"

// Submission represents a contact-form lead as posted by the website.
// Phone and Message are optional and passed through to recipients verbatim.
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Service string `json:"service"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message,omitempty"`
}

// Validate checks the required fields. A submission is valid iff name,
// email and service are all present and non-empty. Email format is left to
// the form layer.
func (s *Submission) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrMissingFields
	}
	if strings.TrimSpace(s.Email) == "" {
		return ErrMissingFields
	}
	if strings.TrimSpace(s.Service) == "" {
		return ErrMissingFields
	}
	return nil
}
