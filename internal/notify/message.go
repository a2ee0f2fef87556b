package notify

import (
	"fmt"
	"html"
	"strings"

	"github.com/cleanvent/leadrelay/internal/leads"
)

// leadMessage builds the notification content for one lead. Every recipient
// receives identical content; the reply-to (set by the notifier) points back
// at the submitter so a direct reply reaches the lead.
func leadMessage(sub leads.Submission, siteName, responseSLA string) (subject, text, htmlBody string) {
	subject = fmt.Sprintf("New Lead from %s Website", siteName)

	var tb strings.Builder
	tb.WriteString("New lead received:\n\n")
	fmt.Fprintf(&tb, "Name: %s\n", sub.Name)
	fmt.Fprintf(&tb, "Email: %s\n", sub.Email)
	fmt.Fprintf(&tb, "Service: %s\n", sub.Service)
	if sub.Phone != "" {
		fmt.Fprintf(&tb, "Phone: %s\n", sub.Phone)
	}
	if sub.Message != "" {
		fmt.Fprintf(&tb, "Message: %s\n", sub.Message)
	}
	fmt.Fprintf(&tb, "\nPlease respond within %s.", responseSLA)
	text = tb.String()

	var hb strings.Builder
	fmt.Fprintf(&hb, "<h2>New Lead from %s Website</h2>\n", html.EscapeString(siteName))
	fmt.Fprintf(&hb, "<p><strong>Name:</strong> %s</p>\n", html.EscapeString(sub.Name))
	fmt.Fprintf(&hb, "<p><strong>Email:</strong> %s</p>\n", html.EscapeString(sub.Email))
	fmt.Fprintf(&hb, "<p><strong>Service:</strong> %s</p>\n", html.EscapeString(sub.Service))
	if sub.Phone != "" {
		fmt.Fprintf(&hb, "<p><strong>Phone:</strong> %s</p>\n", html.EscapeString(sub.Phone))
	}
	if sub.Message != "" {
		fmt.Fprintf(&hb, "<p><strong>Message:</strong> %s</p>\n", html.EscapeString(sub.Message))
	}
	hb.WriteString("<hr>\n")
	fmt.Fprintf(&hb, `<p style="color: #666; font-size: 12px;">Please respond within %s.</p>`, html.EscapeString(responseSLA))
	htmlBody = hb.String()

	return subject, text, htmlBody
}
