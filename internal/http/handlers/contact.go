package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/cleanvent/leadrelay/internal/leads"
	"github.com/cleanvent/leadrelay/internal/notify"
	"github.com/cleanvent/leadrelay/internal/observability/metrics"
	"github.com/cleanvent/leadrelay/pkg/logging"
)

// ContactHandler handles contact-form lead submissions.
type ContactHandler struct {
	notifier *notify.Notifier
	metrics  *metrics.LeadMetrics
	logger   *logging.Logger
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(notifier *notify.Notifier, m *metrics.LeadMetrics, logger *logging.Logger) *ContactHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &ContactHandler{
		notifier: notifier,
		metrics:  m,
		logger:   logger,
	}
}

type contactResponse struct {
	Success bool   `json:"success,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Details string `json:"details,omitempty"`
}

// Submit handles POST /api/contact requests.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var sub leads.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		h.logger.Error("failed to decode contact request", "error", err)
		h.metrics.ObserveSubmission("rejected")
		writeJSON(w, http.StatusBadRequest, contactResponse{Error: "Invalid request body"})
		return
	}

	leadID := uuid.NewString()
	start := time.Now()

	result, err := h.notifier.Notify(r.Context(), sub)
	if err != nil {
		if errors.Is(err, leads.ErrMissingFields) {
			h.metrics.ObserveSubmission("rejected")
			writeJSON(w, http.StatusBadRequest, contactResponse{Error: "Missing required fields"})
			return
		}
		h.logger.Error("lead notification failed", "error", err, "lead_id", leadID)
		h.metrics.ObserveSubmission("failed")
		writeJSON(w, http.StatusInternalServerError, contactResponse{Error: "Failed to send email"})
		return
	}

	h.metrics.ObserveNotifyLatency(time.Since(start).Seconds())
	for _, o := range result.Outcomes {
		if o.Succeeded() {
			h.metrics.ObserveDelivery("ok")
		} else {
			h.metrics.ObserveDelivery("error")
		}
	}

	if result.OK() {
		h.logger.Info("lead relayed", "lead_id", leadID, "service", sub.Service, "recipients", len(result.Outcomes))
		h.metrics.ObserveSubmission("sent")
		writeJSON(w, http.StatusOK, contactResponse{
			Success: true,
			Message: "Emails sent successfully to all recipients",
		})
		return
	}

	failed := result.Failed()
	message := "Failed to send to some recipients"
	status := "partial"
	if result.AllFailed() {
		message = "Failed to send to all recipients"
		status = "failed"
	}
	h.logger.Error("lead relay incomplete", "lead_id", leadID, "failed", len(failed), "total", len(result.Outcomes))
	h.metrics.ObserveSubmission(status)

	writeJSON(w, statusForOutcome(failed[0]), contactResponse{
		Error:   "Email provider error",
		Details: failed[0].Err.Error(),
		Message: message,
	})
}

// statusForOutcome echoes the first failing provider's HTTP status when it
// carried one, otherwise reports a bad gateway.
func statusForOutcome(o notify.DeliveryOutcome) int {
	var provErr *notify.ProviderError
	if errors.As(o.Err, &provErr) && provErr.StatusCode >= 400 {
		return provErr.StatusCode
	}
	return http.StatusBadGateway
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
