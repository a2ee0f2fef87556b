package main

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"

	"github.com/cleanvent/leadrelay/internal/notify"
)

type fakeSender struct {
	calls int
	err   error
}

func (f *fakeSender) Send(ctx context.Context, msg notify.EmailMessage) error {
	f.calls++
	return f.err
}

func testNotifier(sender notify.EmailSender) *notify.Notifier {
	return notify.NewNotifier(sender, notify.NotifierConfig{
		Recipients: []notify.Recipient{{Email: "omri@example.com", Name: "Omri"}},
	}, nil)
}

func contactEvent(method, path, body string) events.APIGatewayV2HTTPRequest {
	evt := events.APIGatewayV2HTTPRequest{
		RawPath: path,
		Body:    body,
	}
	evt.RequestContext.HTTP.Method = method
	return evt
}

func TestHandleHealth(t *testing.T) {
	resp, err := handle(context.Background(), testNotifier(&fakeSender{}), contactEvent(http.MethodGet, "/health", ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestHandleRejectsNonPost(t *testing.T) {
	resp, err := handle(context.Background(), testNotifier(&fakeSender{}), contactEvent(http.MethodGet, "/api/contact", ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.StatusCode)
	}
}

func TestHandleUnknownPath(t *testing.T) {
	resp, _ := handle(context.Background(), testNotifier(&fakeSender{}), contactEvent(http.MethodPost, "/api/other", "{}"))
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestHandleMissingFields(t *testing.T) {
	sender := &fakeSender{}
	resp, _ := handle(context.Background(), testNotifier(sender), contactEvent(http.MethodPost, "/api/contact", `{"name":"John"}`))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if !strings.Contains(resp.Body, "Missing required fields") {
		t.Fatalf("expected missing-fields error, got %s", resp.Body)
	}
	if sender.calls != 0 {
		t.Fatalf("expected zero provider calls, got %d", sender.calls)
	}
}

func TestHandleSuccess(t *testing.T) {
	sender := &fakeSender{}
	body := `{"name":"John Doe","email":"john@example.com","service":"Air Duct Cleaning"}`
	resp, err := handle(context.Background(), testNotifier(sender), contactEvent(http.MethodPost, "/api/contact", body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, resp.Body)
	}
	if sender.calls != 1 {
		t.Fatalf("expected one provider call, got %d", sender.calls)
	}
}

func TestHandleBase64Body(t *testing.T) {
	sender := &fakeSender{}
	raw := `{"name":"John Doe","email":"john@example.com","service":"Air Duct Cleaning"}`
	evt := contactEvent(http.MethodPost, "/api/contact", base64.StdEncoding.EncodeToString([]byte(raw)))
	evt.IsBase64Encoded = true

	resp, _ := handle(context.Background(), testNotifier(sender), evt)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, resp.Body)
	}
}

func TestHandleProviderFailure(t *testing.T) {
	sender := &fakeSender{err: &notify.ProviderError{Provider: "mailersend", StatusCode: http.StatusTooManyRequests}}
	body := `{"name":"John Doe","email":"john@example.com","service":"Air Duct Cleaning"}`
	resp, _ := handle(context.Background(), testNotifier(sender), contactEvent(http.MethodPost, "/api/contact", body))
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected provider status echoed, got %d", resp.StatusCode)
	}
	if !strings.Contains(resp.Body, "Failed to send to all recipients") {
		t.Fatalf("expected total-failure message, got %s", resp.Body)
	}
}
