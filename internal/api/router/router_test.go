package router

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cleanvent/leadrelay/internal/http/handlers"
	"github.com/cleanvent/leadrelay/internal/notify"
	"github.com/cleanvent/leadrelay/pkg/logging"
)

type okSender struct{}

func (okSender) Send(ctx context.Context, msg notify.EmailMessage) error { return nil }

func testRouter() http.Handler {
	notifier := notify.NewNotifier(okSender{}, notify.NotifierConfig{
		Recipients: []notify.Recipient{{Email: "omri@example.com", Name: "Omri"}},
	}, nil)
	return New(&Config{
		Logger:         logging.Default(),
		ContactHandler: handlers.NewContactHandler(notifier, nil, nil),
	})
}

func TestRouterHealth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	testRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRouterContactPost(t *testing.T) {
	body := []byte(`{"name":"John","email":"john@example.com","service":"Air Duct Cleaning"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	testRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouterContactRejectsNonPost(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		req := httptest.NewRequest(method, "/api/contact", nil)
		rec := httptest.NewRecorder()

		testRouter().ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s: expected 405, got %d", method, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Method not allowed") {
			t.Errorf("%s: expected method-not-allowed body, got %s", method, rec.Body.String())
		}
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()

	testRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRouterGeoBlockApplies(t *testing.T) {
	notifier := notify.NewNotifier(okSender{}, notify.NotifierConfig{
		Recipients: []notify.Recipient{{Email: "omri@example.com"}},
	}, nil)
	r := New(&Config{
		ContactHandler:      handlers.NewContactHandler(notifier, nil, nil),
		GeoAllowedCountries: []string{"US"},
		GeoBlockedPath:      "/blocked.html",
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Vercel-IP-Country", "DE")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302 geo redirect, got %d", rec.Code)
	}
}
