// Serverless entrypoint for the contact form: the same lead pipeline as
// cmd/api, packaged as a single API Gateway Lambda for deployments without
// a long-running server.
package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/cleanvent/leadrelay/cmd/mainconfig"
	appconfig "github.com/cleanvent/leadrelay/internal/config"
	"github.com/cleanvent/leadrelay/internal/leads"
	"github.com/cleanvent/leadrelay/internal/notify"
	"github.com/cleanvent/leadrelay/pkg/logging"
)

func main() {
	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)

	recipients, err := notify.ParseRecipients(cfg.LeadRecipients)
	if err != nil {
		logger.Error("invalid LEAD_RECIPIENTS", "error", err)
		panic(err)
	}

	sender, err := mainconfig.BuildEmailSender(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("failed to build email sender", "error", err)
		panic(err)
	}

	notifier := notify.NewNotifier(sender, notify.NotifierConfig{
		Recipients:  recipients,
		SiteName:    cfg.SiteName,
		ResponseSLA: cfg.ResponseSLA,
		SendTimeout: cfg.SendTimeout,
	}, logger)

	lambda.Start(func(ctx context.Context, evt events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		return handle(ctx, notifier, evt)
	})
}

func handle(ctx context.Context, notifier *notify.Notifier, evt events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	method := strings.ToUpper(strings.TrimSpace(evt.RequestContext.HTTP.Method))
	path := strings.TrimSpace(evt.RawPath)
	if path == "" {
		path = strings.TrimSpace(evt.RequestContext.HTTP.Path)
	}

	if path == "/health" || path == "/_health" {
		return jsonResponse(http.StatusOK, map[string]string{"status": "ok"}), nil
	}

	if method != http.MethodPost {
		return jsonResponse(http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"}), nil
	}

	if path != "/api/contact" {
		return jsonResponse(http.StatusNotFound, map[string]string{"error": "Not found"}), nil
	}

	body, err := decodeBody(evt)
	if err != nil {
		return jsonResponse(http.StatusBadRequest, map[string]string{"error": "Invalid request body"}), nil
	}

	var sub leads.Submission
	if err := json.Unmarshal(body, &sub); err != nil {
		return jsonResponse(http.StatusBadRequest, map[string]string{"error": "Invalid request body"}), nil
	}

	result, err := notifier.Notify(ctx, sub)
	if err != nil {
		if errors.Is(err, leads.ErrMissingFields) {
			return jsonResponse(http.StatusBadRequest, map[string]string{"error": "Missing required fields"}), nil
		}
		return jsonResponse(http.StatusInternalServerError, map[string]string{"error": "Failed to send email"}), nil
	}

	if result.OK() {
		return jsonResponse(http.StatusOK, map[string]any{
			"success": true,
			"message": "Emails sent successfully to all recipients",
		}), nil
	}

	failed := result.Failed()
	message := "Failed to send to some recipients"
	if result.AllFailed() {
		message = "Failed to send to all recipients"
	}
	status := http.StatusBadGateway
	var provErr *notify.ProviderError
	if errors.As(failed[0].Err, &provErr) && provErr.StatusCode >= 400 {
		status = provErr.StatusCode
	}
	return jsonResponse(status, map[string]any{
		"error":   "Email provider error",
		"details": failed[0].Err.Error(),
		"message": message,
	}), nil
}

func decodeBody(evt events.APIGatewayV2HTTPRequest) ([]byte, error) {
	if !evt.IsBase64Encoded {
		return []byte(evt.Body), nil
	}
	decoded, err := base64.StdEncoding.DecodeString(evt.Body)
	if err != nil {
		return nil, err
	}
	return decoded, nil
}

func jsonResponse(status int, body any) events.APIGatewayV2HTTPResponse {
	encoded, _ := json.Marshal(body)
	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Body:       string(encoded),
		Headers:    map[string]string{"content-type": "application/json"},
	}
}
