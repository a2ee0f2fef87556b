package config

import (
	"os"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	PublicBaseURL string
	LogLevel      string

	// Email provider selection: mailersend, sendgrid, ses, resend, or stub.
	EmailProvider string

	// Outbound message identity and content knobs.
	FromEmail      string
	FromName       string
	SiteName       string
	ResponseSLA    string
	LeadRecipients string // "Name <addr>" pairs, comma separated
	SendTimeout    time.Duration

	// Provider credentials.
	MailerSendAPIKey  string
	MailerSendBaseURL string
	SendGridAPIKey    string
	ResendAPIKey      string

	// AWS (SES provider).
	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string

	// HTTP surface.
	CORSAllowedOrigins  []string
	GeoAllowedCountries []string
	GeoBlockedPath      string

	// Staging protection (basic auth scoped to the staging host).
	StagingHost     string
	StagingUser     string
	StagingPassword string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),

		EmailProvider: strings.ToLower(strings.TrimSpace(getEnv("EMAIL_PROVIDER", "mailersend"))),

		FromEmail:      getEnv("FROM_EMAIL", "noreply@cleanventnyc.com"),
		FromName:       getEnv("FROM_NAME", "CleanVent NYC Website"),
		SiteName:       getEnv("SITE_NAME", "CleanVent NYC"),
		ResponseSLA:    getEnv("RESPONSE_SLA", "2 hours"),
		LeadRecipients: getEnv("LEAD_RECIPIENTS", ""),
		SendTimeout:    getEnvAsDuration("SEND_TIMEOUT", 10*time.Second),

		MailerSendAPIKey:  getEnv("MAILERSEND_API_KEY", ""),
		MailerSendBaseURL: getEnv("MAILERSEND_BASE_URL", ""),
		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		ResendAPIKey:      getEnv("RESEND_API_KEY", ""),

		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),

		CORSAllowedOrigins:  getEnvAsList("CORS_ALLOWED_ORIGINS", nil),
		GeoAllowedCountries: getEnvAsList("GEO_ALLOWED_COUNTRIES", []string{"US", "IL"}),
		GeoBlockedPath:      getEnv("GEO_BLOCKED_PATH", "/blocked.html"),

		StagingHost:     getEnv("STAGING_HOST", ""),
		StagingUser:     getEnv("STAGING_USER", ""),
		StagingPassword: getEnv("STAGING_PASSWORD", ""),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsList retrieves a comma-separated environment variable as a slice,
// trimming whitespace and dropping empty entries.
func getEnvAsList(key string, defaultValue []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
