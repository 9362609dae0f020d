package config

import (
	"os"
	"strings"
)

// Config holds application configuration. Optional integrations (Stripe,
// Redis, SMTP, Slack) may be left unset; the features they back degrade
// per-request instead of failing startup.
type Config struct {
	Port    string
	AppEnv  string
	SiteURL string

	StripeSecretKey     string
	StripeWebhookSecret string

	RedisURL string

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPass     string
	SMTPFromName string

	SupportEmail         string
	EndorsementEmail     string
	DonationNotifyEmails []string
	SlackBotToken        string
	SlackDonationChannel string
}

func Load() *Config {
	cfg := &Config{
		Port:    getEnv("PORT", "8080"),
		AppEnv:  getEnv("APP_ENV", "development"),
		SiteURL: getEnv("SITE_URL", "http://localhost:3000"),

		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),

		RedisURL: os.Getenv("REDIS_URL"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPass:     os.Getenv("SMTP_PASS"),
		SMTPFromName: getEnv("SMTP_FROM_NAME", "Campaign Team"),

		SupportEmail:         os.Getenv("SUPPORT_EMAIL"),
		EndorsementEmail:     os.Getenv("ENDORSEMENT_EMAIL"),
		SlackBotToken:        os.Getenv("SLACK_BOT_TOKEN"),
		SlackDonationChannel: os.Getenv("SLACK_DONATION_CHANNEL"),
	}

	if raw := os.Getenv("DONATION_NOTIFY_EMAILS"); raw != "" {
		for _, addr := range strings.Split(raw, ",") {
			if addr = strings.TrimSpace(addr); addr != "" {
				cfg.DonationNotifyEmails = append(cfg.DonationNotifyEmails, addr)
			}
		}
	}

	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
