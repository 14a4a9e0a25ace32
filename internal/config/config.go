package config

import "os"

type Config struct {
	Port          string
	DatabaseDSN   string
	SessionSecret string

	// Messaging provider credentials. No defaults: a blank value means
	// dispatch is unconfigured and send attempts fail with an error.
	TwilioAccountSID string
	TwilioAuthToken  string
	WhatsAppSender   string

	// PublicBaseURL is prepended to /temp_invoices/<file> to build the
	// media URL handed to the provider.
	PublicBaseURL string

	InvoiceDir string
	BackupDir  string

	AdminUsername string
	AdminPassword string
}

// Load reads configuration from the environment. Precedence:
// explicit env var > .env file (if loaded by the caller) > default.
func Load() Config {
	return Config{
		Port:             getEnv("PORT", "8080"),
		DatabaseDSN:      getEnv("DATABASE_DSN", "data/business.db"),
		SessionSecret:    getEnv("SESSION_SECRET", "dev-session-secret"),
		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		WhatsAppSender:   os.Getenv("WHATSAPP_SENDER"),
		PublicBaseURL:    getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		InvoiceDir:       getEnv("INVOICE_DIR", "temp_invoices"),
		BackupDir:        getEnv("BACKUP_DIR", "backups"),
		AdminUsername:    getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:    os.Getenv("ADMIN_PASSWORD"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
