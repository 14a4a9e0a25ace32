package config

import (
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// IsPostgresDSN reports whether the DSN selects the postgres backend.
// Anything else is treated as a sqlite file path.
func IsPostgresDSN(dsn string) bool {
	lower := strings.ToLower(strings.TrimSpace(dsn))
	return strings.HasPrefix(lower, "postgres://") ||
		strings.HasPrefix(lower, "postgresql://") ||
		strings.Contains(lower, "host=")
}

// InitDB opens the store selected by the DSN. For the sqlite backend the
// parent directory is created if missing so a fresh checkout boots.
func InitDB(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{TranslateError: true}

	if IsPostgresDSN(dsn) {
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	if dir := filepath.Dir(dsn); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return gorm.Open(sqlite.Open(dsn), cfg)
}
