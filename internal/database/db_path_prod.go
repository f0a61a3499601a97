//go:build prod

package database

import (
	"log"
	"os"
	"path/filepath"
)

// GetDefaultDBPath returns the fallback database location when no --db flag
// or CONTEXTHUB_DB is set. Prod builds keep it under the user's config
// directory; if that directory cannot be prepared the working directory is
// used so the broker still starts.
func GetDefaultDBPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Printf("user config dir unavailable (%v), using working directory", err)
		return "contexthub.db"
	}

	appDir := filepath.Join(configDir, "contexthub")
	if err := os.MkdirAll(appDir, 0755); err != nil {
		log.Printf("cannot create %s (%v), using working directory", appDir, err)
		return "contexthub.db"
	}

	return filepath.Join(appDir, "contexthub.db")
}

func IsDevelopment() bool {
	return false
}
