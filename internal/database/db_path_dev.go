//go:build !prod

package database

// GetDefaultDBPath returns the fallback database location when no --db flag
// or CONTEXTHUB_DB is set. Dev builds keep it in the working directory so
// the file is easy to inspect.
func GetDefaultDBPath() string {
	return "contexthub.db"
}

func IsDevelopment() bool {
	return true
}
