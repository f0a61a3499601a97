package utils

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

// LoadEnv loads .env from the project root when running from a checkout,
// falling back to the working directory for installed binaries. A missing
// file is not an error worth stopping for; callers treat this as
// best-effort.
func LoadEnv() error {
	root, err := FindProjectRoot()
	if err != nil {
		root = "."
	}
	return godotenv.Load(filepath.Join(root, ".env"))
}
