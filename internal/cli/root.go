// Package cli is the administrative surface: thin read/write calls into the
// registry, the store and the router, with no logic of its own.
package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"contexthub/internal/database"
	"contexthub/internal/llm/provider"
	"contexthub/internal/services"
	"contexthub/internal/utils"
)

var (
	logger *zap.Logger

	flagDebug  bool
	flagDBPath string
)

var rootCmd = &cobra.Command{
	Use:   "contexthub",
	Short: "Per-project AI context broker",
	Long: "contexthub keeps durable, resumable conversations between your projects\n" +
		"and external AI providers, and routes requests to them with history attached.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; real deployments configure the environment directly.
		_ = utils.LoadEnv()

		config := zap.NewProductionConfig()
		config.OutputPaths = []string{"stderr"}
		if flagDebug {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "path to the sqlite database (default: per-platform app dir)")
}

// Execute runs the CLI and returns a process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

func openDB() (*gorm.DB, func(), error) {
	path := flagDBPath
	if path == "" {
		path = os.Getenv("CONTEXTHUB_DB")
	}
	db, err := database.Init(database.Config{Path: path})
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	closeFn := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, closeFn, nil
}

// providerConfigs resolves one config per provider that has a key, checking
// the environment first and the OS keyring second.
func providerConfigs() []provider.Config {
	keys := services.NewKeyringService()
	var configs []provider.Config
	for _, name := range provider.Known() {
		apiKey := os.Getenv(strings.ToUpper(name) + "_API_KEY")
		if apiKey == "" {
			if stored, err := keys.GetAPIKey(name); err == nil {
				apiKey = stored
			}
		}
		if apiKey == "" {
			continue
		}
		configs = append(configs, provider.Config{
			Name:    name,
			APIKey:  apiKey,
			Model:   os.Getenv(strings.ToUpper(name) + "_MODEL"),
			Timeout: 60 * time.Second,
		})
	}
	return configs
}
