package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"contexthub/internal/cache"
	"contexthub/internal/llm"
	"contexthub/internal/llm/provider"
	"contexthub/internal/protocol"
	"contexthub/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve protocol requests on stdin/stdout",
	Long: "Reads one JSON request envelope per line from stdin and writes one\n" +
		"response envelope per line to stdout. Logs go to stderr.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		db, closeDB, err := openDB()
		if err != nil {
			return err
		}
		defer closeDB()

		// The cache is advisory: if Redis is absent we serve straight from
		// the durable log.
		var contextCache cache.ContextCache
		if url := os.Getenv("REDIS_URL"); url != "" {
			redisCache, err := cache.NewRedisCache(url, logger)
			if err != nil {
				return fmt.Errorf("configure redis cache: %w", err)
			}
			if err := redisCache.Ping(ctx); err != nil {
				logger.Warn("redis unreachable, running without cache", zap.Error(err))
			} else {
				contextCache = redisCache
				defer redisCache.Close()
			}
		}

		svc := services.NewServices(db, contextCache, logger)

		registry, err := provider.NewRegistry(ctx, providerConfigs())
		if err != nil {
			return fmt.Errorf("configure providers: %w", err)
		}
		router := llm.NewRouter(registry, svc.Contexts, logger)
		logger.Info("serving", zap.Strings("providers", router.Providers()))

		server := protocol.NewServer(router, svc.Sessions, svc.Contexts, logger)
		return server.Run(ctx, os.Stdin, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
