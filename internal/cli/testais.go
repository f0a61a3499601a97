package cli

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"contexthub/internal/llm"
	"contexthub/internal/llm/provider"
	"contexthub/internal/services"
)

const testPrompt = "Say 'Hello from contexthub' and nothing else."

var testAIsCmd = &cobra.Command{
	Use:   "test-ais",
	Short: "Test connectivity to all configured AIs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		db, closeDB, err := openDB()
		if err != nil {
			return err
		}
		defer closeDB()

		svc := services.NewServices(db, nil, logger)
		registry, err := provider.NewRegistry(ctx, providerConfigs())
		if err != nil {
			return fmt.Errorf("configure providers: %w", err)
		}
		if len(registry) == 0 {
			return fmt.Errorf("no providers configured; set <PROVIDER>_API_KEY or use config set-key")
		}
		router := llm.NewRouter(registry, svc.Contexts, logger)

		// Stateless pings on purpose: connectivity checks must not write
		// into any project's history.
		var mu sync.Mutex
		results := make(map[string]provider.Result)
		g, gctx := errgroup.WithContext(ctx)
		for _, name := range router.Providers() {
			g.Go(func() error {
				res := router.Route(gctx, name, provider.MethodAsk,
					provider.Params{Prompt: testPrompt}, llm.RouteContext{})
				mu.Lock()
				results[name] = res
				mu.Unlock()
				return nil
			})
		}
		_ = g.Wait()

		failed := 0
		for _, name := range router.Providers() {
			res := results[name]
			if res.Failed() {
				failed++
				fmt.Printf("FAIL %-10s %s\n", name, res.Error)
				continue
			}
			content := res.Content
			if len(content) > 100 {
				content = content[:100]
			}
			fmt.Printf("OK   %-10s %s\n", name, content)
		}
		if failed > 0 {
			return fmt.Errorf("%d provider(s) unreachable", failed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(testAIsCmd)
}
