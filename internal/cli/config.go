package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"contexthub/internal/llm/provider"
	"contexthub/internal/services"
)

var (
	setKeyProvider string
	setKeyValue    string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("%-20s %s\n", "CONTEXTHUB_DB", orNotSet(os.Getenv("CONTEXTHUB_DB")))
		fmt.Printf("%-20s %s\n", "REDIS_URL", orNotSet(os.Getenv("REDIS_URL")))

		keys := services.NewKeyringService()
		for _, name := range provider.Known() {
			envVar := strings.ToUpper(name) + "_API_KEY"
			value := os.Getenv(envVar)
			source := "env"
			if value == "" {
				if stored, err := keys.GetAPIKey(name); err == nil {
					value = stored
					source = "keyring"
				}
			}
			if value == "" {
				fmt.Printf("%-20s not set\n", envVar)
				continue
			}
			fmt.Printf("%-20s %s (%s)\n", envVar, maskKey(value), source)
		}
		return nil
	},
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key",
	Short: "Store an API key for a provider in the OS keyring",
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.ToLower(strings.TrimSpace(setKeyProvider))
		known := false
		for _, candidate := range provider.Known() {
			if candidate == name {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("unknown provider %q (known: %s)", setKeyProvider, strings.Join(provider.Known(), ", "))
		}

		if err := services.NewKeyringService().StoreAPIKey(name, setKeyValue); err != nil {
			return err
		}
		fmt.Printf("stored API key for %s\n", name)
		return nil
	},
}

func maskKey(key string) string {
	if len(key) <= 14 {
		return "..."
	}
	return key[:10] + "..." + key[len(key)-4:]
}

func orNotSet(value string) string {
	if value == "" {
		return "not set"
	}
	return value
}

func init() {
	configSetKeyCmd.Flags().StringVarP(&setKeyProvider, "provider", "a", "", "provider name")
	configSetKeyCmd.Flags().StringVarP(&setKeyValue, "key", "k", "", "API key")
	_ = configSetKeyCmd.MarkFlagRequired("provider")
	_ = configSetKeyCmd.MarkFlagRequired("key")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetKeyCmd)
	rootCmd.AddCommand(configCmd)
}
