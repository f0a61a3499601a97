package cli

import (
	"fmt"
	"os"
	"os/user"
	"strings"

	"github.com/spf13/cobra"

	"contexthub/internal/services"
)

var (
	clearProject string
	clearAI      string
	clearYes     bool
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear AI context for a project",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if !clearYes {
			return fmt.Errorf("refusing to clear without --yes")
		}

		db, closeDB, err := openDB()
		if err != nil {
			return err
		}
		defer closeDB()

		svc := services.NewServices(db, nil, logger)

		if strings.EqualFold(clearAI, "all") {
			results, err := svc.Sessions.ClearAllAIContexts(ctx, clearProject, currentActor())
			for _, res := range results {
				if res.Cleared {
					fmt.Printf("cleared %s\n", res.AIName)
				} else {
					fmt.Printf("FAILED  %s: %s\n", res.AIName, res.Error)
				}
			}
			return err
		}

		if err := svc.Sessions.ClearAIContext(ctx, clearAI, clearProject, currentActor()); err != nil {
			return err
		}
		fmt.Printf("cleared %s context for this project\n", clearAI)
		return nil
	},
}

func currentActor() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}

func init() {
	clearCmd.Flags().StringVarP(&clearProject, "project", "p", ".", "project directory")
	clearCmd.Flags().StringVarP(&clearAI, "ai", "a", "", "AI to clear, or \"all\"")
	clearCmd.Flags().BoolVar(&clearYes, "yes", false, "confirm the clear")
	_ = clearCmd.MarkFlagRequired("ai")
	rootCmd.AddCommand(clearCmd)
}
