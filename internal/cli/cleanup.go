package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"contexthub/internal/services"
)

var (
	cleanupDays int
	cleanupYes  bool
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete sessions older than the retention window",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if !cleanupYes {
			return fmt.Errorf("this permanently deletes old sessions; rerun with --yes")
		}

		db, closeDB, err := openDB()
		if err != nil {
			return err
		}
		defer closeDB()

		svc := services.NewServices(db, nil, logger)

		// Both sweeps share one cutoff so neither side orphans the other.
		conversations, err := svc.Contexts.CleanupOldSessions(ctx, cleanupDays)
		if err != nil {
			return err
		}
		sessions, err := svc.Sessions.CleanupInactiveSessions(ctx, cleanupDays*24)
		if err != nil {
			return err
		}

		fmt.Printf("removed %d conversations and %d sessions older than %d days\n",
			conversations, sessions, cleanupDays)
		return nil
	},
}

func init() {
	cleanupCmd.Flags().IntVarP(&cleanupDays, "days", "d", 30, "delete sessions older than N days")
	cleanupCmd.Flags().BoolVar(&cleanupYes, "yes", false, "confirm the cleanup")
	rootCmd.AddCommand(cleanupCmd)
}
