package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"contexthub/internal/services"
)

var statusProject string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show AI session status for a project",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		db, closeDB, err := openDB()
		if err != nil {
			return err
		}
		defer closeDB()

		svc := services.NewServices(db, nil, logger)
		info, err := svc.Sessions.GetProjectInfo(ctx, statusProject)
		if err != nil {
			return err
		}
		if info == nil {
			fmt.Println("No AI sessions found for this project")
			return nil
		}

		fmt.Printf("Project: %s\n", info.ProjectPath)
		fmt.Printf("Project ID: %s\n", info.ProjectID)
		fmt.Printf("Created: %s\n", info.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Printf("Last Active: %s\n", info.LastAccessed.Format("2006-01-02 15:04:05"))
		fmt.Printf("Total Clears: %d\n", info.TotalClears)

		fmt.Println("\nAI Sessions:")
		for _, sess := range info.AISessions {
			state := "cleared"
			if sess.Active {
				state = "active"
			}
			fmt.Printf("  %-10s %s (%s)\n", sess.AIName, sess.SessionID, state)
			if sess.LastActive != nil {
				fmt.Printf("             last active %s\n", sess.LastActive.Format("2006-01-02 15:04:05"))
			}
		}
		return nil
	},
}

func init() {
	statusCmd.Flags().StringVarP(&statusProject, "project", "p", ".", "project directory")
	rootCmd.AddCommand(statusCmd)
}
