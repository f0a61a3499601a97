package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"contexthub/internal/llm/provider"
	"contexthub/internal/services"
)

var (
	showProject string
	showAI      string
	showLimit   int
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show conversation history for an AI",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		db, closeDB, err := openDB()
		if err != nil {
			return err
		}
		defer closeDB()

		svc := services.NewServices(db, nil, logger)

		ais := []string{showAI}
		if showAI == "all" {
			ais = provider.Known()
		}

		for _, aiName := range ais {
			fmt.Printf("\n%s context\n", aiName)

			// Read-only resolution: inspecting history must not mint sessions.
			sess, err := svc.Sessions.GetOrCreateSession(ctx, aiName, showProject, false)
			if err != nil {
				return err
			}
			if sess == nil {
				fmt.Printf("  no context found for %s\n", aiName)
				continue
			}

			contextValue, err := svc.Contexts.GetContext(ctx, sess.SessionID)
			if err != nil {
				return err
			}
			if contextValue == nil || len(contextValue.Messages) == 0 {
				fmt.Println("  no messages in context")
				continue
			}

			messages := contextValue.Messages
			if showLimit > 0 && len(messages) > showLimit {
				messages = messages[len(messages)-showLimit:]
			}
			for _, msg := range messages {
				content := msg.Content
				if len(content) > 200 {
					content = content[:200] + "..."
				}
				fmt.Printf("  [%s] %s: %s\n", msg.Timestamp.Format("15:04:05"), msg.Role, content)
			}
			fmt.Printf("  total messages: %d\n", len(contextValue.Messages))
		}
		return nil
	},
}

func init() {
	showCmd.Flags().StringVarP(&showProject, "project", "p", ".", "project directory")
	showCmd.Flags().StringVarP(&showAI, "ai", "a", "", "AI to show context for, or \"all\"")
	showCmd.Flags().IntVarP(&showLimit, "limit", "l", 10, "number of messages to show (0 for all)")
	_ = showCmd.MarkFlagRequired("ai")
	rootCmd.AddCommand(showCmd)
}
