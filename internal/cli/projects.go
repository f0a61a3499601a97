package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yargevad/filepathx"

	"contexthub/internal/services"
)

var (
	projectsLimit int
	projectsGlob  string
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects with AI contexts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		db, closeDB, err := openDB()
		if err != nil {
			return err
		}
		defer closeDB()

		svc := services.NewServices(db, nil, logger)
		listings, err := svc.Sessions.ListProjects(ctx, projectsLimit)
		if err != nil {
			return err
		}

		// --glob narrows the listing to paths that still exist and match,
		// supporting ** through filepathx.
		var allowed map[string]bool
		if projectsGlob != "" {
			matches, err := filepathx.Glob(projectsGlob)
			if err != nil {
				return fmt.Errorf("bad glob %q: %w", projectsGlob, err)
			}
			allowed = make(map[string]bool, len(matches))
			for _, m := range matches {
				allowed[m] = true
			}
		}

		shown := 0
		for _, listing := range listings {
			if allowed != nil && !allowed[listing.ProjectPath] {
				continue
			}
			fmt.Printf("%s\n", listing.ProjectName)
			fmt.Printf("  path: %s\n", listing.ProjectPath)
			fmt.Printf("  AIs: %d configured\n", listing.AICount)
			fmt.Printf("  last active: %s\n", listing.LastAccessed.Format("2006-01-02 15:04:05"))
			shown++
		}
		if shown == 0 {
			fmt.Println("No projects with AI contexts")
		}
		return nil
	},
}

func init() {
	projectsCmd.Flags().IntVarP(&projectsLimit, "limit", "l", 20, "maximum projects to list")
	projectsCmd.Flags().StringVar(&projectsGlob, "glob", "", "only list projects whose path matches this glob (supports **)")
	rootCmd.AddCommand(projectsCmd)
}
