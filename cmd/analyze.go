package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [project]",
		Short: "Analyze prospect communication for a project",
		Long: `Run the full analysis for one project: spreadsheet records, mailbox
traffic, stale-thread detection, per-prospect deep dives and an overall
narrative summary.

Without an argument the known projects (spreadsheet tabs) are listed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			rt, err := buildRuntime(ctx)
			if err != nil {
				return fmt.Errorf("failed to set up agent: %w", err)
			}
			defer rt.close(ctx)

			if len(args) == 0 {
				projects := rt.agent.Projects(ctx)
				if len(projects) == 0 {
					return fmt.Errorf("no projects found; configure the spreadsheet or name a project to analyze")
				}
				cmd.Println("Known projects:")
				cmd.Println("- " + strings.Join(projects, "\n- "))
				return nil
			}

			report, err := rt.agent.AnalyzeProject(ctx, args[0])
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}
			cmd.Print(report.Render())
			return nil
		},
	}
}
