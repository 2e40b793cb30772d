package cmd

import (
	"bufio"
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mzafir/hawk-ai-agent/internal/agent"
)

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat interactively about prospect communication",
		Long: `Start an interactive session: load a project and its mailbox traffic,
then ask questions like "what is stuck?" or "who is responsible for
TUSD?". Type "help" for the command list.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			rt, err := buildRuntime(ctx)
			if err != nil {
				return fmt.Errorf("failed to set up agent: %w", err)
			}
			defer rt.close(ctx)

			session := agent.NewSession(rt.agent)
			cmd.Println(`Hawk is ready. Type "help" for commands, "quit" to leave.`)

			scanner := bufio.NewScanner(cmd.InOrStdin())
			cmd.Print("> ")
			for scanner.Scan() {
				resp := session.Handle(ctx, agent.ParseCommand(scanner.Text()))
				if resp.Text != "" {
					cmd.Println(resp.Text)
				}
				if resp.Quit {
					return nil
				}
				cmd.Print("> ")
			}
			return scanner.Err()
		},
	}
}
