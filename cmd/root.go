package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the hawk application
var rootCmd = &cobra.Command{
	Use:   "hawk",
	Short: "Analyzes prospect communication for sales projects",
	Long: `hawk joins a project tracking spreadsheet with mailbox traffic to find
prospect threads that have gone quiet: messages that look like they need
a response and have aged past the staleness threshold.

It can run as:
  - A one-shot analysis report (analyze)
  - An interactive chat over the loaded data (chat)`,
	SilenceUsage: true,
}

var (
	// configPath is the optional config file location.
	configPath string

	// logLevel selects the slog level for all commands.
	logLevel string
)

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "hawk version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/hawk/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newChatCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("hawk version %s\n", version)
		},
	}
}
