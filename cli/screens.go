package cli

import (
	"github.com/mobile-next/screenlocator/commands"
	"github.com/spf13/cobra"
)

var screensCmd = &cobra.Command{
	Use:     "screens",
	Short:   "List screens and their bounds",
	Long:    `Lists every screen reported by the configured screen provider and marks the target screen.`,
	Args:    cobra.NoArgs,
	PreRunE: setupSession,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printResponse(commands.ScreensCommand())
	},
}

func init() {
	rootCmd.AddCommand(screensCmd)
}
