package cli

import (
	"github.com/mobile-next/screenlocator/commands"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Change recognizer settings",
	Long: `Changes the recognition timeout, image library or OCR character whitelist.
Settings last for the session, so this is mostly useful against a running server.`,
	Args:    cobra.NoArgs,
	PreRunE: setupSession,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := commands.SettingsRequest{ImageLibrary: settingsImageLibrary}
		if cmd.Flags().Changed("timeout") {
			req.Timeout = &settingsTimeout
		}
		if cmd.Flags().Changed("whitelist") {
			req.Whitelist = &settingsWhitelist
		}
		return printResponse(commands.SettingsCommand(req))
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)

	settingsCmd.Flags().Float64Var(&settingsTimeout, "timeout", 0, "seconds to keep looking for a pattern")
	settingsCmd.Flags().StringVar(&settingsImageLibrary, "image-library", "", "directory image patterns are loaded from")
	settingsCmd.Flags().StringVar(&settingsWhitelist, "whitelist", "", `OCR whitelist: a preset such as "numeric", literal characters, or "" to clear`)
}
