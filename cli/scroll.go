package cli

import (
	"strings"

	"github.com/mobile-next/screenlocator/commands"
	"github.com/spf13/cobra"
)

var scrollCmd = &cobra.Command{
	Use:     "scroll [direction = steps]",
	Short:   "Work out where and how far to scroll",
	Long:    `Plans a wheel gesture such as "down = 3" over the search region, or over a match when --over is given.`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: setupSession,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := commands.ScrollRequest{
			Locator: scrollLocator,
			Scroll:  strings.Join(args, " "),
		}
		return printResponse(commands.ScrollCommand(req))
	},
}

func init() {
	rootCmd.AddCommand(scrollCmd)

	scrollCmd.Flags().StringVar(&scrollLocator, "over", "", "scroll over the match of this locator")
}
