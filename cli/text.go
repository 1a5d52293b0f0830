package cli

import (
	"github.com/mobile-next/screenlocator/commands"
	"github.com/mobile-next/screenlocator/locator"
	"github.com/spf13/cobra"
)

var textCmd = &cobra.Command{
	Use:   "text",
	Short: "Read text from the screen",
	Long: `Reads text from the search region, or from a zone next to a match when --near is given.
Zones are "region" or "<left|right|above|below> = <pixels>".`,
	Args:    cobra.NoArgs,
	PreRunE: setupSession,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := commands.ReadTextRequest{
			Locator: textLocator,
			Index:   textIndex,
			Zone:    textZone,
		}
		return printResponse(commands.ReadTextCommand(req))
	},
}

func init() {
	rootCmd.AddCommand(textCmd)

	textCmd.Flags().StringVar(&textLocator, "near", "", "read around the match of this locator instead of the search region")
	textCmd.Flags().IntVar(&textIndex, "index", 0, "use the n-th match of --near in reading order")
	textCmd.Flags().StringVar(&textZone, "zone", locator.WholeRegion, `zone to read, "region" or "<side> = <pixels>"`)
}
