package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mobile-next/screenlocator/commands"
	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find [locator]",
	Short: "Find the best match of a pattern in the search region",
	Long: `Finds an image pattern ("ok.png", "ok.png = 0.9") or a text phrase ("Sign in") in the search region.
The match becomes the "match" anchor for later region commands.`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: setupSession,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := commands.FindRequest{
			Locator: strings.Join(args, " "),
			OffsetX: offsetX,
			OffsetY: offsetY,
		}
		return printResponse(commands.FindCommand(req))
	},
}

var findAllCmd = &cobra.Command{
	Use:     "all [locator]",
	Short:   "List every match of a pattern in reading order",
	Args:    cobra.MinimumNArgs(1),
	PreRunE: setupSession,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := commands.FindRequest{
			Locator: strings.Join(args, " "),
			OffsetX: offsetX,
			OffsetY: offsetY,
		}
		return printResponse(commands.FindAllCommand(req))
	},
}

var existsCmd = &cobra.Command{
	Use:     "exists [locator]",
	Short:   "Report whether a pattern is visible in the search region",
	Args:    cobra.MinimumNArgs(1),
	PreRunE: setupSession,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := commands.FindRequest{Locator: strings.Join(args, " ")}
		return printResponse(commands.ExistsCommand(req))
	},
}

var countCmd = &cobra.Command{
	Use:     "count [locator]",
	Short:   "Count the matches of a pattern in the search region",
	Args:    cobra.MinimumNArgs(1),
	PreRunE: setupSession,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := commands.FindRequest{Locator: strings.Join(args, " ")}
		return printResponse(commands.CountCommand(req))
	},
}

var nthCmd = &cobra.Command{
	Use:   "nth [index] [locator]",
	Short: "Pick one match of a pattern by its position in reading order",
	Long: `Orders all matches top to bottom, then left to right, and returns the one at the 1-based index.
The match becomes the "match" anchor for later region commands.`,
	Args:    cobra.MinimumNArgs(2),
	PreRunE: setupSession,
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			response := commands.NewErrorResponse(fmt.Errorf("invalid index '%s', expected a positive integer", args[0]))
			return printResponse(response)
		}

		req := commands.NthRequest{
			Locator: strings.Join(args[1:], " "),
			Index:   index,
			OffsetX: offsetX,
			OffsetY: offsetY,
		}
		return printResponse(commands.NthCommand(req))
	},
}

func init() {
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(existsCmd)
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(nthCmd)

	findCmd.AddCommand(findAllCmd)

	for _, cmd := range []*cobra.Command{findCmd, findAllCmd, nthCmd} {
		cmd.Flags().IntVar(&offsetX, "offset-x", 0, "horizontal offset of the target point from the match center")
		cmd.Flags().IntVar(&offsetY, "offset-y", 0, "vertical offset of the target point from the match center")
	}
}
