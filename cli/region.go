package cli

import (
	"strings"

	"github.com/mobile-next/screenlocator/commands"
	"github.com/spf13/cobra"
)

var regionCmd = &cobra.Command{
	Use:   "region",
	Short: "Search region operations",
	Long:  `Set, show and reset the rectangle that pattern searches are confined to.`,
}

var regionSetCmd = &cobra.Command{
	Use:   "set [anchor]",
	Short: "Confine searches to a rectangle derived from an anchor",
	Long: `Resolves the anchor against the live screen layout and makes the result the search region.
Anchors are "screen <n>", "active" (the focused window), "app:<name>" and "match" (the last match).
With --offsets "dx, dy, dw, dh" the anchor rectangle is shifted and resized before it is used.

Every invocation starts a fresh session, so the region only applies to this run. To keep a
region across calls, start "screenlocator server start" and send region_set followed by the
searches over the same JSON-RPC connection.`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: setupSession,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := commands.RegionSetRequest{
			Anchor:  strings.Join(args, " "),
			Offsets: regionOffsets,
		}
		return printResponse(commands.RegionSetCommand(req))
	},
}

var regionGetCmd = &cobra.Command{
	Use:     "get",
	Short:   "Show the active search region",
	Args:    cobra.NoArgs,
	PreRunE: setupSession,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printResponse(commands.RegionGetCommand())
	},
}

var regionResetCmd = &cobra.Command{
	Use:     "reset",
	Short:   "Search the whole target screen again",
	Args:    cobra.NoArgs,
	PreRunE: setupSession,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printResponse(commands.RegionResetCommand())
	},
}

var targetCmd = &cobra.Command{
	Use:     "target [screen]",
	Short:   "Select the screen searches default to",
	Long:    `Selects the target screen by index, e.g. "1" or "Screen 1".`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: setupSession,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := commands.TargetScreenRequest{Screen: strings.Join(args, " ")}
		return printResponse(commands.TargetScreenCommand(req))
	},
}

func init() {
	rootCmd.AddCommand(regionCmd)
	rootCmd.AddCommand(targetCmd)

	// add region subcommands
	regionCmd.AddCommand(regionSetCmd)
	regionCmd.AddCommand(regionGetCmd)
	regionCmd.AddCommand(regionResetCmd)

	regionSetCmd.Flags().StringVar(&regionOffsets, "offsets", "", `offsets applied to the anchor rectangle, "dx, dy, dw, dh"`)
}
