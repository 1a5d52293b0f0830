package cli

import (
	"strings"

	"github.com/mobile-next/screenlocator/commands"
	"github.com/spf13/cobra"
)

func waitRequest(cmd *cobra.Command, args []string) commands.WaitRequest {
	req := commands.WaitRequest{
		Locator: strings.Join(args, " "),
		Forever: waitForever,
		OffsetX: offsetX,
		OffsetY: offsetY,
	}
	if cmd.Flags().Changed("timeout") {
		req.Timeout = &waitTimeout
	}
	return req
}

var waitCmd = &cobra.Command{
	Use:   "wait [locator]",
	Short: "Wait for a pattern to appear in the search region",
	Long: `Rescans the search region at the configured scan rate until the pattern shows up.
Without --timeout the recognition timeout from the config file is used. --forever never gives up.
The match becomes the "match" anchor for later region commands.`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: setupSession,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printResponse(commands.WaitCommand(waitRequest(cmd, args)))
	},
}

var vanishCmd = &cobra.Command{
	Use:   "vanish [locator]",
	Short: "Wait for a pattern to disappear from the search region",
	Long: `Rescans the search region at the configured scan rate until the pattern is no longer found.
Fails when the pattern is still visible once the timeout runs out.`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: setupSession,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printResponse(commands.VanishCommand(waitRequest(cmd, args)))
	},
}

func init() {
	rootCmd.AddCommand(waitCmd)
	rootCmd.AddCommand(vanishCmd)

	for _, cmd := range []*cobra.Command{waitCmd, vanishCmd} {
		cmd.Flags().Float64Var(&waitTimeout, "timeout", 0, "seconds to keep rescanning, 0 scans once")
		cmd.Flags().BoolVar(&waitForever, "forever", false, "keep rescanning until the condition holds")
	}

	waitCmd.Flags().IntVar(&offsetX, "offset-x", 0, "horizontal offset of the target point from the match center")
	waitCmd.Flags().IntVar(&offsetY, "offset-y", 0, "vertical offset of the target point from the match center")
}
