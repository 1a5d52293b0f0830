package cli

import (
	"strings"

	"github.com/mobile-next/screenlocator/commands"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Check locator strings without touching the screen",
	Long:  `Parses a locator string and prints its structured form, or the reason it was rejected.`,
}

func newParseCmd(kind, example, short string) *cobra.Command {
	return &cobra.Command{
		Use:     kind + " [value]",
		Short:   short,
		Example: "  screenlocator parse " + kind + " " + example,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := commands.ParseRequest{
				Kind:  kind,
				Value: strings.Join(args, " "),
			}
			return printResponse(commands.ParseCommand(req))
		},
	}
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.AddCommand(newParseCmd("pattern", `"ok.png = 0.9"`, "Parse an image or text locator"))
	parseCmd.AddCommand(newParseCmd("offsets", `"10, -5, 20, 0"`, "Parse region offsets"))
	parseCmd.AddCommand(newParseCmd("scroll", `"down = 3"`, "Parse a scroll gesture"))
	parseCmd.AddCommand(newParseCmd("zone", `"right = 100"`, "Parse a text zone"))
	parseCmd.AddCommand(newParseCmd("screen", `"Screen 1"`, "Parse a screen selector"))
	parseCmd.AddCommand(newParseCmd("anchor", `"app:Notepad"`, "Parse a region anchor"))
	parseCmd.AddCommand(newParseCmd("whitelist", "numeric", "Parse a character whitelist"))
}
