package cli

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/mobile-next/screenlocator/commands"
	"github.com/spf13/cobra"
)

var screenshotCmd = &cobra.Command{
	Use:   "screenshot",
	Short: "Save the search region as an image",
	Long: `Crops the current capture to the search region, or to --anchor, and saves it as a PNG or JPEG file.
Useful for cutting new image patterns and for checking where a search will look.`,
	Args:    cobra.NoArgs,
	PreRunE: setupSession,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := commands.ScreenshotRequest{
			Anchor:     screenshotAnchor,
			Format:     screenshotFormat,
			Quality:    screenshotJpegQuality,
			OutputPath: screenshotOutputPath,
		}

		response := commands.ScreenshotCommand(req)

		// Handle stdout output for binary data
		if screenshotOutputPath == "-" && response.Status == "ok" {
			if screenshotResp, ok := response.Data.(commands.ScreenshotResponse); ok && screenshotResp.Data != "" {
				imageBytes, err := base64.StdEncoding.DecodeString(screenshotResp.Data)
				if err != nil {
					return fmt.Errorf("failed to decode image data: %v", err)
				}
				_, err = os.Stdout.Write(imageBytes)
				if err != nil {
					return fmt.Errorf("failed to write to stdout: %v", err)
				}
				return nil
			}
		}

		return printResponse(response)
	},
}

func init() {
	rootCmd.AddCommand(screenshotCmd)

	screenshotCmd.Flags().StringVar(&screenshotAnchor, "anchor", "", `capture this anchor instead of the search region, e.g. "active"`)
	screenshotCmd.Flags().StringVarP(&screenshotOutputPath, "output", "o", "", "Output file path for screenshot (e.g., region.png, or '-' for stdout)")
	screenshotCmd.Flags().StringVarP(&screenshotFormat, "format", "f", "png", "Output format for screenshot (png or jpeg)")
	screenshotCmd.Flags().IntVarP(&screenshotJpegQuality, "quality", "q", 90, "JPEG quality (1-100, only applies if format is jpeg)")
}
