package cli

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/mobile-next/screenlocator/commands"
	"github.com/mobile-next/screenlocator/config"
	"github.com/mobile-next/screenlocator/utils"
	"github.com/spf13/cobra"
)

const version = "dev"

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "screenlocator",
	Short: "Locate patterns and text on screen",
	Long:  `Resolves screen regions, finds image and text patterns inside them, and reads text around matches.`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func initConfig() {
	utils.SetVerbose(verbose)
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the config file (default $SCREENLOCATOR_CONFIG or ~/.screenlocator/config.ini)")
}

// Execute runs the root command
func Execute() error {
	// enable microseconds in logs
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	return rootCmd.Execute()
}

// setupSession loads the config file and installs the session used by
// commands that look at the screen.
func setupSession(cmd *cobra.Command, args []string) error {
	loaded, err := config.LoadDotEnv(".env")
	if err != nil {
		return err
	}
	if loaded {
		utils.Verbose("Loaded environment variables from .env")
	}

	path := configPath
	if path == "" {
		path = os.Getenv(config.EnvConfig)
	}
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	utils.Verbose("Loaded config from %s", path)
	return commands.Setup(cfg)
}

// printJson is a helper function to print JSON responses
func printJson(data interface{}) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(jsonData))
}

// printResponse prints a command response and turns a failed one into an error
func printResponse(response *commands.CommandResponse) error {
	printJson(response)
	if response.Status == "error" {
		return fmt.Errorf("%s", response.Error)
	}
	return nil
}
