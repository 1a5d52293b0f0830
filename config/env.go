package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by ApplyEnv. EnvConfig is read by the CLI to
// pick the config file.
const (
	EnvConfig       = "SCREENLOCATOR_CONFIG"
	EnvSnapshot     = "SCREENLOCATOR_SNAPSHOT"
	EnvLayout       = "SCREENLOCATOR_LAYOUT"
	EnvAgent        = "SCREENLOCATOR_AGENT"
	EnvImageLibrary = "SCREENLOCATOR_IMAGE_LIBRARY"
	EnvTargetScreen = "SCREENLOCATOR_TARGET_SCREEN"
	EnvTimeout      = "SCREENLOCATOR_TIMEOUT"
)

// LoadDotEnv adds the variables in a .env file to the environment. Variables
// already set win, and a missing file is not an error.
func LoadDotEnv(path string) (bool, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return false, nil
	}

	if err := godotenv.Load(path); err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return true, nil
}

// ApplyEnv overrides file settings with SCREENLOCATOR_* variables. Paths are
// taken as given.
func (c *Config) ApplyEnv() error {
	if v, ok := os.LookupEnv(EnvSnapshot); ok {
		c.Snapshot.Path = v
	}
	if v, ok := os.LookupEnv(EnvLayout); ok {
		c.Screens.Layout = v
	}
	if v, ok := os.LookupEnv(EnvAgent); ok {
		c.Screens.Agent = v
		c.Screens.Provider = ProviderAgent
	}
	if v, ok := os.LookupEnv(EnvImageLibrary); ok {
		c.Recognition.ImageLibrary = v
	}
	if v, ok := os.LookupEnv(EnvTargetScreen); ok {
		c.Engine.TargetScreen = v
	}
	if v, ok := os.LookupEnv(EnvTimeout); ok {
		timeout, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s '%s': %w", EnvTimeout, v, err)
		}
		c.Recognition.Timeout = timeout
	}
	return nil
}
