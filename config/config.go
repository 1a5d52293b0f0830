// Package config loads screenlocator settings from an ini file.
package config

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mobile-next/screenlocator/locator"
	"github.com/mobile-next/screenlocator/recognition"
	"gopkg.in/ini.v1"
)

const (
	ProviderLayout = "layout"
	ProviderAgent  = "agent"

	DefaultTargetScreen = "Screen 0"
	DefaultAgentAddress = "localhost:12010"
)

type Recognition struct {
	Timeout      float64 `ini:"timeout"`
	ScanRate     float64 `ini:"scan_rate"`
	OCR          bool    `ini:"ocr"`
	Language     string  `ini:"language"`
	Whitelist    string  `ini:"whitelist"`
	ImageLibrary string  `ini:"image_library"`
	CacheSize    int     `ini:"cache_size"`
}

type Snapshot struct {
	Path    string `ini:"path"`
	OriginX int    `ini:"origin_x"`
	OriginY int    `ini:"origin_y"`
}

type Screens struct {
	Provider string `ini:"provider"`
	Layout   string `ini:"layout"`
	Agent    string `ini:"agent"`
}

type Engine struct {
	TargetScreen string `ini:"target_screen"`
}

type Config struct {
	Recognition Recognition `ini:"recognition"`
	Snapshot    Snapshot    `ini:"snapshot"`
	Screens     Screens     `ini:"screens"`
	Engine      Engine      `ini:"engine"`
}

func Default() *Config {
	return &Config{
		Recognition: Recognition{
			Timeout:   recognition.DefaultTimeout.Seconds(),
			ScanRate:  recognition.DefaultScanRate,
			OCR:       true,
			Language:  "eng",
			CacheSize: recognition.DefaultCacheSize,
		},
		Screens: Screens{
			Provider: ProviderLayout,
			Agent:    DefaultAgentAddress,
		},
		Engine: Engine{
			TargetScreen: DefaultTargetScreen,
		},
	}
}

// DefaultPath is ~/.screenlocator/config.ini.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".screenlocator", "config.ini"), nil
}

// Load reads path over the defaults, then applies SCREENLOCATOR_*
// variables. A missing file yields the defaults; relative paths inside the
// file resolve against its directory.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := cfg.ApplyEnv(); err != nil {
			return nil, err
		}
		return cfg, cfg.Validate()
	}

	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := file.StrictMapTo(cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	cfg.Snapshot.Path = resolve(dir, cfg.Snapshot.Path)
	cfg.Screens.Layout = resolve(dir, cfg.Screens.Layout)
	cfg.Recognition.ImageLibrary = resolve(dir, cfg.Recognition.ImageLibrary)

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

func (c *Config) Validate() error {
	if c.Recognition.Timeout < 0 {
		return fmt.Errorf("recognition timeout must not be negative")
	}
	if c.Recognition.ScanRate <= 0 {
		return fmt.Errorf("recognition scan_rate must be positive")
	}
	if c.Recognition.CacheSize <= 0 {
		return fmt.Errorf("recognition cache_size must be positive")
	}

	switch strings.ToLower(c.Screens.Provider) {
	case ProviderLayout, ProviderAgent:
	default:
		return fmt.Errorf("unknown screens provider '%s'", c.Screens.Provider)
	}

	if _, err := c.TargetScreen(); err != nil {
		return err
	}
	if _, err := c.Whitelist(); err != nil {
		return err
	}
	return nil
}

// TargetScreen parses the engine target screen.
func (c *Config) TargetScreen() (int, error) {
	return locator.ParseScreen(c.Engine.TargetScreen)
}

// Whitelist expands the configured OCR whitelist preset; empty means none.
func (c *Config) Whitelist() (string, error) {
	if strings.TrimSpace(c.Recognition.Whitelist) == "" {
		return "", nil
	}
	return locator.ParseWhitelist(c.Recognition.Whitelist)
}

// RecognitionOptions converts the recognition section for recognition.New.
func (c *Config) RecognitionOptions() (recognition.Options, error) {
	whitelist, err := c.Whitelist()
	if err != nil {
		return recognition.Options{}, err
	}

	opts := recognition.DefaultOptions()
	opts.Timeout = time.Duration(c.Recognition.Timeout * float64(time.Second))
	opts.ScanRate = c.Recognition.ScanRate
	opts.OCR = c.Recognition.OCR
	opts.Language = c.Recognition.Language
	opts.Whitelist = whitelist
	opts.ImageLibrary = c.Recognition.ImageLibrary
	opts.CacheSize = c.Recognition.CacheSize
	return opts, nil
}

func (c *Config) SnapshotOrigin() image.Point {
	return image.Pt(c.Snapshot.OriginX, c.Snapshot.OriginY)
}
