package main

import (
	"os"
	"path/filepath"
	"strings"

	"spectre/internal/editor"
	"spectre/internal/store"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	SaveDirectory         string  `toml:"save_directory"`
	Store                 string  `toml:"store"`
	HistoryDepth          int     `toml:"history_depth"`
	LogFile               string  `toml:"log_file"`
	PenColor              string  `toml:"pen_color"`
	PenSize               float64 `toml:"pen_size"`
	EraserSize            float64 `toml:"eraser_size"`
	HideBackgroundPattern bool    `toml:"hide_background_pattern"`
	DisablePanning        bool    `toml:"disable_panning"`
	CellWidth             float64 `toml:"cell_width"`
	CellHeight            float64 `toml:"cell_height"`

	loadErr error
}

func defaultConfig() *Config {
	return &Config{
		Store:        "file",
		HistoryDepth: store.DefaultHistoryDepth,
		PenColor:     editor.DefaultTheme.PenColor,
		PenSize:      editor.DefaultTheme.PenSize,
		EraserSize:   editor.DefaultTheme.EraserSize,
		CellWidth:    defaultCellWidth,
		CellHeight:   defaultCellHeight,
	}
}

// loadConfig reads ~/.spectrerc. A missing or unreadable file leaves the
// defaults in place.
func loadConfig() *Config {
	config := defaultConfig()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return config
	}
	data, err := os.ReadFile(filepath.Join(homeDir, ".spectrerc"))
	if err != nil {
		return config
	}
	if err := parseConfig(data, config, homeDir); err != nil {
		config.loadErr = err
	}
	return config
}

func parseConfig(data []byte, config *Config, homeDir string) error {
	if err := toml.Unmarshal(data, config); err != nil {
		return err
	}

	if value := config.SaveDirectory; value != "" {
		if strings.HasPrefix(value, "~") {
			value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
		}
		if !filepath.IsAbs(value) {
			if absPath, err := filepath.Abs(value); err == nil {
				value = absPath
			}
		}
		config.SaveDirectory = value
	}
	if config.HistoryDepth <= 0 {
		config.HistoryDepth = store.DefaultHistoryDepth
	}
	if config.CellWidth <= 0 {
		config.CellWidth = defaultCellWidth
	}
	if config.CellHeight <= 0 {
		config.CellHeight = defaultCellHeight
	}
	return nil
}

func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}

func (c *Config) storeDir() string {
	if c.SaveDirectory != "" {
		return c.SaveDirectory
	}
	return "."
}

func (c *Config) theme() editor.Theme {
	return editor.Theme{PenColor: c.PenColor, PenSize: c.PenSize, EraserSize: c.EraserSize}
}

func (c *Config) editorOptions() editor.EditorOptions {
	return editor.EditorOptions{
		HideBackgroundPattern: c.HideBackgroundPattern,
		DisablePanning:        c.DisablePanning,
	}
}
