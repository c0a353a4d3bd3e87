package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/raster-foundry/raster-foundry-go-client/internal/foundry"
)

// Settings holds all configuration options.
type Settings struct {
	// API settings
	Host           string  `json:"host"`
	Scheme         string  `json:"scheme"`
	RefreshToken   string  `json:"refresh_token"`
	APIToken       string  `json:"api_token"`
	RequestTimeout float64 `json:"request_timeout_seconds"`

	// Export download settings
	ExportsPath            string `json:"exports_path"`
	MaxConcurrentDownloads int    `json:"max_concurrent_downloads"`

	// Tile preview settings
	TilePreviewMaxSize  int  `json:"tile_preview_max_size"`
	ConvertPreviewToJPG bool `json:"convert_preview_to_jpg"`
	TilePreviewZoom     int  `json:"tile_preview_zoom"`

	// Output settings
	Verbose bool `json:"verbose"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	return &Settings{
		Host:           foundry.DefaultHost,
		Scheme:         foundry.DefaultScheme,
		RequestTimeout: 60,

		ExportsPath:            filepath.Join(homeDir, "rasterfoundry", "exports"),
		MaxConcurrentDownloads: 4,

		TilePreviewMaxSize:  512,
		ConvertPreviewToJPG: true,
		TilePreviewZoom:     10,

		Verbose: false,
	}
}

// Load reads settings from a JSON file.
//
// A missing file is not an error; defaults are returned so first runs
// work before any configuration exists.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ToClientConfig converts settings to a foundry client Config.
func (s *Settings) ToClientConfig() foundry.Config {
	return foundry.Config{
		Host:         s.Host,
		Scheme:       s.Scheme,
		RefreshToken: s.RefreshToken,
		APIToken:     s.APIToken,
		Timeout:      time.Duration(s.RequestTimeout * float64(time.Second)),
	}
}
