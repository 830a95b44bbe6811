package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the main configuration for objectif.
type Config struct {
	StationID     string           `toml:"station_id"`
	BaseDir       string           `toml:"base_dir"`
	LogDir        string           `toml:"log_dir"`
	WorkspaceRoot string           `toml:"workspace_root,omitempty"`
	Adb           AdbConfig        `toml:"adb"`
	Thumbnails    ThumbnailsConfig `toml:"thumbnails"`
}

// AdbConfig holds settings for the Android debug bridge.
type AdbConfig struct {
	// Path is an explicit adb binary. Empty means search the usual
	// platform-specific candidate locations.
	Path string `toml:"path,omitempty"`

	// CaptureDelaySeconds is how long to wait after triggering the shutter
	// before looking for the new photo on the device.
	CaptureDelaySeconds int `toml:"capture_delay_seconds"`

	// TimeoutSeconds bounds each adb invocation.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// ThumbnailsConfig holds thumbnail cache settings.
type ThumbnailsConfig struct {
	CacheDir string `toml:"cache_dir"`
	MaxWidth int    `toml:"max_width"`
	Quality  int    `toml:"quality"` // JPEG quality 1-100
}

// NewConfig creates a new Config with the provided values and default
// sub-settings.
func NewConfig(stationID, baseDir string) *Config {
	return &Config{
		StationID: stationID,
		BaseDir:   baseDir,
		LogDir:    filepath.Join(baseDir, "log"),
		Adb: AdbConfig{
			CaptureDelaySeconds: 3,
			TimeoutSeconds:      30,
		},
		Thumbnails: ThumbnailsConfig{
			CacheDir: filepath.Join(baseDir, "thumbs"),
			MaxWidth: 256,
			Quality:  85,
		},
	}
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes a Config to the specified file path, creating the parent
// directory if needed.
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := Save(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}

// SetWorkspace updates the workspace root in the config file at path.
func SetWorkspace(path string, workspaceRoot string) (*Config, error) {
	cfg, err := ReadFromFile(path)
	if err != nil {
		return nil, err
	}

	cfg.WorkspaceRoot = workspaceRoot
	if err := Save(path, cfg); err != nil {
		return nil, fmt.Errorf("saving workspace root: %w", err)
	}
	return cfg, nil
}
