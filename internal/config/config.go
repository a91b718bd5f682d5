// Package config persists winshot settings as a YAML file and layers
// command-line overrides on top via viper in the CLI layer.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/winshot/winshot/internal/logger"
)

// Config holds all persistent settings.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level" yaml:"log_level"`
	// PrettyLog switches the console writer on.
	PrettyLog bool `json:"pretty_log" yaml:"pretty_log"`

	// OutputDir is where captures land when no explicit path is given.
	OutputDir string `json:"output_dir" yaml:"output_dir"`
	// Format is the default output format (png, jpeg, bmp, pdf).
	Format string `json:"format" yaml:"format"`
	// JPEGQuality applies to jpeg output.
	JPEGQuality int `json:"jpeg_quality" yaml:"jpeg_quality"`

	// Method is the default capture method (printwindow, bitblt).
	Method string `json:"method" yaml:"method"`
	// Area is the default capture area (full, client).
	Area string `json:"area" yaml:"area"`
	// Depth is the default bytes per pixel, 3 or 4.
	Depth int `json:"depth" yaml:"depth"`

	// ServerPort is the HTTP API listen port.
	ServerPort int `json:"server_port" yaml:"server_port"`
	// PollIntervalMs is how often the window-event stream re-enumerates.
	PollIntervalMs int `json:"poll_interval_ms" yaml:"poll_interval_ms"`
}

// Manager owns the config file and serializes access to it.
type Manager struct {
	mu         sync.RWMutex
	config     *Config
	configPath string
}

// NewManager loads the config file, creating it with defaults when absent.
// An empty configFile selects ~/.config/winshot/config.yaml.
func NewManager(configFile string) (*Manager, error) {
	actualConfigPath := configFile
	if actualConfigPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir := filepath.Join(homeDir, ".config", "winshot")
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}
		actualConfigPath = filepath.Join(configDir, "config.yaml")
	}

	m := &Manager{configPath: actualConfigPath}

	if err := m.load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		logger.WithComponent("config").Info().
			Str("path", m.configPath).
			Msg("config file not found, creating defaults")
		m.config = Defaults()
		if err := m.Save(); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	return m, nil
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		LogLevel:       "info",
		PrettyLog:      true,
		OutputDir:      ".",
		Format:         "png",
		JPEGQuality:    85,
		Method:         "printwindow",
		Area:           "full",
		Depth:          4,
		ServerPort:     8080,
		PollIntervalMs: 1000,
	}
}

func (m *Manager) load() error {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return err
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", m.configPath, err)
	}

	m.mu.Lock()
	m.config = cfg
	m.mu.Unlock()
	return nil
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cfg := *m.config
	return &cfg
}

// Update replaces the configuration and persists it.
func (m *Manager) Update(cfg *Config) error {
	m.mu.Lock()
	m.config = cfg
	m.mu.Unlock()
	return m.Save()
}

// Save writes the current configuration to the config file.
func (m *Manager) Save() error {
	m.mu.RLock()
	data, err := yaml.Marshal(m.config)
	m.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(m.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", m.configPath, err)
	}
	return nil
}

// SetPort overrides the server port and persists it.
func (m *Manager) SetPort(port int) error {
	m.mu.Lock()
	m.config.ServerPort = port
	m.mu.Unlock()
	return m.Save()
}

// SetLogLevel overrides the log level and persists it.
func (m *Manager) SetLogLevel(level string) error {
	m.mu.Lock()
	m.config.LogLevel = level
	m.mu.Unlock()
	return m.Save()
}

// GetConfigPath returns the path of the backing file.
func (m *Manager) GetConfigPath() string {
	return m.configPath
}
