package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the main configuration for timestamper.
type Config struct {
	BaseDir  string        `toml:"base_dir"`
	LogDir   string        `toml:"log_dir"`
	Platform string        `toml:"platform"` // "auto", "windows" or "linux"
	Timezone string        `toml:"timezone"` // IANA name; empty means the process local zone
	Journal  JournalConfig `toml:"journal"`
	Display  DisplayConfig `toml:"display"`
}

// JournalConfig represents configuration for the transfer journal.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type JournalConfig struct {
	Type    string `toml:"type"`               // "sqlite", "memory" or "none"
	DataDir string `toml:"data_dir,omitempty"` // only used for type=sqlite
}

// DisplayConfig holds settings for table output.
type DisplayConfig struct {
	Colour string `toml:"colour"` // "auto", "always" or "never"
}

// NewConfig creates a new Config with defaults rooted at baseDir.
func NewConfig(baseDir string) *Config {
	return &Config{
		BaseDir:  baseDir,
		LogDir:   filepath.Join(baseDir, "log"),
		Platform: "auto",
		Journal: JournalConfig{
			Type:    "sqlite",
			DataDir: baseDir,
		},
		Display: DisplayConfig{
			Colour: "auto",
		},
	}
}

// Validate checks the enumerated fields.
func (c *Config) Validate() error {
	var errs []error
	switch c.Platform {
	case "", "auto", "windows", "linux":
	default:
		errs = append(errs, fmt.Errorf("platform must be auto, windows or linux, got %q", c.Platform))
	}
	switch c.Journal.Type {
	case "sqlite", "memory", "none":
	default:
		errs = append(errs, fmt.Errorf("journal.type must be sqlite, memory or none, got %q", c.Journal.Type))
	}
	switch c.Display.Colour {
	case "", "auto", "always", "never":
	default:
		errs = append(errs, fmt.Errorf("display.colour must be auto, always or never, got %q", c.Display.Colour))
	}
	return errors.Join(errs...)
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

// Load reads the config at path, or returns NewConfig(baseDir) when the
// file does not exist. Fields missing from the file keep their defaults.
func Load(path, baseDir string) (*Config, error) {
	cfg := NewConfig(baseDir)

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	if _, err := toml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// writeToFile writes a Config to the specified file path.
func writeToFile(path string, cfg *Config) error {
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
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
