package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// Profile points the app at one deployment of the price API.
type Profile struct {
	BaseURL string `yaml:"base_url"`
	Store   string `yaml:"store,omitempty"`
}

// ScannerConfig describes the barcode scanner device.
type ScannerConfig struct {
	Device       string `yaml:"device"`        // tty, fifo or file; empty disables scanning
	Frequency    int    `yaml:"frequency"`     // decoding attempts per second
	AssumeFormat string `yaml:"assume_format"` // symbology for lines without an AIM prefix
}

// LookupConfig tunes the price API client.
type LookupConfig struct {
	Timeout     string `yaml:"timeout"`
	Concurrency int    `yaml:"concurrency"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // defaults to milista.log next to the config
}

type Config struct {
	Profiles      map[string]Profile `yaml:"profiles"`
	ActiveProfile string             `yaml:"active_profile"`
	Scanner       ScannerConfig      `yaml:"scanner"`
	Lookup        LookupConfig       `yaml:"lookup"`
	Logging       LoggingConfig      `yaml:"logging"`

	path           string
	currentProfile *Profile
}

const (
	ProductionURL  = "https://backend-milistasuper.onrender.com"
	DevelopmentURL = "http://localhost:4000"
	DefaultStore   = "walmart"
)

// DefaultConfig has two deployments of the price API: a production and a local
// development backend, production active.
func DefaultConfig() *Config {
	return &Config{
		Profiles: map[string]Profile{
			"production":  {BaseURL: ProductionURL, Store: DefaultStore},
			"development": {BaseURL: DevelopmentURL, Store: DefaultStore},
		},
		ActiveProfile: "production",
		Scanner: ScannerConfig{
			Frequency:    10,
			AssumeFormat: "ean_13",
		},
		Lookup: LookupConfig{
			Timeout:     "15s",
			Concurrency: 4,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig reads the config from the default location, creating it with
// defaults on first run, and applies environment overrides.
func LoadConfig() (*Config, error) {
	configPath, err := DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return Load(configPath)
}

// Load reads the config at path, creating it with defaults if missing.
func Load(configPath string) (*Config, error) {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.path = configPath
	cfg.fillDefaults()
	cfg.applyEnvOverrides()

	if err := cfg.setCurrentProfile(); err != nil {
		return nil, fmt.Errorf("failed to set current profile: %w", err)
	}
	return cfg, nil
}

// DefaultPath is $MILISTA_HOME/.milista/config.yaml, falling back to the
// user's home directory.
func DefaultPath() (string, error) {
	configDir := os.Getenv("MILISTA_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = homeDir
	}
	return filepath.Join(configDir, ".milista", "config.yaml"), nil
}

func loadConfigFile(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := cfg.Save(configPath); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the config to path, or to where it was loaded from when path
// is empty.
func (c *Config) Save(path string) error {
	if path == "" {
		path = c.path
	}
	if path == "" {
		return fmt.Errorf("no config path")
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// Path is where the config was loaded from.
func (c *Config) Path() string {
	return c.path
}

// Dir is the directory holding the config file.
func (c *Config) Dir() string {
	return filepath.Dir(c.path)
}

func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if len(c.Profiles) == 0 {
		c.Profiles = def.Profiles
	}
	if c.ActiveProfile == "" {
		c.ActiveProfile = def.ActiveProfile
	}
	if c.Scanner.Frequency <= 0 {
		c.Scanner.Frequency = def.Scanner.Frequency
	}
	if c.Scanner.AssumeFormat == "" {
		c.Scanner.AssumeFormat = def.Scanner.AssumeFormat
	}
	if c.Lookup.Timeout == "" {
		c.Lookup.Timeout = def.Lookup.Timeout
	}
	if c.Lookup.Concurrency <= 0 {
		c.Lookup.Concurrency = def.Lookup.Concurrency
	}
	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}
}

// applyEnvOverrides lets the environment (or a .env file) redirect the app
// without editing the config file.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("MILISTA_PROFILE"); v != "" {
		c.ActiveProfile = v
	}
	if v := os.Getenv("MILISTA_DEVICE"); v != "" {
		c.Scanner.Device = v
	}
	if v := os.Getenv("MILISTA_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// UseProfile switches the active profile.
func (c *Config) UseProfile(name string) error {
	if _, ok := c.Profiles[name]; !ok {
		return fmt.Errorf("profile %q does not exist", name)
	}
	c.ActiveProfile = name
	return c.setCurrentProfile()
}

// ProfileNames returns profile names sorted.
func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetBaseURL honours MILISTA_API_BASE before the active profile.
func (c *Config) GetBaseURL() string {
	if v := os.Getenv("MILISTA_API_BASE"); v != "" {
		return v
	}
	if c.currentProfile == nil {
		return ProductionURL
	}
	return c.currentProfile.BaseURL
}

// GetStore honours MILISTA_STORE before the active profile.
func (c *Config) GetStore() string {
	if v := os.Getenv("MILISTA_STORE"); v != "" {
		return v
	}
	if c.currentProfile == nil || c.currentProfile.Store == "" {
		return DefaultStore
	}
	return c.currentProfile.Store
}

// SetStore records the store on the active profile.
func (c *Config) SetStore(storeID string) {
	p := c.Profiles[c.ActiveProfile]
	p.Store = storeID
	c.Profiles[c.ActiveProfile] = p
	c.currentProfile = &p
}

// LookupTimeout parses Lookup.Timeout, falling back to 15s.
func (c *Config) LookupTimeout() time.Duration {
	d, err := time.ParseDuration(c.Lookup.Timeout)
	if err != nil || d <= 0 {
		return 15 * time.Second
	}
	return d
}

// LogFile is the configured log path or milista.log next to the config.
func (c *Config) LogFile() string {
	if c.Logging.File != "" {
		return c.Logging.File
	}
	if c.path == "" {
		return ""
	}
	return filepath.Join(c.Dir(), "milista.log")
}

func (c *Config) setCurrentProfile() error {
	if len(c.Profiles) == 0 {
		return fmt.Errorf("no profiles defined")
	}

	profile, exists := c.Profiles[c.ActiveProfile]
	if !exists {
		// Fall back to the first profile by name so the choice is stable.
		name := c.ProfileNames()[0]
		c.ActiveProfile = name
		profile = c.Profiles[name]
	}

	c.currentProfile = &profile
	return nil
}
