package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultPollInterval   = 50 * time.Millisecond
	DefaultLogLevel       = "warn"

	envConfigPath = "DOIN_CONFIG"
	appDirName    = "doin"
)

type Keymap struct {
	Quit      []string `toml:"quit"`
	Up        []string `toml:"up"`
	Down      []string `toml:"down"`
	Add       []string `toml:"add"`
	Edit      []string `toml:"edit"`
	Delete    []string `toml:"delete"`
	Confirm   []string `toml:"confirm"`
	Cancel    []string `toml:"cancel"`
	NextField []string `toml:"next_field"`
	PrevField []string `toml:"prev_field"`
}

type Config struct {
	PollInterval string `toml:"poll_interval"`
	LogFile      string `toml:"log_file"`
	LogLevel     string `toml:"log_level"`
	Keys         Keymap `toml:"keys"`
}

// Poll returns the parsed poll interval. Validate has already rejected bad
// values for configs that came through LoadOrCreate.
func (c Config) Poll() time.Duration {
	d, err := time.ParseDuration(c.PollInterval)
	if err != nil || d <= 0 {
		return DefaultPollInterval
	}
	return d
}

// ResolveConfigPath returns $DOIN_CONFIG when set, otherwise config.toml under
// the user's config directory, falling back to the working directory.
func ResolveConfigPath() string {
	if p := os.Getenv(envConfigPath); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, appDirName, DefaultConfigFileName)
}

func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	d, err := time.ParseDuration(c.PollInterval)
	if err != nil {
		return fmt.Errorf("poll_interval: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("poll_interval must be positive, got %s", c.PollInterval)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error; got %q", c.LogLevel)
	}
	for _, b := range c.Keys.bindings() {
		if len(*b.keys) == 0 {
			return fmt.Errorf("keys.%s: at least one key is required", b.name)
		}
		if slices.Contains(*b.keys, "") {
			return fmt.Errorf("keys.%s: empty key name", b.name)
		}
	}
	return nil
}

func (c *Config) fillDefaults() {
	def := Default()
	if c.PollInterval == "" {
		c.PollInterval = def.PollInterval
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	defs := def.Keys.bindings()
	for i, b := range c.Keys.bindings() {
		if *b.keys == nil {
			*b.keys = *defs[i].keys
		}
	}
}

type binding struct {
	name string
	keys *[]string
}

func (k *Keymap) bindings() []binding {
	return []binding{
		{"quit", &k.Quit},
		{"up", &k.Up},
		{"down", &k.Down},
		{"add", &k.Add},
		{"edit", &k.Edit},
		{"delete", &k.Delete},
		{"confirm", &k.Confirm},
		{"cancel", &k.Cancel},
		{"next_field", &k.NextField},
		{"prev_field", &k.PrevField},
	}
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func Default() Config {
	return Config{
		PollInterval: DefaultPollInterval.String(),
		LogLevel:     DefaultLogLevel,
		Keys: Keymap{
			Quit:      []string{"q", "esc", "ctrl+c"},
			Up:        []string{"up", "k"},
			Down:      []string{"down", "j"},
			Add:       []string{"a", "A"},
			Edit:      []string{"e", "E"},
			Delete:    []string{"d", "D"},
			Confirm:   []string{"enter"},
			Cancel:    []string{"esc"},
			NextField: []string{"tab"},
			PrevField: []string{"shift+tab"},
		},
	}
}
