package appconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	defaultDir      = "~/.devconsole"
	configFileName  = "config.yaml"
	envPrefix       = "DEVCONSOLE"
	defaultDebounce = 300
)

// Config holds the console settings.
type Config struct {
	StateDir  string        `mapstructure:"state_dir"`
	Namespace string        `mapstructure:"namespace"`
	Panel     PanelConfig   `mapstructure:"panel"`
	Display   DisplayConfig `mapstructure:"display"`
	Notify    NotifyConfig  `mapstructure:"notify"`
}

// PanelConfig holds first-run panel defaults.
type PanelConfig struct {
	Width            int  `mapstructure:"width"`
	Height           int  `mapstructure:"height"`
	Visible          bool `mapstructure:"visible"`
	ResizeDebounceMS int  `mapstructure:"resize_debounce_ms"`
}

// DisplayConfig bounds the output area.
type DisplayConfig struct {
	MaxLines int `mapstructure:"max_lines"`
}

// NotifyConfig controls desktop notifications.
type NotifyConfig struct {
	HiddenErrors bool `mapstructure:"hidden_errors"`
}

// ResizeDebounce returns the resize quiet period.
func (c Config) ResizeDebounce() time.Duration {
	return time.Duration(c.Panel.ResizeDebounceMS) * time.Millisecond
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() (Config, error) {
	stateDir, err := homedir.Expand(filepath.Join(defaultDir, "state"))
	if err != nil {
		return Config{}, err
	}
	return Config{
		StateDir:  stateDir,
		Namespace: "devconsole",
		Panel: PanelConfig{
			Width:            640,
			Height:           320,
			Visible:          true,
			ResizeDebounceMS: defaultDebounce,
		},
		Display: DisplayConfig{MaxLines: 1000},
		Notify:  NotifyConfig{HiddenErrors: false},
	}, nil
}

// DefaultConfigPath returns ~/.devconsole/config.yaml.
func DefaultConfigPath() (string, error) {
	return homedir.Expand(filepath.Join(defaultDir, configFileName))
}

// Load reads configuration from path, falling back to DefaultConfigPath.
// A missing file yields the defaults; DEVCONSOLE_* environment variables
// override both.
func Load(path string) (Config, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return Config{}, err
		}
		path = defaultPath
	}

	cfg, err := DefaultConfig()
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("state_dir", cfg.StateDir)
	v.SetDefault("namespace", cfg.Namespace)
	v.SetDefault("panel.width", cfg.Panel.Width)
	v.SetDefault("panel.height", cfg.Panel.Height)
	v.SetDefault("panel.visible", cfg.Panel.Visible)
	v.SetDefault("panel.resize_debounce_ms", cfg.Panel.ResizeDebounceMS)
	v.SetDefault("display.max_lines", cfg.Display.MaxLines)
	v.SetDefault("notify.hidden_errors", cfg.Notify.HiddenErrors)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.StateDir, err = homedir.Expand(cfg.StateDir); err != nil {
		return Config{}, err
	}
	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	if strings.TrimSpace(cfg.StateDir) == "" {
		return errors.New("state_dir is required")
	}
	if cfg.Panel.Width <= 0 || cfg.Panel.Height <= 0 {
		return fmt.Errorf("panel.width and panel.height must be positive (got %dx%d)", cfg.Panel.Width, cfg.Panel.Height)
	}
	if cfg.Panel.ResizeDebounceMS < 0 {
		return fmt.Errorf("panel.resize_debounce_ms must not be negative")
	}
	if cfg.Display.MaxLines <= 0 {
		return fmt.Errorf("display.max_lines must be positive")
	}
	return nil
}
